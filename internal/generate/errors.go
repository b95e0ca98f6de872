package generate

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPrompt is returned before any network activity when the
	// prompt source resolves to an empty string.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrUnknownTheme is returned before any network activity when a named
	// theme has no registered phrase.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrMissingCredential is returned before any network activity when no
	// provider credential was supplied.
	ErrMissingCredential = errors.New("missing provider credential")

	// ErrBusy is returned when a generation cycle is already in flight.
	ErrBusy = errors.New("a generation cycle is already in flight")
)

// ProviderError reports a failed provider call. Message carries the
// provider's own error message when it could be parsed, otherwise only the
// HTTP status is known.
type ProviderError struct {
	Status  int
	Message string
	err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return "provider: " + e.Message
	}
	return fmt.Sprintf("provider: unexpected status %d", e.Status)
}

func (e *ProviderError) Unwrap() error { return e.err }

// DownloadError reports a failed fetch of the generated image bytes.
type DownloadError struct {
	URL string
	err error
}

func (e *DownloadError) Error() string { return "downloading image: " + e.err.Error() }
func (e *DownloadError) Unwrap() error { return e.err }

// DecodeError reports image bytes that could not be decoded into a
// displayable image.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string { return "decoding image: " + e.err.Error() }
func (e *DecodeError) Unwrap() error { return e.err }
