package theme_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampaper/dreampaper/internal/theme"
)

func TestPhrase(t *testing.T) {
	for _, name := range theme.Names() {
		phrase, ok := theme.Phrase(name)
		assert.True(t, ok, name)
		assert.NotEmpty(t, phrase, name)
	}

	_, ok := theme.Phrase("no-such-theme")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	names := theme.Names()
	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestForDay(t *testing.T) {
	day := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	first := theme.ForDay(day)
	second := theme.ForDay(day.Add(3 * time.Hour))
	assert.Equal(t, first, second, "same day picks the same theme")

	_, ok := theme.Phrase(first)
	assert.True(t, ok, "rotation only yields registered themes")

	// A full rotation touches more than one theme.
	seen := map[string]bool{}
	for i := 0; i < len(theme.Names()); i++ {
		seen[theme.ForDay(day.AddDate(0, 0, i))] = true
	}
	assert.Greater(t, len(seen), 1)
}
