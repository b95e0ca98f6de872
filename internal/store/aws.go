package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"

	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/wallpaper"
)

const (
	imageKey = "wallpaper"
	metaKey  = "wallpaper.json"
)

// S3Store keeps the wallpaper as two objects in a bucket: the raw image and
// a JSON metadata record. S3 acknowledges puts only after they are durable,
// which gives Put its write-then-acknowledge guarantee.
type S3Store struct {
	client *s3.Client
	bucket string

	mu      sync.RWMutex
	current *wallpaper.Wallpaper
}

var _ Store = (*S3Store)(nil)

func NewS3Store(i *do.Injector) (Store, error) {
	return &S3Store{
		client: do.MustInvoke[*s3.Client](i),
		bucket: do.MustInvokeNamed[string](i, "bucket"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, w wallpaper.Wallpaper) error {
	log.FromContextOrDiscard(ctx).WithGroup("store").Info("uploading wallpaper", "bucket", s.bucket, "bytes", len(w.Image))

	meta, err := json.Marshal(metadata{Format: w.Format, Prompt: w.Prompt, GeneratedAt: w.GeneratedAt})
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return s.put(ctx, imageKey, w.Image, "image/"+w.Format)
	})
	group.Go(func() error {
		return s.put(ctx, metaKey, meta, "application/json")
	})
	if err := group.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &w
	s.mu.Unlock()
	return nil
}

func (s *S3Store) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		ContentType:  aws.String(contentType),
		Body:         bytes.NewReader(data),
		StorageClass: s3types.StorageClassIntelligentTiering,
	})
	return err
}

func (s *S3Store) Get(_ context.Context) (*wallpaper.Wallpaper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, nil
	}
	w := *s.current
	return &w, nil
}

func (s *S3Store) Restore(ctx context.Context) error {
	raw, err := s.get(ctx, metaKey)
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil
		}
		return err
	}

	var meta metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return err
	}

	img, err := s.get(ctx, imageKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &wallpaper.Wallpaper{
		Image:       img,
		Format:      meta.Format,
		Prompt:      meta.Prompt,
		GeneratedAt: meta.GeneratedAt.UTC(),
	}
	s.mu.Unlock()

	log.FromContextOrDiscard(ctx).WithGroup("store").Info("restored wallpaper from s3", "generated_at", meta.GeneratedAt)
	return nil
}

func (s *S3Store) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
