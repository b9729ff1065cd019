// Package storage provides S3 text object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kyiku/jatext/internal/pipeline"
)

// normalizedPrefix is the key prefix for normalized output objects.
const normalizedPrefix = "normalized/"

// ErrNotUTF8 is returned when an object is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("object is not valid UTF-8")

// S3ClientInterface defines the interface for S3 operations.
type S3ClientInterface interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, data []byte) error
	ListObjects(ctx context.Context, prefix string) ([]string, error)
}

// TextStore reads and writes UTF-8 text objects.
type TextStore struct {
	client S3ClientInterface
	bucket string
}

// NewTextStore creates a new TextStore.
func NewTextStore(client S3ClientInterface, bucket string) *TextStore {
	return &TextStore{
		client: client,
		bucket: bucket,
	}
}

// Bucket returns the bucket name the store writes to.
func (c *TextStore) Bucket() string {
	return c.bucket
}

// GetText returns the text stored under key.
func (c *TextStore) GetText(ctx context.Context, key string) (string, error) {
	data, err := c.client.GetObject(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to get text object: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotUTF8, key)
	}

	return string(data), nil
}

// PutText stores text under key.
func (c *TextStore) PutText(ctx context.Context, key, text string) error {
	if err := c.client.PutObject(ctx, key, []byte(text)); err != nil {
		return fmt.Errorf("failed to put text object: %w", err)
	}
	return nil
}

// ListTexts returns the keys of .txt objects under prefix.
func (c *TextStore) ListTexts(ctx context.Context, prefix string) ([]string, error) {
	keys, err := c.client.ListObjects(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list text objects: %w", err)
	}

	texts := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasSuffix(key, ".txt") {
			texts = append(texts, key)
		}
	}

	return texts, nil
}

// NormalizeObject reads the text under key, applies p and writes the
// result to a new object. It returns the new key and the normalized text.
func (c *TextStore) NormalizeObject(ctx context.Context, key string, p pipeline.Pipeline) (string, string, error) {
	text, err := c.GetText(ctx, key)
	if err != nil {
		return "", "", err
	}

	normalized := p.Apply(text)

	// Generate unique object key
	outputKey := normalizedPrefix + uuid.New().String() + ".txt"
	if err := c.PutText(ctx, outputKey, normalized); err != nil {
		return "", "", err
	}

	return outputKey, normalized, nil
}
