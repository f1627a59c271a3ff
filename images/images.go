// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

// Package images uploads recipe photos to the public object store bucket.
// Uploads complete before recipe documents are created; a failed upload
// aborts the creation.
package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cenkalti/backoff/v5"
)

// Store writes photos to a Cloud Storage bucket and returns public URLs.
type Store struct {
	storage *storage.Client
	bucket  string
}

// NewStore returns a Store writing to bucket.
func NewStore(client *storage.Client, bucket string) *Store {
	return &Store{storage: client, bucket: bucket}
}

// SaveDataURL decodes an image data URL and writes it under pathNoExt with
// an extension derived from the content type, retrying transient failures.
// It returns the public URL of the stored object.
func (s *Store) SaveDataURL(ctx context.Context, pathNoExt, dataURL string) (string, error) {
	ct, data, ext, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	path := pathNoExt + "." + ext

	return backoff.Retry(ctx, func() (string, error) {
		if err := s.write(ctx, path, ct, data); err != nil {
			return "", err
		}
		return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path), nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(3))
}

func (s *Store) write(ctx context.Context, path, contentType string, data []byte) error {
	w := s.storage.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("images: writing %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("images: closing writer for %s: %w", path, err)
	}
	return nil
}

// decodeDataURL splits a base64 image data URL into its content type, raw
// bytes and file extension.
func decodeDataURL(dataURL string) (string, []byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, "", fmt.Errorf("images: invalid data URL %q", truncate(dataURL))
	}
	ct, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return "", nil, "", fmt.Errorf("images: invalid data URL %q", truncate(dataURL))
	}
	ext, ok := strings.CutPrefix(ct, "image/")
	if !ok {
		return "", nil, "", fmt.Errorf("images: only image data URLs supported, got %q", ct)
	}
	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return "", nil, "", fmt.Errorf("images: only base64 data URLs supported")
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, "", fmt.Errorf("images: decoding base64 data URL: %w", err)
	}
	return ct, data, ext, nil
}

func truncate(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
