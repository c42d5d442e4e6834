// Package storage provides the blob-backed attachment store.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register the file:// bucket scheme
	_ "gocloud.dev/blob/memblob"  // register the mem:// bucket scheme
	"gocloud.dev/gcerrors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/carlosCACB333/bonny/config"
	"github.com/carlosCACB333/bonny/internal/domain/service"
)

const defaultBucketURL = "mem://"

// blobAttachmentStore is a concrete implementation of the AttachmentStore
// interface on top of a gocloud.dev bucket. The bucket URL decides the
// backend, so local directories and in-memory buckets are interchangeable.
type blobAttachmentStore struct {
	bucket  *blob.Bucket
	baseURL string
}

// NewBlobAttachmentStore opens the configured bucket and closes it on shutdown.
func NewBlobAttachmentStore(lc fx.Lifecycle, cfg *config.Config) (service.AttachmentStore, error) {
	bucketURL := defaultBucketURL
	baseURL := ""
	if cfg.Storage != nil {
		if cfg.Storage.BucketURL != "" {
			bucketURL = cfg.Storage.BucketURL
		}
		baseURL = strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/")
	}

	bucket, err := blob.OpenBucket(context.Background(), bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return &blobAttachmentStore{bucket: bucket, baseURL: baseURL}, nil
}

// Save writes the attachment under the folder and returns its reference.
// The key embeds a fresh UUID, so two uploads never collide.
func (s *blobAttachmentStore) Save(ctx context.Context, folder string, attachment *service.Attachment) (string, error) {
	key := path.Join(folder, uuid.New().String()+path.Ext(attachment.Filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: attachment.ContentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}

	if _, err := io.Copy(writer, attachment.Content); err != nil {
		_ = writer.Close()

		return "", errors.Wrapf(err, "failed to write %s", key)
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to finish %s", key)
	}

	return key, nil
}

// Remove deletes a stored attachment. A missing blob is not an error.
func (s *blobAttachmentStore) Remove(ctx context.Context, ref string) error {
	err := s.bucket.Delete(ctx, ref)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete %s", ref)
	}

	return nil
}

// URL resolves a reference into a URL the client can fetch.
func (s *blobAttachmentStore) URL(ref string) string {
	if ref == "" {
		return ""
	}

	return s.baseURL + "/" + ref
}
