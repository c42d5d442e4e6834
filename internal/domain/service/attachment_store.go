package service

import (
	"context"
	"io"
)

// Attachment is an uploaded file to be stored as a blob.
type Attachment struct {
	// Filename is the client-provided name, used to derive the stored key.
	Filename string

	// ContentType is the declared MIME type of the content.
	ContentType string

	// Content is the file body. The store reads it to completion.
	Content io.Reader
}

// AttachmentStore persists image attachments and returns opaque references
// that are stored on the owning record.
type AttachmentStore interface {
	// Save writes the attachment under the given folder and returns its
	// reference. The reference is stable and unique per upload.
	Save(ctx context.Context, folder string, attachment *Attachment) (string, error)

	// Remove deletes a stored attachment by reference. Removing a missing
	// blob is not an error.
	Remove(ctx context.Context, ref string) error

	// URL resolves a reference into a URL the client can fetch.
	URL(ref string) string
}
