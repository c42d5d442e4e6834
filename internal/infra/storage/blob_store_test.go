package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/carlosCACB333/bonny/config"
	"github.com/carlosCACB333/bonny/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestStore(t *testing.T) service.AttachmentStore {
	t.Helper()

	lc := fxtest.NewLifecycle(t)
	store, err := NewBlobAttachmentStore(lc, &config.Config{
		Storage: &config.StorageConfig{
			BucketURL:     "mem://",
			PublicBaseURL: "https://files.test/",
		},
	})
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return store
}

func TestBlobAttachmentStore_SaveAndRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Save(ctx, "employees", &service.Attachment{
		Filename:    "maria.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "employees/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	require.NoError(t, store.Remove(ctx, ref))
}

func TestBlobAttachmentStore_SaveGeneratesDistinctRefs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "employees", &service.Attachment{
		Filename: "maria.png",
		Content:  strings.NewReader("a"),
	})
	require.NoError(t, err)

	second, err := store.Save(ctx, "employees", &service.Attachment{
		Filename: "maria.png",
		Content:  strings.NewReader("b"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBlobAttachmentStore_RemoveMissingIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Remove(context.Background(), "employees/no-such-blob.png"))
}

func TestBlobAttachmentStore_URL(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "https://files.test/employees/x.png", store.URL("employees/x.png"))
	assert.Empty(t, store.URL(""))
}
