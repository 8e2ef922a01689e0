package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "logo.PNG", "image/png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/uploads/")
	content, err := os.ReadFile(filepath.Join(store.Root(), name))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(content))

	require.NoError(t, store.Remove(context.Background(), url))
	_, err = os.Stat(filepath.Join(store.Root(), name))
	require.True(t, os.IsNotExist(err))
}

func TestLocalStoreRemoveTolerant(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), "/uploads/never-existed.jpg"))
	require.NoError(t, store.Remove(context.Background(), "https://elsewhere.example/file.jpg"))
	require.NoError(t, store.Remove(context.Background(), "/uploads/../../etc/passwd"))
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "image.jpg", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "image.jpg", "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
