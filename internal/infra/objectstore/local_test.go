package objectstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "rose_oud.jpg", SanitizeFilename("rose oud.jpg"))
	assert.Equal(t, "x.png", SanitizeFilename("../../etc/x.png"))
	assert.Equal(t, "a.jpg", SanitizeFilename(`C:\Users\me\a.jpg`))
	assert.Equal(t, "file", SanitizeFilename(""))
	assert.Equal(t, "file", SanitizeFilename(".."))
}

func TestLocal_PutAndKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "/uploads/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	key := s.TimestampedKey("products", "rose oud.jpg")
	assert.Equal(t, "products/1700000000000_rose_oud.jpg", key)
	assert.Equal(t, "settings/hero/a.jpg", s.FieldKey("settings/hero", "a.jpg"))

	url, err := s.Put(context.Background(), key, strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/1700000000000_rose_oud.jpg", url)

	b, err := os.ReadFile(filepath.Join(dir, "products", "1700000000000_rose_oud.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))

	ok, err := s.Exists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)

	//メタデータのサイドカーは作らない
	entries, err := os.ReadDir(filepath.Join(dir, "products"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1700000000000_rose_oud.jpg", entries[0].Name())
}

func TestLocal_CreatesMissingRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Put(context.Background(), "settings/hero/a.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "settings", "hero", "a.jpg"))
	assert.NoError(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocal_PutFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Put(context.Background(), "products/broken.jpg", failingReader{})
	assert.ErrorContains(t, err, "client went away")

	ok, err := s.Exists(context.Background(), "products/broken.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocal_RequiresRoot(t *testing.T) {
	_, err := NewLocal("  ", "/uploads")
	assert.Error(t, err)
}

func TestLocal_PutStaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	url, err := s.Put(context.Background(), "../../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.txt", url)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
}
