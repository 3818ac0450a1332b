package securestore

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChunkSize = 16

func newTestStore(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend(testChunkSize)
	return NewStore(backend, WithChunkSize(testChunkSize)), backend
}

func TestRoundTrip_SmallValue(t *testing.T) {
	store, backend := newTestStore(t)

	store.Set("session", "short")
	got, ok := store.Get("session")
	require.True(t, ok)
	assert.Equal(t, "short", got)

	// Small values are stored directly, no marker or chunks.
	_, err := backend.Get(markerKey("session"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, backend.Len())
}

func TestRoundTrip_LargeValue(t *testing.T) {
	store, backend := newTestStore(t)
	value := strings.Repeat("abcdefgh", 20) // 160 bytes, 10 chunks

	store.Set("session", value)
	got, ok := store.Get("session")
	require.True(t, ok)
	assert.Equal(t, value, got)

	marker, err := backend.Get(markerKey("session"))
	require.NoError(t, err)
	assert.Equal(t, "10", marker)

	// No direct entry remains.
	_, err = backend.Get("session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoundTrip_ExactChunkBoundary(t *testing.T) {
	store, _ := newTestStore(t)

	// Exactly one chunk size: stays direct.
	atLimit := strings.Repeat("x", testChunkSize)
	store.Set("k", atLimit)
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, atLimit, got)

	// One byte over: chunked, final chunk shorter.
	over := atLimit + "y"
	store.Set("k2", over)
	got, ok = store.Get("k2")
	require.True(t, ok)
	assert.Equal(t, over, got)
}

func TestOverwrite_ChunkedThenDirect(t *testing.T) {
	store, backend := newTestStore(t)
	large := strings.Repeat("z", testChunkSize*4)

	store.Set("k", large)
	store.Set("k", "tiny")

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "tiny", got)

	// The chunked representation is fully gone: direct entry only.
	assert.Equal(t, 1, backend.Len())
}

func TestOverwrite_ChunkedThenSmallerChunked(t *testing.T) {
	store, backend := newTestStore(t)

	store.Set("k", strings.Repeat("a", testChunkSize*6))
	store.Set("k", strings.Repeat("b", testChunkSize*2))

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("b", testChunkSize*2), got)

	// High-index chunks from the first write are pruned.
	for i := 2; i < 6; i++ {
		_, err := backend.Get(chunkKey("k", i))
		assert.ErrorIs(t, err, ErrNotFound, "chunk %d should be pruned", i)
	}
	// 2 chunks + marker.
	assert.Equal(t, 3, backend.Len())
}

func TestRemove_Direct(t *testing.T) {
	store, backend := newTestStore(t)
	store.Set("k", "value")
	store.Remove("k")

	_, ok := store.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, backend.Len())
}

func TestRemove_Chunked(t *testing.T) {
	store, backend := newTestStore(t)
	store.Set("k", strings.Repeat("v", testChunkSize*5))
	store.Remove("k")

	_, ok := store.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, backend.Len())
}

func TestGet_MissingKey(t *testing.T) {
	store, _ := newTestStore(t)
	_, ok := store.Get("absent")
	assert.False(t, ok)
}

func TestGet_MissingMiddleChunk(t *testing.T) {
	store, backend := newTestStore(t)
	store.Set("k", strings.Repeat("q", testChunkSize*4))

	// Delete a chunk out-of-band; the read must fail rather than splice.
	require.NoError(t, backend.Delete(chunkKey("k", 2)))

	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestGet_MalformedMarker(t *testing.T) {
	store, backend := newTestStore(t)
	require.NoError(t, backend.Set(markerKey("k"), "not-a-number"))

	_, ok := store.Get("k")
	assert.False(t, ok)
}

// failingBackend wraps a Backend and fails selected operations, in the
// teacher-mock style of function-field injection.
type failingBackend struct {
	Backend
	getErr func(key string) error
	setErr func(key string) error
}

func (f *failingBackend) Get(key string) (string, error) {
	if f.getErr != nil {
		if err := f.getErr(key); err != nil {
			return "", err
		}
	}
	return f.Backend.Get(key)
}

func (f *failingBackend) Set(key, value string) error {
	if f.setErr != nil {
		if err := f.setErr(key); err != nil {
			return err
		}
	}
	return f.Backend.Set(key, value)
}

func TestGet_BackendFaultReadsAsMiss(t *testing.T) {
	backendErr := errors.New("keychain unavailable")
	fb := &failingBackend{
		Backend: NewMemoryBackend(0),
		getErr:  func(string) error { return backendErr },
	}
	store := NewStore(fb, WithChunkSize(testChunkSize))

	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestSet_ChunkWriteFailureLeavesReadableMiss(t *testing.T) {
	backendErr := errors.New("write refused")
	mem := NewMemoryBackend(0)
	fb := &failingBackend{
		Backend: mem,
		setErr: func(key string) error {
			if key == chunkKey("k", 2) {
				return backendErr
			}
			return nil
		},
	}
	store := NewStore(fb, WithChunkSize(testChunkSize))

	store.Set("k", strings.Repeat("w", testChunkSize*4))

	// The marker was never written, so the partial chunks are invisible
	// and the read falls through to the absent direct key.
	_, ok := store.Get("k")
	assert.False(t, ok)
	_, err := mem.Get(markerKey("k"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackend_EntryLimit(t *testing.T) {
	backend := NewMemoryBackend(8)
	err := backend.Set("k", "123456789")
	assert.ErrorIs(t, err, ErrValueTooLarge)
	require.NoError(t, backend.Set("k", "12345678"))
}
