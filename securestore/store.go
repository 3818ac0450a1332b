package securestore

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// DefaultChunkSize is the default maximum bytes per stored entry. It sits
// below the 2048-byte limit common to mobile secure-storage backends,
// leaving headroom for encoding overhead.
const DefaultChunkSize = 1800

// Store splits oversized values across numbered chunks under derived keys
// and reassembles them on read. Safe for concurrent use if its Backend is.
type Store struct {
	backend   Backend
	chunkSize int
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithChunkSize sets the maximum bytes written to a single backend entry.
// Values <= 0 are ignored.
func WithChunkSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a chunking store over backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		chunkSize: DefaultChunkSize,
		logger:    slog.Default().With("component", "securestore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func markerKey(key string) string {
	return key + "_chunkCount"
}

func chunkKey(key string, i int) string {
	return fmt.Sprintf("%s_chunk_%d", key, i)
}

// Get returns the value stored at key. The second return is false when the
// key is absent or the backend failed; backend faults are logged but never
// surfaced, so a transient storage error reads as a miss.
func (s *Store) Get(key string) (string, bool) {
	value, err := s.get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("secure store read failed", "key", key, "err", err)
		}
		return "", false
	}
	return value, true
}

// get retains the error distinction between a miss and a backend fault.
func (s *Store) get(key string) (string, error) {
	marker, err := s.backend.Get(markerKey(key))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// No marker: the value, if any, lives at the direct key.
			return s.backend.Get(key)
		}
		return "", err
	}

	count, err := strconv.Atoi(strings.TrimSpace(marker))
	if err != nil || count < 0 {
		return "", fmt.Errorf("malformed chunk count %q for key %s", marker, key)
	}

	// A missing chunk fails the whole read. Partial reconstruction would
	// hand truncated session data to the caller.
	var sb strings.Builder
	for i := 0; i < count; i++ {
		chunk, err := s.backend.Get(chunkKey(key, i))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", fmt.Errorf("%w: chunk %d of %d missing", ErrNotFound, i, count)
			}
			return "", err
		}
		sb.WriteString(chunk)
	}
	return sb.String(), nil
}

// Set stores value at key, chunking it when it exceeds the chunk size.
// Failures are logged, never surfaced.
func (s *Store) Set(key, value string) {
	if err := s.set(key, value); err != nil {
		s.logger.Warn("secure store write failed", "key", key, "err", err)
	}
}

func (s *Store) set(key, value string) error {
	// Read the previous chunk count up front so stale high-index chunks
	// from an earlier, larger write can be pruned afterwards.
	prevCount := s.chunkCount(key)

	if len(value) <= s.chunkSize {
		if err := s.backend.Set(key, value); err != nil {
			return err
		}
		// The direct entry is now authoritative; drop the chunked remnants.
		s.pruneChunks(key, 0, prevCount)
		if err := s.backend.Delete(markerKey(key)); err != nil {
			s.logger.Warn("failed to delete chunk marker", "key", key, "err", err)
		}
		return nil
	}

	chunks := splitChunks(value, s.chunkSize)

	// Chunk bodies first, marker last. An interruption before the marker
	// write leaves readers on the direct-key path, which misses cleanly.
	for i, chunk := range chunks {
		if err := s.backend.Set(chunkKey(key, i), chunk); err != nil {
			return err
		}
	}
	if err := s.backend.Set(markerKey(key), strconv.Itoa(len(chunks))); err != nil {
		return err
	}

	s.pruneChunks(key, len(chunks), prevCount)
	if err := s.backend.Delete(key); err != nil {
		s.logger.Warn("failed to delete stale direct entry", "key", key, "err", err)
	}
	return nil
}

// Remove deletes whichever representation exists at key. Best-effort:
// failures are logged, never surfaced.
func (s *Store) Remove(key string) {
	count := s.chunkCount(key)
	s.pruneChunks(key, 0, count)
	if err := s.backend.Delete(markerKey(key)); err != nil {
		s.logger.Warn("failed to delete chunk marker", "key", key, "err", err)
	}
	if err := s.backend.Delete(key); err != nil {
		s.logger.Warn("failed to delete entry", "key", key, "err", err)
	}
}

// chunkCount reads the marker for key. Returns 0 when absent or unreadable.
func (s *Store) chunkCount(key string) int {
	marker, err := s.backend.Get(markerKey(key))
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(marker))
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// pruneChunks deletes chunk entries with indices in [from, to).
func (s *Store) pruneChunks(key string, from, to int) {
	for i := from; i < to; i++ {
		if err := s.backend.Delete(chunkKey(key, i)); err != nil {
			s.logger.Warn("failed to delete chunk", "key", key, "chunk", i, "err", err)
		}
	}
}

// splitChunks slices value into contiguous pieces of at most size bytes.
func splitChunks(value string, size int) []string {
	chunks := make([]string, 0, (len(value)+size-1)/size)
	for start := 0; start < len(value); start += size {
		end := start + size
		if end > len(value) {
			end = len(value)
		}
		chunks = append(chunks, value[start:end])
	}
	return chunks
}
