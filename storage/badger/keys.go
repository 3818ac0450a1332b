package badger

import (
	"encoding/binary"
	"time"

	"github.com/poiesic/studykit/core"
)

// Key prefixes for different data types
const (
	resultPrefix = "sturesult"
	examPrefix   = "stuexam"
	secretPrefix = "secret"
)

// makeResultKey generates a composite key for a study result.
// Format: prefix:userID:^timestamp:id
// The timestamp is stored BigEndian and bit-inverted so lexicographic
// iteration over the user's prefix yields newest records first.
func makeResultKey(userID string, createdAt time.Time, id core.ID) []byte {
	return makeTimeKey(resultPrefix, userID, createdAt, id)
}

// makePartialResultKey generates the iteration prefix for a user's results.
func makePartialResultKey(userID string) []byte {
	return []byte(resultPrefix + ":" + userID + ":")
}

// makeExamKey generates a composite key for a practice exam.
func makeExamKey(userID string, createdAt time.Time, id core.ID) []byte {
	return makeTimeKey(examPrefix, userID, createdAt, id)
}

// makePartialExamKey generates the iteration prefix for a user's exams.
func makePartialExamKey(userID string) []byte {
	return []byte(examPrefix + ":" + userID + ":")
}

func makeTimeKey(prefix, userID string, ts time.Time, id core.ID) []byte {
	head := prefix + ":" + userID + ":"
	buf := make([]byte, len(head)+16) // 8 bytes timestamp + 8 bytes ID
	offset := copy(buf, head)
	// Invert so larger (newer) timestamps sort first.
	binary.BigEndian.PutUint64(buf[offset:], ^uint64(ts.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeSecretKey generates a key for a secure-store entry.
func makeSecretKey(key string) []byte {
	return []byte(secretPrefix + ":" + key)
}
