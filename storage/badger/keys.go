package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/jobmatch/core"
)

// Key prefixes for different data types
const (
	jobRecordPrefix            = "jobrec"
	jobRecordSourcePrefix      = "jobrecs"
	jobRecordFingerprintPrefix = "jobrecf"
	jobRecordIDSeq             = "jobrecseq"
)

// makeJobRecordKey generates a key for a job posting by ID.
func makeJobRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", jobRecordPrefix, id))
}

// makeJobSourceKey generates a composite key for the source index.
// Format: prefix:source:id
func makeJobSourceKey(source core.Source, id core.ID) []byte {
	prefix := jobRecordSourcePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for source + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(source))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialJobSourceKey generates a partial key for per-source scans.
// Format: prefix:source
func makePartialJobSourceKey(source core.Source) []byte {
	prefix := jobRecordSourcePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for source
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(source))
	return buf
}

// makeJobFingerprintKey generates a key for the content fingerprint index.
// Format: prefix:fingerprint
func makeJobFingerprintKey(fingerprint core.ID) []byte {
	prefix := jobRecordFingerprintPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for fingerprint
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fingerprint))
	return buf
}
