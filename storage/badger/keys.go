package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/chrismlittle123/finchly/core"
)

// Key prefixes for different data types
const (
	linkRecordPrefix  = "lnkrec"
	linkCreatedPrefix = "lnkrecd"
	linkURLPrefix     = "lnkurl"
)

// makeLinkKey generates a key for a link record by ID.
func makeLinkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", linkRecordPrefix, id))
}

// makeLinkURLKey generates a key for the unique URL index.
func makeLinkURLKey(url string) []byte {
	return []byte(fmt.Sprintf("%s:%s", linkURLPrefix, url))
}

// makeLinkCreatedKey generates a composite key for the creation-time index.
// Format: prefix:timestamp:id
func makeLinkCreatedKey(timestamp time.Time, id core.ID) []byte {
	prefix := linkCreatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialLinkCreatedKey generates a partial key for creation-time
// range queries. Format: prefix:timestamp
func makePartialLinkCreatedKey(timestamp time.Time) []byte {
	prefix := linkCreatedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
