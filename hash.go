package crossmatch

import (
	"encoding/hex"
	"hash"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// HashFunc defines a function that creates a new hash.Hash instance.
type HashFunc func() hash.Hash

// defaultHashFunc returns the default hash (xxHash64).
func defaultHashFunc() hash.Hash {
	return xxhash.New()
}

// hashAttributes returns a deterministic digest of an attribute assignment.
// Keys are visited in sorted order so equal assignments always hash equal.
func hashAttributes(h hash.Hash, attrs Attributes) string {
	h.Reset()

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(attrs[k]))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
