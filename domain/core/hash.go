package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough to tell runs apart in a report
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// ComputeColumnsHash fingerprints a set of named columns independent of map order.
// NaN cells hash identically regardless of payload bits.
func ComputeColumnsHash(columns map[string][]float64) Hash {
	keys := make([]string, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteByte(0)
		for _, v := range columns[key] {
			if math.IsNaN(v) {
				data.WriteString("NaN;")
				continue
			}
			data.WriteString(fmt.Sprintf("%x;", math.Float64bits(v)))
		}
	}
	return NewHash([]byte(data.String()))
}
