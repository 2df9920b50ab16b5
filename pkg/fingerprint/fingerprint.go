// Package fingerprint derives stable cache keys from search parameters.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Search returns the hex SHA-256 fingerprint of a search parameter tuple.
// Every parameter that influences the result must be included; changing any
// one of them changes the fingerprint.
//
// Fields are length-prefixed in the canonical form so tuples are unambiguous
// for arbitrary input: no byte value in a field can shift content across a
// field boundary.
func Search(query, mode, window, group string) string {
	h := sha256.New()
	for _, field := range []string{"search", query, mode, window, group} {
		fmt.Fprintf(h, "%d:%s", len(field), field)
	}
	return hex.EncodeToString(h.Sum(nil))
}
