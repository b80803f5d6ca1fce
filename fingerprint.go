package sitechat

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable hex-encoded hash of s. It is used both as
// the per-page deduplication key and as the vector index identifier derived
// from a site's base URL.
func Fingerprint(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}
