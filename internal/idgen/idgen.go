// Package idgen mints the client-style identifiers used by the stores.
package idgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Token returns n lowercase alphanumeric characters of random entropy (n <= 32).
func Token(n int) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(raw) {
		n = len(raw)
	}
	return raw[:n]
}

// New returns "<prefix>_<8 random chars>", e.g. "ex_3f9a0c1b".
func New(prefix string) string {
	return prefix + "_" + Token(8)
}

// Resource returns "resource-<unix ms>-<9 random chars>". The id is not derived
// from content, so adding the same URL twice yields two resources.
func Resource(now time.Time) string {
	return fmt.Sprintf("resource-%d-%s", now.UnixMilli(), Token(9))
}

// Anonymous returns a fresh anonymous principal id.
func Anonymous() string {
	return "anon_" + Token(12)
}
