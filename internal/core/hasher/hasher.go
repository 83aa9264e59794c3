// Package hasher computes the integrity digests recorded in the lockfile.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/nightconcept/scif-go/internal/core/manifest"
)

// Prefix tags every digest with its algorithm.
const Prefix = "sha256:"

// SHA256 returns the digest of content as "sha256:<hex>".
func SHA256(content []byte) string {
	sum := sha256.Sum256(content)
	return Prefix + hex.EncodeToString(sum[:])
}

// Manifest digests the canonical form of m: one requirement per line in
// declaration order. Reordering or changing any constraint changes it.
func Manifest(m *manifest.Manifest) string {
	var b strings.Builder
	for _, r := range m.Requirements() {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	return SHA256([]byte(b.String()))
}
