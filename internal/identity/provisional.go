package identity

import (
	"strconv"
	"strings"
)

// ProvisionalPrefix marks identifiers that have not been issued by a store.
const ProvisionalPrefix = "tmp-"

// IsProvisional reports whether id was minted locally.
func IsProvisional(id string) bool {
	return strings.HasPrefix(id, ProvisionalPrefix)
}

// ProvisionalID returns the n-th placeholder for scope, e.g.
// "tmp-3f2a9c1b0d4e-1". Output depends only on scope and n.
func ProvisionalID(scope string, n uint64) string {
	seq := strconv.FormatUint(n, 10)
	digest := UUID("go-lessons:provisional:" + strings.TrimSpace(scope) + ":" + seq)
	hex := strings.ReplaceAll(digest.String(), "-", "")
	return ProvisionalPrefix + hex[:12] + "-" + seq
}
