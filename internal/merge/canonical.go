package merge

import (
	"strings"

	"carboncli/internal/config"
)

// Canonicalize maps a raw country name to its canonical key: uppercased,
// trimmed, internal whitespace collapsed to single spaces, then resolved
// through the alias table. Canonicalizing an already-canonical name is a
// no-op, which keeps the operation idempotent.
func Canonicalize(name string, aliases *config.AliasTable) string {
	normalized := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	return aliases.Resolve(normalized)
}
