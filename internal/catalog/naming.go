// Package catalog builds the immutable registry of refactoring capabilities:
// public tool names, descriptions, and input schemas derived from the
// engine's operation table at startup.
package catalog

import (
	"strings"
	"unicode"
)

const (
	// WirePrefix is prepended to every public tool name.
	WirePrefix = "cast_"
	// idSuffix is stripped from operation identifiers when deriving tool names.
	idSuffix = "Command"
)

// ToolNameForID derives the hyphenated public tool name from an operation
// identifier: the Command suffix is stripped and the remaining PascalCase
// token is lowered with a hyphen at each word boundary. Acronym runs stay
// together: AddXMLImport becomes add-xml-import, not add-x-m-l-import.
func ToolNameForID(id string) string {
	s := strings.TrimSuffix(id, idSuffix)
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WireName converts a tool name into its public wire form: prefixed and
// underscored. WireName and ParseWireName are inverses over valid tool
// names.
func WireName(toolName string) string {
	return WirePrefix + strings.ReplaceAll(toolName, "-", "_")
}

// ParseWireName recovers the tool name from a wire name. ok is false when
// the prefix is absent; the converted remainder is still returned so
// callers can echo something meaningful.
func ParseWireName(wireName string) (toolName string, ok bool) {
	rest, ok := strings.CutPrefix(wireName, WirePrefix)
	return strings.ReplaceAll(rest, "_", "-"), ok
}
