// Package naming derives module identifiers and paths from table names.
package naming

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultRoot is where API modules live, relative to the project directory.
const DefaultRoot = "src/api"

// DisplayName turns an underscore-delimited identifier into kebab-case:
// every '_' becomes '-' and the result is lowercased. Applying it twice is
// the same as applying it once.
func DisplayName(identifier string) string {
	return strings.ToLower(strings.ReplaceAll(identifier, "_", "-"))
}

// PluralName appends "s". Irregular plurals are not handled.
func PluralName(singular string) string {
	return singular + "s"
}

// Title upper-cases the first rune of s and leaves the rest alone.
func Title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ModuleInfo locates one generated API module.
type ModuleInfo struct {
	// SingularName is the kebab-case module name, e.g. "order-item".
	SingularName string

	// BasePath is the slash-separated module directory, e.g. "src/api/order-item".
	BasePath string
}

// NewModuleInfo strips prefix from table, converts it with DisplayName and
// joins the result onto root. An empty root means DefaultRoot.
func NewModuleInfo(table, prefix, root string) ModuleInfo {
	if root == "" {
		root = DefaultRoot
	}
	singular := DisplayName(strings.TrimPrefix(table, prefix))
	return ModuleInfo{
		SingularName: singular,
		BasePath:     path.Join(root, singular),
	}
}

// UID is the content-type identifier used by the factory calls,
// e.g. "api::product.product".
func (m ModuleInfo) UID() string {
	return "api::" + m.SingularName + "." + m.SingularName
}
