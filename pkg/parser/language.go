package parser

import (
	"path/filepath"
	"strings"
)

// Dialect selects the tree-sitter grammar used for a source file.
type Dialect int

const (
	// DialectUnknown marks a file that cannot be parsed
	DialectUnknown Dialect = iota
	// DialectJavaScript covers .js/.jsx; the JavaScript grammar parses JSX natively
	DialectJavaScript
	// DialectTypeScript covers .ts and declaration files (.d.ts)
	DialectTypeScript
	// DialectTSX covers .tsx
	DialectTSX
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectJavaScript:
		return "javascript"
	case DialectTypeScript:
		return "typescript"
	case DialectTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// HasJSX reports whether the grammar understands JSX syntax.
func (d Dialect) HasJSX() bool {
	return d == DialectJavaScript || d == DialectTSX
}

// DetectDialect detects the grammar from a file path.
// Returns DialectUnknown if the extension is not recognized.
func DetectDialect(filePath string) Dialect {
	lower := strings.ToLower(filePath)
	if strings.HasSuffix(lower, ".d.ts") {
		return DialectTypeScript
	}

	switch filepath.Ext(lower) {
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return DialectJavaScript
	default:
		return DialectUnknown
	}
}

// IsDeclarationFile reports whether path is a TypeScript declaration file.
func IsDeclarationFile(filePath string) bool {
	return strings.HasSuffix(strings.ToLower(filePath), ".d.ts")
}

// SupportedDialects returns all parseable dialects.
func SupportedDialects() []Dialect {
	return []Dialect{DialectJavaScript, DialectTypeScript, DialectTSX}
}
