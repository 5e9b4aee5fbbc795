package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/util"
)

func newTestManager(t *testing.T) *ParserManager {
	t.Helper()
	manager := NewParserManager(util.DiscardLogger())
	t.Cleanup(func() { manager.Close() })
	return manager
}

func TestDetectDialect(t *testing.T) {
	cases := map[string]Dialect{
		"Button.js":      DialectJavaScript,
		"Button.jsx":     DialectJavaScript,
		"Button.ts":      DialectTypeScript,
		"Button.d.ts":    DialectTypeScript,
		"Button.tsx":     DialectTSX,
		"Button.TSX":     DialectTSX,
		"README.md":      DialectUnknown,
		"buttonClasses":  DialectUnknown,
		"index.spec.mjs": DialectJavaScript,
	}
	for path, want := range cases {
		assert.Equal(t, want, DetectDialect(path), path)
	}
	assert.True(t, IsDeclarationFile("src/Button/Button.d.ts"))
	assert.False(t, IsDeclarationFile("src/Button/Button.ts"))
}

func TestParseDialects(t *testing.T) {
	manager := newTestManager(t)

	cases := []struct {
		dialect Dialect
		source  string
	}{
		{DialectJavaScript, "const Button = (props) => <button {...props} />;"},
		{DialectTypeScript, "export interface ButtonClasses { root: string; }"},
		{DialectTSX, "const Button = (props: Props) => <button {...props} />;"},
	}
	for _, tc := range cases {
		t.Run(tc.dialect.String(), func(t *testing.T) {
			tree, err := manager.Parse([]byte(tc.source), tc.dialect)
			require.NoError(t, err)
			defer tree.Close()

			root := tree.RootNode()
			assert.Equal(t, "program", root.Kind())
			assert.False(t, root.HasError())
		})
	}

	_, err := manager.Parse([]byte("x"), DialectUnknown)
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	manager := newTestManager(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "Badge.tsx")
	require.NoError(t, os.WriteFile(path, []byte("export default function Badge() { return <span />; }\n"), 0o644))

	file, err := manager.ParseFile(path)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, DialectTSX, file.Dialect)
	assert.Equal(t, "program", file.Root().Kind())

	_, err = manager.ParseFile(filepath.Join(dir, "missing.js"))
	assert.Error(t, err)

	_, err = manager.ParseSource("notes.txt", []byte("hello"))
	assert.Error(t, err)
}

func TestLazyPoolCreation(t *testing.T) {
	manager := newTestManager(t)
	assert.Equal(t, 0, manager.GetStats().ParsersCreated)

	for i := 0; i < 3; i++ {
		tree, err := manager.Parse([]byte("const x = 1;"), DialectJavaScript)
		require.NoError(t, err)
		tree.Close()
	}

	stats := manager.GetStats()
	assert.Equal(t, 1, stats.ParsersCreated, "sequential parses reuse one parser")
	assert.Equal(t, 3, stats.ParsesCalled)
}

func TestNodeHelpers(t *testing.T) {
	manager := newTestManager(t)
	src := `const a = 'it\'s';
/** first */
// plain
/** Docs for b. */
const b = ("x");
`
	file, err := manager.ParseSource("a.js", []byte(src))
	require.NoError(t, err)
	defer file.Close()

	var strs []string
	Walk(file.Root(), func(n *ts.Node) bool {
		if v, ok := StringValue(n, file.Source); ok {
			strs = append(strs, v)
		}
		return true
	})
	assert.Equal(t, []string{"it's", "x"}, strs)

	decls := NamedChildren(file.Root())
	last := decls[len(decls)-1]
	require.Equal(t, "lexical_declaration", last.Kind())

	doc, ok := LeadingDocBlock(last, file.Source)
	require.True(t, ok)
	assert.Equal(t, "/** Docs for b. */", doc)

	comments := PrecedingComments(last)
	require.Len(t, comments, 3)
	assert.Equal(t, "/** first */", file.Text(comments[0]))

	declarator := last.NamedChild(0)
	value := UnwrapExpression(declarator.ChildByFieldName("value"))
	assert.Equal(t, "string", value.Kind())
	assert.Equal(t, "b", FieldText(declarator, "name", file.Source))
}

func TestUnwrapExpressionTypeScript(t *testing.T) {
	manager := newTestManager(t)
	file, err := manager.ParseSource("a.ts", []byte("const props = (({ a: 1 }) as Props)!;\n"))
	require.NoError(t, err)
	defer file.Close()

	declarator := file.Root().NamedChild(0).NamedChild(0)
	value := UnwrapExpression(declarator.ChildByFieldName("value"))
	assert.Equal(t, "object", value.Kind())
	assert.Nil(t, UnwrapExpression(nil))
}
