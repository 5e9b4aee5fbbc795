package parser

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ParserManager owns one parser pool per dialect.
//
// Pools are created lazily on first use. The manager must be closed via
// Close(); callers own the returned trees and files and must close them.
//
// Example:
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	file, err := manager.ParseFile("src/Button/Button.js")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
type ParserManager struct {
	pools map[Dialect]*parserPool

	// mutex guards pools and stats
	mutex sync.RWMutex

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewParserManager creates a new ParserManager instance.
func NewParserManager(logger *slog.Logger) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:  make(map[Dialect]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the grammar for dialect.
//
// Returns a Tree that MUST be closed by the caller. Trees with syntax errors
// are still returned; partial trees are enough for most extraction.
func (pm *ParserManager) Parse(source []byte, dialect Dialect) (*ts.Tree, error) {
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("cannot parse unknown dialect")
	}

	pm.mutex.Lock()
	pm.stats.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", dialect, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}
	if tree.RootNode().HasError() {
		pm.logger.Debug("parse tree contains errors", "dialect", dialect.String())
	}
	return tree, nil
}

// ParseSource parses an in-memory source, detecting the dialect from path.
func (pm *ParserManager) ParseSource(path string, source []byte) (*File, error) {
	dialect := DetectDialect(path)
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", path)
	}
	tree, err := pm.Parse(source, dialect)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &File{Path: path, Source: source, Dialect: dialect, Tree: tree}, nil
}

// ParseFile reads and parses a file from disk.
func (pm *ParserManager) ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return pm.ParseSource(path, source)
}

// Close releases all parser pools. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.createdCount()
		pool.close()
	}
	pm.logger.Debug("closing ParserManager",
		"parsers_created", created,
		"parses_called", pm.stats.parsesCalled)

	pm.pools = make(map[Dialect]*parserPool)
	return nil
}

// getOrCreatePool uses double-checked locking so concurrent first parses of
// a dialect share one pool.
func (pm *ParserManager) getOrCreatePool(dialect Dialect) (*parserPool, error) {
	pm.mutex.RLock()
	pool, exists := pm.pools[dialect]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if pool, exists = pm.pools[dialect]; exists {
		return pool, nil
	}

	langPtr, err := pm.LanguagePointer(dialect)
	if err != nil {
		return nil, err
	}
	size := defaultPoolSize()
	pool = newParserPool(dialect, langPtr, size, pm.logger)
	pm.pools[dialect] = pool

	pm.logger.Debug("created new parser pool",
		"dialect", dialect.String(),
		"maxSize", size)
	return pool, nil
}

// LanguagePointer returns the tree-sitter grammar for dialect. The query
// manager uses it to compile queries.
func (pm *ParserManager) LanguagePointer(dialect Dialect) (unsafe.Pointer, error) {
	switch dialect {
	case DialectJavaScript:
		return ts_javascript.Language(), nil
	case DialectTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case DialectTSX:
		return ts_typescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect.String())
	}
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	total := 0
	for _, pool := range pm.pools {
		total += pool.createdCount()
	}
	return ParserStats{
		ParsersCreated: total,
		ParsesCalled:   pm.stats.parsesCalled,
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
}

// File is a parsed source file. Node text is only valid while the File is
// open.
type File struct {
	Path    string
	Source  []byte
	Dialect Dialect
	Tree    *ts.Tree
}

// Root returns the program node.
func (f *File) Root() *ts.Node {
	return f.Tree.RootNode()
}

// Text returns the source text of n.
func (f *File) Text(n *ts.Node) string {
	return Text(n, f.Source)
}

// Close frees the syntax tree.
func (f *File) Close() {
	if f != nil && f.Tree != nil {
		f.Tree.Close()
		f.Tree = nil
	}
}
