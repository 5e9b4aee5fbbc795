// Package queries provides tree-sitter query compilation, caching, and execution.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/parser"
	"github.com/gnana997/propdoc/pkg/parser/queries/conformance"
	"github.com/gnana997/propdoc/pkg/parser/queries/spread"
	"github.com/gnana997/propdoc/pkg/parser/queries/styles"
)

// QueryType identifies which query to execute.
type QueryType int

const (
	// QueryTypeInterfaces matches TypeScript interface declarations
	QueryTypeInterfaces QueryType = iota
	// QueryTypeConformance matches describeConformance calls in test files
	QueryTypeConformance
	// QueryTypeJSXSpread matches {...props} attributes in JSX
	QueryTypeJSXSpread
)

// String returns the string representation of a QueryType.
func (qt QueryType) String() string {
	switch qt {
	case QueryTypeInterfaces:
		return "interfaces"
	case QueryTypeConformance:
		return "conformance"
	case QueryTypeJSXSpread:
		return "jsx-spread"
	default:
		return "unknown"
	}
}

type queryKey struct {
	dialect parser.Dialect
	qtype   QueryType
}

// QueryManager compiles queries lazily and caches them per dialect.
//
// Usage:
//
//	qm := NewQueryManager(parserManager, logger)
//	defer qm.Close()
//
//	query, err := qm.GetQuery(parser.DialectTypeScript, QueryTypeInterfaces)
//	if err != nil {
//	    return err
//	}
//	matches, err := qm.ExecuteQuery(file.Root(), query, file.Source)
type QueryManager struct {
	parserManager *parser.ParserManager
	cache         map[queryKey]*ts.Query
	mutex         sync.RWMutex
	logger        *slog.Logger
}

// NewQueryManager creates a new query manager.
func NewQueryManager(pm *parser.ParserManager, logger *slog.Logger) *QueryManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryManager{
		parserManager: pm,
		cache:         make(map[queryKey]*ts.Query),
		logger:        logger,
	}
}

// GetQuery returns the compiled query for dialect and qtype.
//
// Returns an error when the query does not apply to the dialect (JSX
// queries on plain TypeScript) or fails to compile.
func (qm *QueryManager) GetQuery(dialect parser.Dialect, qtype QueryType) (*ts.Query, error) {
	key := queryKey{dialect: dialect, qtype: qtype}

	qm.mutex.RLock()
	query, exists := qm.cache[key]
	qm.mutex.RUnlock()
	if exists {
		return query, nil
	}

	qm.mutex.Lock()
	defer qm.mutex.Unlock()
	if query, exists = qm.cache[key]; exists {
		return query, nil
	}

	source, err := queryString(dialect, qtype)
	if err != nil {
		return nil, err
	}
	langPtr, err := qm.parserManager.LanguagePointer(dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to get language pointer for %s: %w", dialect, err)
	}

	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), source)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile %s query for %s: %s", qtype, dialect, qerr.Message)
	}
	qm.cache[key] = query

	qm.logger.Debug("compiled query",
		"dialect", dialect.String(),
		"type", qtype.String())
	return query, nil
}

func queryString(dialect parser.Dialect, qtype QueryType) (string, error) {
	switch qtype {
	case QueryTypeInterfaces:
		if dialect == parser.DialectTypeScript || dialect == parser.DialectTSX {
			return styles.TSQueries, nil
		}
	case QueryTypeConformance:
		if dialect != parser.DialectUnknown {
			return conformance.Queries, nil
		}
	case QueryTypeJSXSpread:
		if dialect.HasJSX() {
			return spread.JSXQueries, nil
		}
	default:
		return "", fmt.Errorf("unknown query type: %d", qtype)
	}
	return "", fmt.Errorf("%s query not supported for dialect: %s", qtype, dialect)
}

// ExecuteQuery runs a compiled query below node and returns structured
// matches. node may be any node of the tree, not only the root.
func (qm *QueryManager) ExecuteQuery(node *ts.Node, query *ts.Query, source []byte) ([]QueryMatch, error) {
	if node == nil {
		return nil, fmt.Errorf("node is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, node, source)
	captureNames := query.CaptureNames()

	var matches []QueryMatch
	for match := iter.Next(); match != nil; match = iter.Next() {
		captures := make([]QueryCapture, 0, len(match.Captures))
		for _, capture := range match.Captures {
			var name string
			if int(capture.Index) < len(captureNames) {
				name = captureNames[capture.Index]
			}
			category, field := parseCaptureName(name)
			node := capture.Node
			captures = append(captures, QueryCapture{
				Name:     name,
				Category: category,
				Field:    field,
				Node:     &node,
				Text:     node.Utf8Text(source),
			})
		}
		matches = append(matches, QueryMatch{
			PatternIndex: uint32(match.PatternIndex),
			Captures:     captures,
		})
	}
	return matches, nil
}

// Close releases all compiled queries.
func (qm *QueryManager) Close() error {
	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	qm.logger.Debug("closing QueryManager", "queries_compiled", len(qm.cache))
	for key, query := range qm.cache {
		query.Close()
		delete(qm.cache, key)
	}
	return nil
}

// QueryMatch represents a single pattern match from query execution.
type QueryMatch struct {
	PatternIndex uint32
	Captures     []QueryCapture
}

// Capture returns the first capture with the given full name.
func (m QueryMatch) Capture(name string) (QueryCapture, bool) {
	for _, c := range m.Captures {
		if c.Name == name {
			return c, true
		}
	}
	return QueryCapture{}, false
}

// QueryCapture represents a single captured node from a query match.
type QueryCapture struct {
	// Name is the full capture name (e.g., "interface.name")
	Name string

	// Category is the part before the dot ("interface")
	Category string

	// Field is the part after the dot ("name"); empty when there is no dot
	Field string

	Node *ts.Node
	Text string
}

// parseCaptureName splits "interface.name" into ("interface", "name").
func parseCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}
