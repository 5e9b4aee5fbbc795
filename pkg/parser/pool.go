package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propdoc/pkg/util"
)

// parserPool hands out tree-sitter parsers for a single dialect.
//
// Parsers are created lazily up to maxSize; once the limit is reached
// acquire blocks until another goroutine releases one.
type parserPool struct {
	pool    chan *ts.Parser
	langPtr unsafe.Pointer
	dialect Dialect
	maxSize int

	// mutex protects created and parser construction
	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

// defaultPoolSize MUST match the build runner's concurrency, otherwise
// workers block waiting for a parser.
func defaultPoolSize() int {
	return util.GetOptimalPoolSize()
}

func newParserPool(dialect Dialect, langPtr unsafe.Pointer, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		dialect: dialect,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns an idle parser, creating one if the pool has room.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
	}

	p.mutex.Lock()
	if p.created >= p.maxSize {
		p.mutex.Unlock()
		return <-p.pool, nil
	}
	defer p.mutex.Unlock()

	parser := ts.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create parser")
	}
	if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	p.created++
	p.logger.Debug("created parser in pool",
		"dialect", p.dialect.String(),
		"pool_size", p.created)

	return parser, nil
}

// release returns a parser to the pool for reuse.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.pool <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser",
			"dialect", p.dialect.String())
	}
}

// close releases all idle parsers. The pool cannot be used afterwards.
func (p *parserPool) close() {
	close(p.pool)
	count := 0
	for parser := range p.pool {
		parser.Close()
		count++
	}
	p.logger.Debug("closed parser pool",
		"dialect", p.dialect.String(),
		"parsers_closed", count)
}

func (p *parserPool) createdCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
