package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConcurrentParsing checks that many goroutines can parse at once
// without exceeding the pool size.
func TestConcurrentParsing(t *testing.T) {
	manager := newTestManager(t)

	const numGoroutines = 100
	var wg sync.WaitGroup
	errChan := make(chan error, numGoroutines)

	source := []byte("export default function Chip(props) { return <div {...props} />; }")
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := manager.Parse(source, DialectJavaScript)
			if err != nil {
				errChan <- err
				return
			}
			tree.Close()
		}()
	}
	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	assert.Empty(t, errs)

	stats := manager.GetStats()
	assert.LessOrEqual(t, stats.ParsersCreated, defaultPoolSize())
	assert.GreaterOrEqual(t, stats.ParsersCreated, 1)
	assert.Equal(t, numGoroutines, stats.ParsesCalled)
}

// TestConcurrentMultiDialect parses every dialect concurrently so pool
// creation races are exercised.
func TestConcurrentMultiDialect(t *testing.T) {
	manager := newTestManager(t)

	sources := map[Dialect][]byte{
		DialectJavaScript: []byte("Button.propTypes = { a: PropTypes.bool };"),
		DialectTypeScript: []byte("export interface ButtonSlots { root?: React.ElementType; }"),
		DialectTSX:        []byte("export const X = () => <span />;"),
	}

	const perDialect = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for dialect, src := range sources {
		for i := 0; i < perDialect; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tree, err := manager.Parse(src, dialect)
				if err != nil || tree.RootNode().HasError() {
					mu.Lock()
					failures++
					mu.Unlock()
				}
				if tree != nil {
					tree.Close()
				}
			}()
		}
	}
	wg.Wait()

	assert.Zero(t, failures)
	assert.Equal(t, perDialect*len(sources), manager.GetStats().ParsesCalled)
}
