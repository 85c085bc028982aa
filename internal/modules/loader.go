// Package modules loads a JSON-encoded ESTree program from a scriptUrl and
// caches the decoded result. This interpreter's unit of execution is a
// single top-level script rather than a dependency graph of imported
// packages, so this package only covers "get me the Program for this
// scriptUrl" for a host that wants to run the same script against many
// contexts without re-decoding it.
package modules

import (
	"fmt"
	"os"
	"sync"

	"github.com/jstrack/interp/internal/ast"
)

// Loader caches decoded programs by scriptUrl.
type Loader struct {
	mu    sync.RWMutex
	cache map[string]*ast.Program
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]*ast.Program)}
}

// Load returns the Program for scriptUrl, reading and decoding the file on
// first use and serving the cached result thereafter. scriptUrl is treated
// as a filesystem path; a host embedding this loader over HTTP or another
// source can populate the cache directly with LoadBytes instead.
func (l *Loader) Load(scriptUrl string) (*ast.Program, error) {
	l.mu.RLock()
	if prog, ok := l.cache[scriptUrl]; ok {
		l.mu.RUnlock()
		return prog, nil
	}
	l.mu.RUnlock()

	data, err := os.ReadFile(scriptUrl)
	if err != nil {
		return nil, fmt.Errorf("modules: read %s: %w", scriptUrl, err)
	}
	return l.LoadBytes(scriptUrl, data)
}

// LoadBytes decodes data as a JSON ESTree program and caches it under
// scriptUrl, regardless of where the bytes actually came from.
func (l *Loader) LoadBytes(scriptUrl string, data []byte) (*ast.Program, error) {
	prog, err := ast.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("modules: decode %s: %w", scriptUrl, err)
	}

	l.mu.Lock()
	l.cache[scriptUrl] = prog
	l.mu.Unlock()
	return prog, nil
}

// Forget evicts scriptUrl from the cache, useful for a watch-mode CLI that
// re-runs a script after it changes on disk.
func (l *Loader) Forget(scriptUrl string) {
	l.mu.Lock()
	delete(l.cache, scriptUrl)
	l.mu.Unlock()
}
