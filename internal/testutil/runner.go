// internal/testutil/runner.go
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Invocation records one Run call seen by the fake runner.
type Invocation struct {
	Name string
	Args []string
}

// Command renders the invocation as a single space-joined line, convenient
// for substring assertions.
func (i Invocation) Command() string {
	return strings.Join(append([]string{i.Name}, i.Args...), " ")
}

// Response scripts the result of one Run call.
type Response struct {
	Output   string
	ExitCode int
	Err      error
	// Do runs after the invocation is recorded, before the response is
	// returned. Used to mimic on-disk side effects such as venv creation.
	Do func()
}

// Handler decides the response for an invocation.
type Handler func(inv Invocation) Response

// FakeRunner is a scriptable core.Runner for tests. Handlers are matched in
// registration order against the rendered command line; the first handler
// whose prefix matches wins.
type FakeRunner struct {
	mu          sync.Mutex
	invocations []Invocation
	handlers    []prefixHandler
	paths       map[string]string
}

type prefixHandler struct {
	prefix string
	h      Handler
}

// NewFakeRunner creates an empty fake runner. With no handlers and no paths
// every LookPath fails and every Run returns exit 0 with no output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{paths: make(map[string]string)}
}

// SetPath registers name as resolvable on the fake PATH.
func (f *FakeRunner) SetPath(name, resolved string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths[name] = resolved
}

// Handle registers a scripted response for command lines starting with prefix.
func (f *FakeRunner) Handle(prefix string, resp Response) {
	f.HandleFunc(prefix, func(Invocation) Response { return resp })
}

// HandleFunc registers a handler for command lines starting with prefix.
func (f *FakeRunner) HandleFunc(prefix string, h Handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, prefixHandler{prefix: prefix, h: h})
}

// Run implements core.Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	inv := Invocation{Name: name, Args: args}

	f.mu.Lock()
	f.invocations = append(f.invocations, inv)
	var handler Handler
	line := inv.Command()
	for _, ph := range f.handlers {
		if strings.HasPrefix(line, ph.prefix) {
			handler = ph.h
			break
		}
	}
	f.mu.Unlock()

	if handler == nil {
		return nil, 0, nil
	}

	resp := handler(inv)
	if resp.Do != nil {
		resp.Do()
	}
	return []byte(resp.Output), resp.ExitCode, resp.Err
}

// LookPath implements core.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("executable file not found in fake PATH: %s", name)
}

// Invocations returns a copy of all recorded Run calls.
func (f *FakeRunner) Invocations() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Invocation(nil), f.invocations...)
}

// CountMatching counts recorded invocations whose command line contains substr.
func (f *FakeRunner) CountMatching(substr string) int {
	n := 0
	for _, inv := range f.Invocations() {
		if strings.Contains(inv.Command(), substr) {
			n++
		}
	}
	return n
}
