package sitegen

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sitegen_server/internal/types"
)

// fakeGenerator answers prompts from a script: the first rule whose key is
// contained in the prompt wins. Unmatched prompts get fallback.
type fakeGenerator struct {
	mu       sync.Mutex
	rules    []fakeRule
	fallback string
	calls    []fakeCall
}

type fakeRule struct {
	contains string
	text     string
	err      error
}

type fakeCall struct {
	prompt string
	opts   types.GenerationOptions
}

var errFakeModel = errors.New("model unavailable")

func (f *fakeGenerator) on(contains, text string) *fakeGenerator {
	f.rules = append(f.rules, fakeRule{contains: contains, text: text})
	return f
}

func (f *fakeGenerator) fail(contains string, err error) *fakeGenerator {
	f.rules = append(f.rules, fakeRule{contains: contains, err: err})
	return f
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts types.GenerationOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{prompt: prompt, opts: opts})
	for _, r := range f.rules {
		if strings.Contains(prompt, r.contains) {
			return r.text, r.err
		}
	}
	return f.fallback, nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
