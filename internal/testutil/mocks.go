package testutil

import (
	"context"
	"sync"
)

// FakeCompleter is a scripted completion client. It returns Responses in
// order and records every prompt it receives.
type FakeCompleter struct {
	ProviderName string
	Responses    []string
	Err          error

	// Block, when set, makes Complete wait until it is closed or ctx is done
	Block chan struct{}

	mu      sync.Mutex
	prompts []string
}

// NewFakeCompleter returns a FakeCompleter answering with the given responses
func NewFakeCompleter(responses ...string) *FakeCompleter {
	return &FakeCompleter{ProviderName: "fake", Responses: responses}
}

// NewFailingCompleter returns a FakeCompleter that fails every call with err
func NewFailingCompleter(err error) *FakeCompleter {
	return &FakeCompleter{ProviderName: "fake", Err: err}
}

// Name returns the provider name
func (f *FakeCompleter) Name() string {
	if f.ProviderName == "" {
		return "fake"
	}
	return f.ProviderName
}

// Complete records prompt and returns the next scripted response
func (f *FakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	call := len(f.prompts) - 1
	f.mu.Unlock()

	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if f.Err != nil {
		return "", f.Err
	}

	if len(f.Responses) == 0 {
		return "", nil
	}
	if call >= len(f.Responses) {
		return f.Responses[len(f.Responses)-1], nil
	}
	return f.Responses[call], nil
}

// Prompts returns the prompts received so far
func (f *FakeCompleter) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	prompts := make([]string, len(f.prompts))
	copy(prompts, f.prompts)
	return prompts
}

// Calls returns the number of Complete calls
func (f *FakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
