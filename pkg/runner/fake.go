package runner

import (
	"context"
	"strings"
	"sync"
)

// Fake is an in-memory Runner for tests. Responses are keyed by the joined argument list.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	Calls     [][]string
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{Responses: map[string]string{}, Errors: map[string]error{}}
}

// On registers stdout for an invocation.
func (f *Fake) On(out string, args ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[strings.Join(args, " ")] = out
	return f
}

// Fail registers an error for an invocation.
func (f *Fake) Fail(err error, args ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[strings.Join(args, " ")] = err
	return f
}

// Run records the call and replays the registered response.
func (f *Fake) Run(_ context.Context, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, append([]string(nil), args...))
	key := strings.Join(args, " ")
	if err, ok := f.Errors[key]; ok {
		return "", err
	}
	return strings.TrimSpace(f.Responses[key]), nil
}

// CallCount returns how many invocations were recorded.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Called reports whether args were invoked.
func (f *Fake) Called(args ...string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.Join(args, " ")
	for _, c := range f.Calls {
		if strings.Join(c, " ") == key {
			return true
		}
	}
	return false
}
