package notes

import (
	"fmt"
	"sync"
)

// Test modes accepted via the x-test-mode header
const (
	TestModeFailOnceThenPass = "fail_once_then_pass"
	TestModeFailTwice        = "fail_twice"
)

// TestModeRegistry injects schema failures for integration tests. It
// counts attempts per (test id, mode, language, transcript) tuple so a
// retried request observes the scripted failure sequence. Constructed
// only when ENABLE_TEST_MODE is on; a nil registry is always inactive.
type TestModeRegistry struct {
	mu       sync.Mutex
	attempts map[string]int
}

// NewTestModeRegistry creates an empty registry
func NewTestModeRegistry() *TestModeRegistry {
	return &TestModeRegistry{attempts: make(map[string]int)}
}

// ShouldForceInvalid records an attempt and reports whether this
// request must be answered with an invalid payload.
func (r *TestModeRegistry) ShouldForceInvalid(testID, mode, language, transcript string) bool {
	if r == nil {
		return false
	}
	if mode != TestModeFailOnceThenPass && mode != TestModeFailTwice {
		return false
	}
	if testID == "" {
		testID = "default"
	}

	key := fmt.Sprintf("%s::%s::%s::%s", testID, mode, language, transcript)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[key]++

	if mode == TestModeFailOnceThenPass {
		return r.attempts[key] == 1
	}
	return r.attempts[key] <= 2
}
