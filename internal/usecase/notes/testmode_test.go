package notes

import "testing"

func TestNilRegistryIsInactive(t *testing.T) {
	var registry *TestModeRegistry
	if registry.ShouldForceInvalid("t1", TestModeFailOnceThenPass, "en", "transcript") {
		t.Error("nil registry must never force a failure")
	}
}

func TestFailOnceThenPass(t *testing.T) {
	registry := NewTestModeRegistry()

	if !registry.ShouldForceInvalid("t1", TestModeFailOnceThenPass, "en", "transcript") {
		t.Error("first attempt should fail")
	}
	if registry.ShouldForceInvalid("t1", TestModeFailOnceThenPass, "en", "transcript") {
		t.Error("second attempt should pass")
	}
}

func TestFailTwice(t *testing.T) {
	registry := NewTestModeRegistry()

	for attempt := 1; attempt <= 2; attempt++ {
		if !registry.ShouldForceInvalid("t1", TestModeFailTwice, "en", "transcript") {
			t.Errorf("attempt %d should fail", attempt)
		}
	}
	if registry.ShouldForceInvalid("t1", TestModeFailTwice, "en", "transcript") {
		t.Error("third attempt should pass")
	}
}

func TestAttemptsAreScopedPerTuple(t *testing.T) {
	registry := NewTestModeRegistry()

	if !registry.ShouldForceInvalid("t1", TestModeFailOnceThenPass, "en", "transcript") {
		t.Error("first attempt for t1 should fail")
	}
	if !registry.ShouldForceInvalid("t2", TestModeFailOnceThenPass, "en", "transcript") {
		t.Error("a different test id has its own counter")
	}
	if !registry.ShouldForceInvalid("t1", TestModeFailOnceThenPass, "fr", "transcript") {
		t.Error("a different language has its own counter")
	}
}

func TestUnknownModeNeverForces(t *testing.T) {
	registry := NewTestModeRegistry()
	if registry.ShouldForceInvalid("t1", "explode", "en", "transcript") {
		t.Error("unknown modes are ignored")
	}
	if registry.ShouldForceInvalid("t1", "", "en", "transcript") {
		t.Error("empty mode is ignored")
	}
}

func TestEmptyTestIDSharesDefaultCounter(t *testing.T) {
	registry := NewTestModeRegistry()

	if !registry.ShouldForceInvalid("", TestModeFailOnceThenPass, "en", "transcript") {
		t.Error("first attempt should fail")
	}
	if registry.ShouldForceInvalid("default", TestModeFailOnceThenPass, "en", "transcript") {
		t.Error("empty id and \"default\" share one counter")
	}
}
