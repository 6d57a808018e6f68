package perf

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTimeoutChecker_RejectsNegativeBudget(t *testing.T) {
	if _, err := NewTimeoutChecker(-time.Second); err == nil {
		t.Fatal("expected an error for a negative budget")
	}
}

func TestCheck_ZeroBudgetNeverFires(t *testing.T) {
	c, err := NewTimeoutChecker(0)
	if err != nil {
		t.Fatal(err)
	}
	c.Start()
	// Backdate the start so any positive budget would have fired.
	c.startAt = time.Now().Add(-time.Hour)

	if err := c.Check("file discovery"); err != nil {
		t.Errorf("zero budget should disable checking, got %v", err)
	}
}

func TestCheck_ExceededBudgetReturnsTimeoutError(t *testing.T) {
	c, err := NewTimeoutChecker(10 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	c.Start()
	c.startAt = time.Now().Add(-time.Second)

	err = c.Check("file analysis")
	if err == nil {
		t.Fatal("expected a timeout error")
	}

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TimeoutError, got %T", err)
	}
	if te.Phase != "file analysis" {
		t.Errorf("expected phase 'file analysis', got %q", te.Phase)
	}
	if !strings.Contains(te.Error(), "file analysis") {
		t.Errorf("error message should name the phase: %q", te.Error())
	}
}

func TestCheck_WithinBudgetReturnsNil(t *testing.T) {
	c, err := NewTimeoutChecker(time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	c.Start()

	if err := c.Check("file discovery"); err != nil {
		t.Errorf("expected nil within budget, got %v", err)
	}
}

func TestCheck_BeforeStartPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when Check precedes Start")
		}
	}()
	c, _ := NewTimeoutChecker(time.Second)
	_ = c.Check("file discovery")
}
