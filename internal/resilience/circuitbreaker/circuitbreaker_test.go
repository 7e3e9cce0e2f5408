package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig(minRequests uint32) Config {
	return Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      minRequests,
	}
}

func TestCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cb := New(testConfig(3))
	boom := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(func() (any, error) { return nil, boom }); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: err = %v, want %v", i, err, boom)
		}
	}

	if !cb.IsOpen() {
		t.Fatal("breaker should be open after reaching the failure threshold")
	}

	called := false
	_, err := cb.Execute(func() (any, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
	if called {
		t.Error("open breaker must not invoke the function")
	}
}

func TestCircuitBreaker_StaysClosedBelowMinRequests(t *testing.T) {
	cb := New(testConfig(5))
	boom := errors.New("timeout")

	for i := 0; i < 4; i++ {
		cb.Execute(func() (any, error) { return nil, boom })
	}

	if cb.IsOpen() {
		t.Error("breaker must not trip before the minimum sample size")
	}
}

func TestCircuitBreaker_PassesThroughOnSuccess(t *testing.T) {
	cb := New(testConfig(1))

	result, err := cb.Execute(func() (any, error) { return 42, nil })
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if result.(int) != 42 {
		t.Errorf("result = %v", result)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed", cb.State())
	}
}
