package core

import (
	"errors"
	"testing"
	"time"
)

type nanos uint64

// twoNanosPerTick models a 500MHz tick
type twoNanosPerTick struct{}

func (twoNanosPerTick) Mul(raw uint32) nanos { return nanos(raw) * 2 }

// mockTimer counts register reads
type mockTimer struct {
	raw   uint32
	err   error
	calls int
}

func (m *mockTimer) TryNowRaw() (uint32, error) {
	m.calls++
	return m.raw, m.err
}

// busError is a value-typed peripheral error
type busError struct {
	code uint8
}

func (e busError) Error() string { return "bus error" }

func TestTryNowScalesRawSample(t *testing.T) {
	timer := &mockTimer{raw: 100}

	got, err := TryNow[twoNanosPerTick, uint32, nanos](timer)
	if err != nil {
		t.Fatalf("TryNow failed: %v", err)
	}
	if got != 200 {
		t.Errorf("Expected 200ns, got %d", got)
	}
	if timer.calls != 1 {
		t.Errorf("Expected exactly one raw read, got %d", timer.calls)
	}
}

func TestTryNowMatchesScaleForAllSamples(t *testing.T) {
	testCases := []uint32{0, 1, 7, 100, 1 << 16, 1<<31 - 1, 0xFFFFFFFF}

	var scale twoNanosPerTick
	for _, raw := range testCases {
		timer := &mockTimer{raw: raw}
		got, err := TryNow[twoNanosPerTick, uint32, nanos](timer)
		if err != nil {
			t.Errorf("raw=%d: unexpected error %v", raw, err)
			continue
		}
		if want := scale.Mul(raw); got != want {
			t.Errorf("raw=%d: expected %d, got %d", raw, want, got)
		}
	}
}

func TestTryNowPropagatesError(t *testing.T) {
	errNotReady := errors.New("timer not ready")

	testCases := []struct {
		name string
		err  error
	}{
		{"sentinel", errNotReady},
		{"value type", busError{code: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			timer := &mockTimer{raw: 100, err: tc.err}

			got, err := TryNow[twoNanosPerTick, uint32, nanos](timer)
			if err != tc.err {
				t.Errorf("Expected error %v unchanged, got %v", tc.err, err)
			}
			if got != 0 {
				t.Errorf("Expected zero measurement on error, got %d", got)
			}
			if timer.calls != 1 {
				t.Errorf("Expected exactly one raw read, got %d", timer.calls)
			}
		})
	}
}

func TestClockBindsScale(t *testing.T) {
	timer := &mockTimer{raw: 21}
	clk := Clock[twoNanosPerTick, uint32, nanos, *mockTimer]{Source: timer}

	raw, err := clk.TryNowRaw()
	if err != nil || raw != 21 {
		t.Fatalf("TryNowRaw = %d, %v; want 21, nil", raw, err)
	}

	got, err := clk.TryNow()
	if err != nil {
		t.Fatalf("TryNow failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Expected 42ns, got %d", got)
	}
	if timer.calls != 2 {
		t.Errorf("Expected one read per call (2 total), got %d", timer.calls)
	}
}

func TestClockIsTimeCount(t *testing.T) {
	// A Clock can be the source of another scale.
	inner := Clock[twoNanosPerTick, uint32, nanos, *mockTimer]{Source: &mockTimer{raw: 1000}}

	got, err := TryNow[SystemTickScale, uint32, time.Duration](inner)
	if err != nil {
		t.Fatalf("TryNow failed: %v", err)
	}
	var scale SystemTickScale
	if want := scale.Mul(1000); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
