package quadrature

import (
	"testing"

	"tickcount/core"
)

type fixedPosition int

func (p *fixedPosition) Position() int { return int(*p) }

// motorGear is a 400-count encoder behind a 5:1 reduction
type motorGear struct{}

func (motorGear) CountsPerRev() int { return 2000 }

type bareEncoder struct{}

func (bareEncoder) CountsPerRev() int { return 400 }

func TestTryRead(t *testing.T) {
	testCases := []struct {
		name     string
		position int
		want     Revolutions
	}{
		{"zero", 0, 0},
		{"one rev", 2000, 1},
		{"half rev", 1000, 0.5},
		{"reverse", -500, -0.25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos := fixedPosition(tc.position)
			enc := New[motorGear](&pos)

			got, err := core.TryRead[int, Revolutions](enc)
			if err != nil {
				t.Fatalf("TryRead failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %v revolutions, got %v", tc.want, got)
			}
		})
	}
}

func TestGearIsPartOfType(t *testing.T) {
	pos := fixedPosition(800)

	geared := New[motorGear](&pos)
	direct := New[bareEncoder](&pos)

	if got := geared.RawToMeasure(800); got != 0.4 {
		t.Errorf("Geared: expected 0.4, got %v", got)
	}
	if got := direct.RawToMeasure(800); got != 2 {
		t.Errorf("Direct: expected 2, got %v", got)
	}
}

func TestReadFollowsSource(t *testing.T) {
	pos := fixedPosition(0)
	enc := New[bareEncoder](&pos)

	for _, p := range []int{100, 200, -400} {
		pos = fixedPosition(p)
		raw, err := enc.TryReadRaw()
		if err != nil || raw != p {
			t.Errorf("Expected %d, nil; got %d, %v", p, raw, err)
		}
	}
}
