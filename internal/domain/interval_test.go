package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"partial overlap", Interval{600, 660}, Interval{630, 690}, true},
		{"contained", Interval{600, 720}, Interval{630, 660}, true},
		{"identical", Interval{600, 660}, Interval{600, 660}, true},
		{"disjoint", Interval{600, 660}, Interval{720, 780}, false},
		{"touching endpoints", Interval{600, 660}, Interval{660, 720}, false},
		{"touching reversed", Interval{660, 720}, Interval{600, 660}, false},
		{"one minute overlap", Interval{600, 661}, Interval{660, 720}, true},
		{"zero-length left", Interval{600, 600}, Interval{540, 660}, false},
		{"zero-length right", Interval{540, 660}, Interval{600, 600}, false},
		{"both zero-length", Interval{600, 600}, Interval{600, 600}, false},
		{"inverted", Interval{660, 600}, Interval{540, 720}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestIntervalOverlapsSymmetryRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a := Interval{Start: rng.Intn(1440), End: rng.Intn(1440)}
		b := Interval{Start: rng.Intn(1440), End: rng.Intn(1440)}
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "a=%v b=%v", a, b)
	}
}

func TestIntervalIsEmpty(t *testing.T) {
	assert.True(t, Interval{600, 600}.IsEmpty())
	assert.True(t, Interval{660, 600}.IsEmpty())
	assert.False(t, Interval{600, 601}.IsEmpty())
}

func TestIntervalPad(t *testing.T) {
	padded := Interval{600, 660}.Pad(15)
	assert.Equal(t, Interval{600, 675}, padded)
	assert.Equal(t, Interval{600, 660}, Interval{600, 660}.Pad(0))
}

func TestIntervalPadCreatesOverlap(t *testing.T) {
	booking := Interval{600, 660} // 10:00-11:00
	next := Interval{660, 720}    // 11:00-12:00

	assert.False(t, booking.Overlaps(next))
	assert.True(t, booking.Pad(15).Overlaps(next))
}

func TestIntervalContains(t *testing.T) {
	outer := Interval{540, 1140}
	assert.True(t, outer.Contains(Interval{600, 660}))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(Interval{500, 660}))
	assert.False(t, outer.Contains(Interval{600, 1200}))
}

func TestIntervalLength(t *testing.T) {
	assert.Equal(t, 60, Interval{600, 660}.Length())
	assert.Equal(t, 0, Interval{600, 600}.Length())
}
