package core

import (
	"math"
	"slices"
	"testing"
)

func TestRNGDeterministicForSeed(t *testing.T) {
	a := NewRNG(99)
	b := NewRNG(99)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
	}

	c := NewRNG(99)
	d := NewRNG(100)
	same := true
	for i := 0; i < 10; i++ {
		if c.Float64() != d.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds should not produce identical streams")
	}
}

func TestJitterBounds(t *testing.T) {
	r := NewRNG(7)
	const mag = 0.4
	for i := 0; i < 1000; i++ {
		v := r.Jitter(mag)
		if v < -mag/2 || v >= mag/2 {
			t.Fatalf("jitter %f outside [%f, %f)", v, -mag/2, mag/2)
		}
	}
	if v := r.Jitter(0); v != 0 {
		t.Fatalf("zero magnitude jitter = %f, want 0", v)
	}
}

func TestJitterCentered(t *testing.T) {
	r := NewRNG(21)
	sum := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		sum += r.Jitter(1)
	}
	if mean := sum / n; math.Abs(mean) > 0.01 {
		t.Fatalf("jitter mean %f, want ~0", mean)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := NewRNG(13)
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	shuffled := append([]int(nil), vals...)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	sorted := append([]int(nil), shuffled...)
	slices.Sort(sorted)
	if !slices.Equal(sorted, vals) {
		t.Fatalf("shuffle lost elements: %v", shuffled)
	}
}

func TestIntNGuardsNonPositive(t *testing.T) {
	r := NewRNG(1)
	if v := r.IntN(0); v != 0 {
		t.Fatalf("IntN(0) = %d, want 0", v)
	}
	if v := r.IntN(-4); v != 0 {
		t.Fatalf("IntN(-4) = %d, want 0", v)
	}
	for i := 0; i < 100; i++ {
		if v := r.IntN(5); v < 0 || v >= 5 {
			t.Fatalf("IntN(5) = %d out of range", v)
		}
	}
}
