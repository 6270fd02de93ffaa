package usecase

import (
	"math/rand"
	"testing"
)

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a, err := NewSampleDataGenerator(rand.New(rand.NewSource(42))).Generate("AAPL", 100)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewSampleDataGenerator(rand.New(rand.NewSource(42))).Generate("AAPL", 100)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range a {
		if a[i].Close != b[i].Close || a[i].Volume != b[i].Volume {
			t.Fatalf("bar %d differs between identical seeds", i)
		}
	}
}

func TestGenerateBarsAreWellFormed(t *testing.T) {
	bars, err := NewSampleDataGenerator(rand.New(rand.NewSource(7))).Generate("MSFT", 252)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(bars) != 252 {
		t.Fatalf("got %d bars, want 252", len(bars))
	}
	for i, b := range bars {
		if b.Symbol != "MSFT" {
			t.Fatalf("bar %d symbol %q", i, b.Symbol)
		}
		if b.Close <= 0 || b.Open <= 0 {
			t.Fatalf("bar %d has non-positive price: %+v", i, b)
		}
		if b.High < b.Open && b.High < b.Close {
			t.Fatalf("bar %d high below body: %+v", i, b)
		}
		if b.Low > b.Open && b.Low > b.Close {
			t.Fatalf("bar %d low above body: %+v", i, b)
		}
		if i > 0 && !bars[i-1].Timestamp.Before(b.Timestamp) {
			t.Fatalf("bar %d timestamp not increasing", i)
		}
		if b.Volume < 1_000_000 {
			t.Fatalf("bar %d volume %d too small", i, b.Volume)
		}
	}
}

func TestGenerateRejectsBadArgs(t *testing.T) {
	g := NewSampleDataGenerator(rand.New(rand.NewSource(1)))
	if _, err := g.Generate("", 10); err == nil {
		t.Fatalf("empty symbol should fail")
	}
	if _, err := g.Generate("AAPL", 0); err == nil {
		t.Fatalf("zero bars should fail")
	}
}
