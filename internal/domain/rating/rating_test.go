package rating

import (
	"errors"
	"math"
	"testing"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

func TestWinProbability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Player
		want float64
	}{
		{name: "favourite", a: Player{Rating: 1638, Deviation: 150}, b: Player{Rating: 1122, Deviation: 150}, want: 0.988},
		{name: "even", a: Player{Rating: 1500, Deviation: 80}, b: Player{Rating: 1500, Deviation: 300}, want: 0.5},
		{name: "underdog", a: Player{Rating: 1122, Deviation: 150}, b: Player{Rating: 1638, Deviation: 150}, want: 0.012},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := WinProbability(tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.want) > 0.001 {
				t.Fatalf("expected %.3f, got %.4f", tc.want, got)
			}
		})
	}
}

func TestWinProbability_IsComplementary(t *testing.T) {
	t.Parallel()

	a := Player{Rating: 1710, Deviation: 60}
	b := Player{Rating: 1455, Deviation: 210}
	pa, _ := WinProbability(a, b)
	pb, _ := WinProbability(b, a)
	if math.Abs(pa+pb-1) > 1e-12 {
		t.Fatalf("expected probabilities to sum to 1, got %.12f", pa+pb)
	}
}

func TestWinProbability_RejectsNegativeDeviation(t *testing.T) {
	t.Parallel()

	_, err := WinProbability(Player{Rating: 1500, Deviation: -1}, Player{Rating: 1500})
	if !errors.Is(err, rioerr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
