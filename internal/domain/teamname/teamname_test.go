package teamname

import (
	"errors"
	"testing"

	"github.com/riskibarqy/rio-stats/internal/domain/rioerr"
)

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		roster  []string
		captain string
		want    string
	}{
		{
			name:    "first theme",
			roster:  []string{"Mario", "Luigi", "Monty", "Pianta(B)", "Noki(R)", "Toad(R)", "Boo", "Wario", "Birdo"},
			captain: "Mario",
			want:    "Mario Sunshines",
		},
		{
			name:    "second theme counts duplicates of a simplified name",
			roster:  []string{"DK", "Yoshi", "Bowser", "Monty", "Petey", "Toad(R)", "Toad(B)", "Boo", "Peach"},
			captain: "DK",
			want:    "DK Animals",
		},
		{
			name:    "themes checked in order",
			roster:  []string{"Mario", "Luigi", "Monty", "Pianta(B)", "Noki(R)", "Peach", "Yoshi", "DK", "Bowser"},
			captain: "Mario",
			want:    "Mario Sunshines",
		},
		{
			name:    "class majority",
			roster:  []string{"Bowser", "Wario", "DK", "Petey", "King Boo", "Mario", "Luigi", "Yoshi", "Peach"},
			captain: "Bowser",
			want:    "Bowser Blue Shells",
		},
		{
			name:    "tied class falls back",
			roster:  []string{"Mario", "Luigi", "Daisy", "Yoshi", "Diddy", "Toadette", "Peach", "Boo", "Bowser"},
			captain: "Mario",
			want:    "Mario Heroes",
		},
		{
			name:    "aliases resolve",
			roster:  []string{"Donkey Kong", "Diddy Kong", "Dixie Kong", "Goomba", "Koopa(R)", "Mario", "Luigi", "Peach", "Boo"},
			captain: "donkey kong",
			want:    "DK Kongs",
		},
		{
			name:    "incomplete roster",
			roster:  []string{"Mario", "", "Luigi"},
			captain: "Mario",
			want:    "",
		},
		{
			name:    "not a captain",
			roster:  []string{"Boo", "Mario", "Luigi", "Peach", "Daisy", "Yoshi", "Birdo", "Wario", "DK"},
			captain: "Boo",
			want:    "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Name(tc.roster, tc.captain)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestName_UnknownCharacter(t *testing.T) {
	t.Parallel()

	_, err := Name([]string{"Mario", "Luigi", "Sonic"}, "Mario")
	if !errors.Is(err, rioerr.ErrUnknownCharacter) {
		t.Fatalf("expected unknown character, got %v", err)
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	all := All()
	if len(all) != 48 {
		t.Fatalf("expected 48 team names, got %d", len(all))
	}
	if all[0] != "Mario Heroes" {
		t.Fatalf("expected Mario Heroes first, got %q", all[0])
	}
}
