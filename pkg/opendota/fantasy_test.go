package opendota

import (
	"math"
	"strings"
	"testing"
)

func fantasyTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(append([]Option{WithCacheDir(t.TempDir())}, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestFantasyPointsDefaults(t *testing.T) {
	c := fantasyTestClient(t)

	p := &MatchPlayer{
		Kills:                  10,
		Deaths:                 4,
		LastHits:               200,
		Denies:                 10,
		GoldPerMin:             500,
		TowersKilled:           1,
		RoshansKilled:          1,
		TeamfightParticipation: 0.8,
		ObsPlaced:              2,
		CampsStacked:           3,
		RunePickups:            4,
		FirstbloodClaimed:      1,
		Stuns:                  20,
	}

	// 3.0 base + 3.0 kills - 1.2 deaths + 0.6 last hits + 0.03 denies
	// + 1.0 gpm + 1.0 tower + 1.0 roshan + 2.4 teamfight + 1.0 wards
	// + 1.5 stacks + 1.0 runes + 4.0 first blood + 1.0 stuns
	want := 19.33
	if got := c.FantasyPoints(p); math.Abs(got-want) > 1e-9 {
		t.Errorf("FantasyPoints() = %v, want %v", got, want)
	}
}

func TestFantasyPointsZeroPlayer(t *testing.T) {
	c := fantasyTestClient(t)

	// A deathless performance with no recorded stats still earns the base
	if got := c.FantasyPoints(&MatchPlayer{}); got != 3.0 {
		t.Errorf("FantasyPoints() = %v, want deaths base 3.0", got)
	}
}

func TestFantasyPointsOverride(t *testing.T) {
	c := fantasyTestClient(t, WithFantasyWeights(map[string]float64{"kills": 1.0}))

	p := &MatchPlayer{Kills: 10}
	if got := c.FantasyPoints(p); math.Abs(got-13.0) > 1e-9 {
		t.Errorf("FantasyPoints() = %v, want 13.0 with kills weighted 1.0", got)
	}

	// Untouched weights keep their defaults
	if w := c.FantasyWeights(); w["stuns"] != 0.05 {
		t.Errorf("stuns weight = %v, want default 0.05", w["stuns"])
	}
}

func TestFantasyWeightsReturnsCopy(t *testing.T) {
	c := fantasyTestClient(t)

	w := c.FantasyWeights()
	w["kills"] = 100

	if got := c.FantasyPoints(&MatchPlayer{Kills: 1}); math.Abs(got-3.3) > 1e-9 {
		t.Errorf("FantasyPoints() = %v, mutating the returned table should not affect scoring", got)
	}
}

func TestNewInvalidFantasyKey(t *testing.T) {
	_, err := New(
		WithCacheDir(t.TempDir()),
		WithFantasyWeights(map[string]float64{"kils": 1.0}),
	)
	if err == nil {
		t.Fatal("New() should reject an unknown fantasy key")
	}
	if !HasCode(err, CodeConfig) {
		t.Errorf("error = %v, want config code", err)
	}

	// The message names the bad key and the allowed set
	msg := err.Error()
	if !strings.Contains(msg, `"kils"`) {
		t.Errorf("error %q should name the invalid key", msg)
	}
	for _, allowed := range []string{"kills", "deaths_base", "stuns", "teamfight_participation"} {
		if !strings.Contains(msg, allowed) {
			t.Errorf("error %q should list allowed key %s", msg, allowed)
		}
	}
}
