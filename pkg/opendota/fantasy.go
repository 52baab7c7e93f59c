package opendota

import (
	"sort"
	"strings"
)

// defaultFantasyWeights is the standard fantasy scoring table. Keys with a
// "_base" suffix are flat amounts granted once; every other key multiplies
// the matching MatchPlayer stat.
var defaultFantasyWeights = map[string]float64{
	"kills":                   0.3,
	"deaths":                  -0.3,
	"deaths_base":             3.0,
	"last_hits":               0.003,
	"denies":                  0.003,
	"gold_per_min":            0.002,
	"towers_killed":           1.0,
	"roshans_killed":          1.0,
	"teamfight_participation": 3.0,
	"obs_placed":              0.5,
	"camps_stacked":           0.5,
	"rune_pickups":            0.25,
	"firstblood_claimed":      4.0,
	"stuns":                   0.05,
}

// mergeFantasyWeights overlays overrides onto the default table. A key that
// does not exist in the default table is a configuration error naming the
// key and the allowed set.
func mergeFantasyWeights(overrides map[string]float64) (map[string]float64, error) {
	weights := make(map[string]float64, len(defaultFantasyWeights))
	for k, v := range defaultFantasyWeights {
		weights[k] = v
	}
	for k, v := range overrides {
		if _, ok := weights[k]; !ok {
			return nil, newError(CodeConfig, "invalid fantasy key %q, must be one of: %s",
				k, strings.Join(fantasyKeys(), ", "))
		}
		weights[k] = v
	}
	return weights, nil
}

// fantasyKeys lists the allowed weight keys, sorted.
func fantasyKeys() []string {
	keys := make([]string, 0, len(defaultFantasyWeights))
	for k := range defaultFantasyWeights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FantasyWeights returns a copy of the client's effective scoring table.
func (c *Client) FantasyWeights() map[string]float64 {
	weights := make(map[string]float64, len(c.fantasy))
	for k, v := range c.fantasy {
		weights[k] = v
	}
	return weights
}

// FantasyPoints scores one player's match performance with the client's
// weight table. Parsed-only stats score zero for unparsed matches.
func (c *Client) FantasyPoints(p *MatchPlayer) float64 {
	w := c.fantasy
	points := w["deaths_base"]
	points += float64(p.Kills) * w["kills"]
	points += float64(p.Deaths) * w["deaths"]
	points += float64(p.LastHits) * w["last_hits"]
	points += float64(p.Denies) * w["denies"]
	points += float64(p.GoldPerMin) * w["gold_per_min"]
	points += float64(p.TowersKilled) * w["towers_killed"]
	points += float64(p.RoshansKilled) * w["roshans_killed"]
	points += p.TeamfightParticipation * w["teamfight_participation"]
	points += float64(p.ObsPlaced) * w["obs_placed"]
	points += float64(p.CampsStacked) * w["camps_stacked"]
	points += float64(p.RunePickups) * w["rune_pickups"]
	points += float64(p.FirstbloodClaimed) * w["firstblood_claimed"]
	points += p.Stuns * w["stuns"]
	return points
}
