package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/go-opendota/pkg/opendota"
)

// fantasyCommand creates the fantasy command for scoring a match.
func (c *CLI) fantasyCommand() *cobra.Command {
	var weightFlags []string

	cmd := &cobra.Command{
		Use:   "fantasy <match-id>",
		Short: "Score a match's players with fantasy points",
		Long: `Score every player in a match with the standard fantasy point formula.

Weights can be adjusted per key with --weight, or permanently in the
[fantasy] section of the config file. Stats that require a parsed replay
(teamfight participation, stacks, runes, stuns) score zero when the match
was not parsed.

Examples:
  opendota fantasy 271145478
  opendota fantasy 271145478 --weight kills=0.5 --weight stuns=0.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "match id")
			if err != nil {
				return err
			}
			overrides, err := c.fantasyOverrides(weightFlags)
			if err != nil {
				return err
			}
			return c.runFantasy(cmd.Context(), id, overrides)
		},
	}

	cmd.Flags().StringArrayVar(&weightFlags, "weight", nil, "override a scoring weight as key=value (repeatable)")

	return cmd
}

// fantasyOverrides merges --weight flags over the config file's fantasy
// section. Flags win on key collisions.
func (c *CLI) fantasyOverrides(weightFlags []string) (map[string]float64, error) {
	overrides := map[string]float64{}
	for k, v := range c.loadConfig().Fantasy {
		overrides[k] = v
	}
	for _, flag := range weightFlags {
		key, value, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --weight %q, expected key=value", flag)
		}
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --weight %q: %v is not a number", flag, value)
		}
		overrides[key] = weight
	}
	return overrides, nil
}

func (c *CLI) runFantasy(ctx context.Context, id int64, overrides map[string]float64) error {
	client, status, err := c.newClient(opendota.WithFantasyWeights(overrides))
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, fmt.Sprintf("Fetching match %d...", id))
	m, err := client.GetMatch(ctx, id, c.refresh)
	sp.Stop()
	if err != nil {
		if opendota.IsNotFound(err) {
			printError("Match %d not found", id)
		}
		return err
	}

	type scoredPlayer struct {
		Player opendota.MatchPlayer `json:"player"`
		Points float64              `json:"points"`
	}
	scored := make([]scoredPlayer, 0, len(m.Players))
	for _, p := range m.Players {
		scored = append(scored, scoredPlayer{Player: p, Points: client.FantasyPoints(&p)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Points > scored[j].Points
	})

	if c.jsonOut {
		return printJSON(scored)
	}

	names := c.heroNames(ctx, client)

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Fantasy scores for match %d", m.MatchID)))
	if m.Version == nil {
		printWarning("Replay not parsed: parsed-only stats score zero")
	}
	printNewline()

	tbl := newTable("Player", "Hero", "Points", "K", "D", "LH", "GPM")
	for _, s := range scored {
		p := s.Player
		name := p.Personaname
		if name == "" {
			name = "Anonymous"
		}
		tbl.Row(
			name,
			heroName(names, p.HeroID),
			fmt.Sprintf("%.2f", s.Points),
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			strconv.Itoa(p.LastHits),
			strconv.Itoa(p.GoldPerMin),
		)
	}
	fmt.Println(tbl)
	printFetchStats(len(scored), status.Cached())

	return nil
}
