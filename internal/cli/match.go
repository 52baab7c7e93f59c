package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/go-opendota/pkg/opendota"
)

// matchCommand creates the match command for showing a single match.
func (c *CLI) matchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match <match-id>",
		Short: "Show full details for a single match",
		Long: `Show full details for a single match: result, score, duration, and a
per-player scoreboard.

Match details never change once the match is over, so cached entries stay
valid forever. Use --refresh to refetch anyway, e.g. after OpenDota parses
the replay.

Examples:
  opendota match 271145478
  opendota match 271145478 --json
  opendota match 271145478 --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "match id")
			if err != nil {
				return err
			}
			return c.runMatch(cmd.Context(), id)
		},
	}
}

func (c *CLI) runMatch(ctx context.Context, id int64) error {
	client, status, err := c.newClient()
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

	if c.jsonOut {
		return printJSON(m)
	}

	names := c.heroNames(ctx, client)

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Match %d", m.MatchID)))
	printKeyValue("Winner", formatSide(m.RadiantWin))
	printKeyValue("Score", fmt.Sprintf("%d - %d", m.RadiantScore, m.DireScore))
	printKeyValue("Duration", formatDuration(m.Duration))
	printKeyValue("Started", formatUnixTime(m.StartTime))
	if m.Version == nil {
		printKeyValue("Replay", StyleDim.Render("not parsed"))
	} else if m.ReplayURL != "" {
		printKeyValue("Replay", StyleLink.Render(m.ReplayURL))
	}
	printNewline()

	tbl := newTable("Player", "Side", "Hero", "Lvl", "K", "D", "A", "LH", "GPM", "XPM")
	for _, p := range m.Players {
		name := p.Personaname
		if name == "" {
			name = "Anonymous"
		}
		side := StyleRadiant.Render("Radiant")
		if !p.IsRadiant {
			side = StyleDire.Render("Dire")
		}
		tbl.Row(
			name,
			side,
			heroName(names, p.HeroID),
			strconv.Itoa(p.Level),
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			strconv.Itoa(p.Assists),
			strconv.Itoa(p.LastHits),
			strconv.Itoa(p.GoldPerMin),
			strconv.Itoa(p.XPPerMin),
		)
	}
	fmt.Println(tbl)
	printFetchStats(len(m.Players), status.Cached())
	printNewline()
	printNextStep("Score fantasy points", fmt.Sprintf("opendota fantasy %d", m.MatchID))

	return nil
}
