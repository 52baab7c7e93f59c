package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/go-opendota/pkg/opendota"
)

// matchesCommand groups the match feed listings.
func (c *CLI) matchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List match feeds",
		Long: `List recent matches from the public, professional, or parsed feeds.

The feeds move constantly, so cached pages go stale quickly; use --refresh
for the latest rows.`,
	}

	cmd.AddCommand(c.matchesPublicCommand())
	cmd.AddCommand(c.matchesProCommand())
	cmd.AddCommand(c.matchesParsedCommand())

	return cmd
}

// matchesPublicCommand creates the "matches public" subcommand.
func (c *CLI) matchesPublicCommand() *cobra.Command {
	var (
		mmrAsc  bool
		mmrDesc bool
		before  int64
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "public",
		Short: "List recent public matches",
		Long: `List recent public matchmaking games.

Examples:
  opendota matches public
  opendota matches public --mmr-desc
  opendota matches public --before 6000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mmrAsc && mmrDesc {
				return fmt.Errorf("--mmr-asc and --mmr-desc are mutually exclusive")
			}
			filter := &opendota.PublicMatchesFilter{
				MMRAscending:    mmrAsc,
				MMRDescending:   mmrDesc,
				LessThanMatchID: before,
			}
			return c.runMatchesPublic(cmd.Context(), filter, limit)
		},
	}

	cmd.Flags().BoolVar(&mmrAsc, "mmr-asc", false, "lowest ranked matches first")
	cmd.Flags().BoolVar(&mmrDesc, "mmr-desc", false, "highest ranked matches first")
	cmd.Flags().Int64Var(&before, "before", 0, "page back from this match id")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to display (0 for all)")

	return cmd
}

func (c *CLI) runMatchesPublic(ctx context.Context, filter *opendota.PublicMatchesFilter, limit int) error {
	client, status, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, "Fetching public matches...")
	matches, err := client.GetPublicMatches(ctx, filter, c.refresh)
	sp.Stop()
	if err != nil {
		return err
	}
	matches = truncate(matches, limit)

	if c.jsonOut {
		return printJSON(matches)
	}

	tbl := newTable("Match ID", "Avg Rank", "Winner", "Duration", "Started")
	for _, m := range matches {
		rank := "-"
		if m.AvgMMR != nil {
			rank = strconv.Itoa(*m.AvgMMR)
		} else if m.AvgRankTier > 0 {
			rank = formatRankTier(m.AvgRankTier)
		}
		tbl.Row(
			strconv.FormatInt(m.MatchID, 10),
			rank,
			formatSide(m.RadiantWin),
			formatDuration(m.Duration),
			formatUnixTime(m.StartTime),
		)
	}
	fmt.Println(tbl)
	printFetchStats(len(matches), status.Cached())

	return nil
}

// matchesProCommand creates the "matches pro" subcommand.
func (c *CLI) matchesProCommand() *cobra.Command {
	var (
		before int64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "pro",
		Short: "List professional matches",
		Long: `List professional league matches, newest first.

Examples:
  opendota matches pro
  opendota matches pro --before 8000000000 --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMatchesPro(cmd.Context(), before, limit)
		},
	}

	cmd.Flags().Int64Var(&before, "before", 0, "page back from this match id")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to display (0 for all)")

	return cmd
}

func (c *CLI) runMatchesPro(ctx context.Context, before int64, limit int) error {
	client, status, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, "Fetching pro matches...")
	matches, err := client.GetProMatches(ctx, before, c.refresh)
	sp.Stop()
	if err != nil {
		return err
	}
	matches = truncate(matches, limit)

	if c.jsonOut {
		return printJSON(matches)
	}

	tbl := newTable("Match ID", "League", "Radiant", "Dire", "Score", "Winner")
	for _, m := range matches {
		radiant := m.RadiantName
		if radiant == "" {
			radiant = "Radiant"
		}
		dire := m.DireName
		if dire == "" {
			dire = "Dire"
		}
		tbl.Row(
			strconv.FormatInt(m.MatchID, 10),
			m.LeagueName,
			radiant,
			dire,
			fmt.Sprintf("%d - %d", m.RadiantScore, m.DireScore),
			formatSide(m.RadiantWin),
		)
	}
	fmt.Println(tbl)
	printFetchStats(len(matches), status.Cached())

	return nil
}

// matchesParsedCommand creates the "matches parsed" subcommand.
func (c *CLI) matchesParsedCommand() *cobra.Command {
	var (
		before int64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "parsed",
		Short: "List recently parsed matches",
		Long:  `List matches whose replays were recently parsed, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMatchesParsed(cmd.Context(), before, limit)
		},
	}

	cmd.Flags().Int64Var(&before, "before", 0, "page back from this match id")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to display (0 for all)")

	return cmd
}

func (c *CLI) runMatchesParsed(ctx context.Context, before int64, limit int) error {
	client, status, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, "Fetching parsed matches...")
	matches, err := client.GetParsedMatches(ctx, before, c.refresh)
	sp.Stop()
	if err != nil {
		return err
	}
	matches = truncate(matches, limit)

	if c.jsonOut {
		return printJSON(matches)
	}

	for _, m := range matches {
		fmt.Println(StyleValue.Render(strconv.FormatInt(m.MatchID, 10)))
	}
	printFetchStats(len(matches), status.Cached())
	if len(matches) > 0 {
		printNewline()
		printNextStep("Inspect a match", fmt.Sprintf("opendota match %d", matches[0].MatchID))
	}

	return nil
}

// truncate limits a result slice for display. limit 0 keeps everything.
func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
