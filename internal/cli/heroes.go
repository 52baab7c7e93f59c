package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/go-opendota/pkg/opendota"
)

// heroesCommand creates the heroes command with its subcommands.
func (c *CLI) heroesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heroes [name]",
		Short: "List heroes",
		Long: `List all heroes, optionally filtered by a name fragment.

The hero list rarely changes, so it is served from cache on repeat runs.

Examples:
  opendota heroes
  opendota heroes invoker
  opendota heroes stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return c.runHeroes(cmd.Context(), query)
		},
	}

	cmd.AddCommand(c.heroStatsCommand())

	return cmd
}

func (c *CLI) runHeroes(ctx context.Context, query string) error {
	client, status, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, "Fetching heroes...")
	heroes, err := client.GetHeroes(ctx, c.refresh)
	sp.Stop()
	if err != nil {
		return err
	}

	if query != "" {
		q := strings.ToLower(query)
		filtered := heroes[:0]
		for _, h := range heroes {
			if strings.Contains(strings.ToLower(h.LocalizedName), q) {
				filtered = append(filtered, h)
			}
		}
		heroes = filtered
	}

	if c.jsonOut {
		return printJSON(heroes)
	}
	if len(heroes) == 0 {
		printInfo("No heroes match %q", query)
		return nil
	}

	tbl := newTable("ID", "Hero", "Attr", "Attack", "Roles")
	for _, h := range heroes {
		tbl.Row(
			strconv.Itoa(h.ID),
			h.LocalizedName,
			h.PrimaryAttr,
			h.AttackType,
			strings.Join(h.Roles, ", "),
		)
	}
	fmt.Println(tbl)
	printFetchStats(len(heroes), status.Cached())

	return nil
}

// heroStatsCommand creates the "heroes stats" subcommand.
func (c *CLI) heroStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "List hero pick and win statistics",
		Long: `List per-hero pick counts and win rates across professional and public
games. Current-patch statistics shift constantly; use --refresh for fresh
numbers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHeroStats(cmd.Context())
		},
	}
}

func (c *CLI) runHeroStats(ctx context.Context) error {
	client, status, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, "Fetching hero statistics...")
	stats, err := client.GetHeroStats(ctx, c.refresh)
	sp.Stop()
	if err != nil {
		return err
	}

	if c.jsonOut {
		return printJSON(stats)
	}

	tbl := newTable("Hero", "Pro Picks", "Pro Bans", "Pro Win", "Pub Picks", "Pub Win")
	for _, s := range stats {
		tbl.Row(
			s.LocalizedName,
			strconv.Itoa(s.ProPick),
			strconv.Itoa(s.ProBan),
			formatWinRate(s.ProWin, s.ProPick),
			strconv.Itoa(s.PubPick),
			formatWinRate(s.PubWin, s.PubPick),
		)
	}
	fmt.Println(tbl)
	printFetchStats(len(stats), status.Cached())

	return nil
}

// formatWinRate renders wins/picks as a percentage, or "-" with no games.
func formatWinRate(wins, picks int) string {
	if picks == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(wins)/float64(picks)*100)
}

// =============================================================================
// Hero Name Index
// =============================================================================

// heroNames fetches the hero list and indexes display names by id. The
// index is display sugar, so it always reads through the cache and lookup
// failures degrade to numeric ids instead of failing the command.
func (c *CLI) heroNames(ctx context.Context, client *opendota.Client) map[int]string {
	heroes, err := client.GetHeroes(ctx, false)
	if err != nil {
		loggerFromContext(ctx).Debug("hero names unavailable", "error", err)
		return nil
	}
	names := make(map[int]string, len(heroes))
	for _, h := range heroes {
		names[h.ID] = h.LocalizedName
	}
	return names
}

// heroName resolves a hero id to its display name, falling back to the id.
func heroName(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return strconv.Itoa(id)
}
