package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/go-opendota/pkg/opendota"
)

// playerCommand creates the player command with its subcommands.
func (c *CLI) playerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player <account-id>",
		Short: "Show a player's profile",
		Long: `Show a player's profile and rank.

The account id is the 32-bit Steam account id (the number in an OpenDota
profile URL).

Examples:
  opendota player 34505203
  opendota player matches 34505203 --hero 74`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "account id")
			if err != nil {
				return err
			}
			return c.runPlayer(cmd.Context(), id)
		},
	}

	cmd.AddCommand(c.playerMatchesCommand())

	return cmd
}

func (c *CLI) runPlayer(ctx context.Context, accountID int64) error {
	client, status, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, fmt.Sprintf("Fetching player %d...", accountID))
	p, err := client.GetPlayer(ctx, accountID, c.refresh)
	sp.Stop()
	if err != nil {
		if opendota.IsNotFound(err) {
			printError("Player %d not found", accountID)
		}
		return err
	}

	if c.jsonOut {
		return printJSON(p)
	}

	name := p.Profile.Personaname
	if name == "" {
		name = fmt.Sprintf("Player %d", accountID)
	}

	printNewline()
	fmt.Println(StyleTitle.Render(name))
	if p.Profile.Name != "" && p.Profile.Name != p.Profile.Personaname {
		printKeyValue("Pro name", p.Profile.Name)
	}
	printKeyValue("Account ID", strconv.FormatInt(p.Profile.AccountID, 10))
	printKeyValue("Rank", formatRank(p.RankTier, p.LeaderboardRank))
	if p.Profile.Country != "" {
		printKeyValue("Country", p.Profile.Country)
	}
	if p.Profile.ProfileURL != "" {
		printKeyValue("Steam", StyleLink.Render(p.Profile.ProfileURL))
	}
	if p.Profile.Plus {
		printKeyValue("Dota Plus", StyleSuccess.Render("subscribed"))
	}
	if status.Cached() {
		printDetail("served from cache, use --refresh for current data")
	}
	printNewline()
	printNextStep("Match history", fmt.Sprintf("opendota player matches %d", accountID))

	return nil
}

// playerMatchesCommand creates the "player matches" subcommand.
func (c *CLI) playerMatchesCommand() *cobra.Command {
	var (
		limit   int
		offset  int
		hero    int
		wins    bool
		losses  bool
		radiant bool
		dire    bool
		days    int
		turbo   bool
		sortBy  string
	)

	cmd := &cobra.Command{
		Use:   "matches <account-id>",
		Short: "List a player's match history",
		Long: `List a player's match history, newest first.

By default only "significant" matches count (standard game modes); pass
--turbo to include Turbo and other non-standard modes.

Examples:
  opendota player matches 34505203
  opendota player matches 34505203 --hero 74 --wins
  opendota player matches 34505203 --days 30 --turbo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "account id")
			if err != nil {
				return err
			}
			if wins && losses {
				return fmt.Errorf("--wins and --losses are mutually exclusive")
			}
			if radiant && dire {
				return fmt.Errorf("--radiant and --dire are mutually exclusive")
			}

			filter := &opendota.PlayerMatchesFilter{
				Limit:  limit,
				Offset: offset,
				Date:   days,
				Sort:   sortBy,
			}
			if hero > 0 {
				filter.HeroID = &hero
			}
			if wins || losses {
				filter.Win = &wins
			}
			if radiant || dire {
				filter.IsRadiant = &radiant
			}
			if turbo {
				significant := 0
				filter.Significant = &significant
			}
			return c.runPlayerMatches(cmd.Context(), id, filter)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of matches to request")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of matches to skip")
	cmd.Flags().IntVar(&hero, "hero", 0, "only matches on this hero id")
	cmd.Flags().BoolVar(&wins, "wins", false, "only won matches")
	cmd.Flags().BoolVar(&losses, "losses", false, "only lost matches")
	cmd.Flags().BoolVar(&radiant, "radiant", false, "only matches played on radiant")
	cmd.Flags().BoolVar(&dire, "dire", false, "only matches played on dire")
	cmd.Flags().IntVar(&days, "days", 0, "only matches within this many days")
	cmd.Flags().BoolVar(&turbo, "turbo", false, "include non-standard game modes")
	cmd.Flags().StringVar(&sortBy, "sort", "", "server-side sort field (e.g. kills)")

	return cmd
}

func (c *CLI) runPlayerMatches(ctx context.Context, accountID int64, filter *opendota.PlayerMatchesFilter) error {
	client, status, err := c.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	sp := newSpinner(ctx, fmt.Sprintf("Fetching matches for %d...", accountID))
	matches, err := client.GetPlayerMatches(ctx, accountID, filter, c.refresh)
	sp.Stop()
	if err != nil {
		if opendota.IsNotFound(err) {
			printError("Player %d not found", accountID)
		}
		return err
	}

	if c.jsonOut {
		return printJSON(matches)
	}

	names := c.heroNames(ctx, client)

	tbl := newTable("Match ID", "Hero", "Result", "K", "D", "A", "Duration", "Started")
	for _, m := range matches {
		result := StyleDire.Render("Lost")
		if m.Won() {
			result = StyleRadiant.Render("Won")
		}
		tbl.Row(
			strconv.FormatInt(m.MatchID, 10),
			heroName(names, m.HeroID),
			result,
			strconv.Itoa(m.Kills),
			strconv.Itoa(m.Deaths),
			strconv.Itoa(m.Assists),
			formatDuration(m.Duration),
			formatUnixTime(m.StartTime),
		)
	}
	fmt.Println(tbl)
	printFetchStats(len(matches), status.Cached())

	return nil
}

// =============================================================================
// Rank Formatting
// =============================================================================

// rankNames maps the medal digit of a rank tier to its display name.
var rankNames = []string{"", "Herald", "Guardian", "Crusader", "Archon", "Legend", "Ancient", "Divine", "Immortal"}

// formatRankTier renders a rank tier such as 54 as "Legend 4".
func formatRankTier(tier int) string {
	medal := tier / 10
	stars := tier % 10
	if medal <= 0 || medal >= len(rankNames) {
		return strconv.Itoa(tier)
	}
	name := rankNames[medal]
	if stars > 0 && medal < 8 {
		return fmt.Sprintf("%s %d", name, stars)
	}
	return name
}

// formatRank renders a player's rank, including the leaderboard position
// for ranked Immortals.
func formatRank(tier, leaderboard *int) string {
	if tier == nil {
		return "Uncalibrated"
	}
	if leaderboard != nil {
		return fmt.Sprintf("%s #%d", rankNames[len(rankNames)-1], *leaderboard)
	}
	return formatRankTier(*tier)
}
