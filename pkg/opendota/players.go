package opendota

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Player holds a player's account overview.
type Player struct {
	Profile             Profile `json:"profile"`
	RankTier            *int    `json:"rank_tier"` // nil when uncalibrated
	LeaderboardRank     *int    `json:"leaderboard_rank"`
	SoloCompetitiveRank *int    `json:"solo_competitive_rank"`
	CompetitiveRank     *int    `json:"competitive_rank"`
}

// Profile holds the Steam-level identity of a player.
type Profile struct {
	AccountID     int64  `json:"account_id"`
	Personaname   string `json:"personaname"`
	Name          string `json:"name"` // pro name, empty for regular players
	SteamID       string `json:"steamid"`
	Avatar        string `json:"avatar"`
	AvatarMedium  string `json:"avatarmedium"`
	AvatarFull    string `json:"avatarfull"`
	ProfileURL    string `json:"profileurl"`
	LastLogin     string `json:"last_login"`
	Country       string `json:"loccountrycode"`
	Plus          bool   `json:"plus"`
	Cheese        int    `json:"cheese"`
	IsContributor bool   `json:"is_contributor"`
	IsSubscriber  bool   `json:"is_subscriber"`
}

// PlayerMatch is one row of a player's match history.
type PlayerMatch struct {
	MatchID      int64 `json:"match_id"`
	PlayerSlot   int   `json:"player_slot"`
	RadiantWin   bool  `json:"radiant_win"`
	Duration     int   `json:"duration"`
	GameMode     int   `json:"game_mode"`
	LobbyType    int   `json:"lobby_type"`
	HeroID       int   `json:"hero_id"`
	StartTime    int64 `json:"start_time"`
	Version      *int  `json:"version"` // nil when the replay was not parsed
	Kills        int   `json:"kills"`
	Deaths       int   `json:"deaths"`
	Assists      int   `json:"assists"`
	AverageRank  *int  `json:"average_rank"`
	LeaverStatus int   `json:"leaver_status"`
	PartySize    *int  `json:"party_size"`
}

// Won reports whether the player's side won the match.
// Slots below 128 are radiant.
func (m *PlayerMatch) Won() bool {
	return m.RadiantWin == (m.PlayerSlot < 128)
}

// PlayerMatchesFilter narrows GetPlayerMatches listings. Zero-value fields
// are omitted from the query; pointer fields distinguish "unset" from a
// meaningful zero (win=0 means losses only, significant=0 includes
// non-standard game modes).
type PlayerMatchesFilter struct {
	Limit  int // number of rows, 0 for the server default
	Offset int

	Win       *bool // filter to wins (true) or losses (false)
	IsRadiant *bool // filter by side

	Patch     *int
	GameMode  *int
	LobbyType *int
	Region    *int
	LaneRole  *int
	HeroID    *int

	Date        int  // only matches within this many days
	Significant *int // 0 includes non-significant (e.g. turbo) matches

	IncludedAccountIDs []int64 // teammates required in the match
	ExcludedAccountIDs []int64
	WithHeroIDs        []int // heroes on the player's team
	AgainstHeroIDs     []int // heroes on the enemy team

	Having int    // minimum count of matches for aggregations
	Sort   string // field to sort rows by
}

// Values encodes the set filter fields as query parameters. Repeated
// parameters (account and hero id lists) repeat the query key.
func (f *PlayerMatchesFilter) Values() url.Values {
	v := url.Values{}
	if f == nil {
		return v
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.Win != nil {
		v.Set("win", boolParam(*f.Win))
	}
	if f.IsRadiant != nil {
		v.Set("is_radiant", boolParam(*f.IsRadiant))
	}
	setIntPtr(v, "patch", f.Patch)
	setIntPtr(v, "game_mode", f.GameMode)
	setIntPtr(v, "lobby_type", f.LobbyType)
	setIntPtr(v, "region", f.Region)
	setIntPtr(v, "lane_role", f.LaneRole)
	setIntPtr(v, "hero_id", f.HeroID)
	if f.Date > 0 {
		v.Set("date", strconv.Itoa(f.Date))
	}
	setIntPtr(v, "significant", f.Significant)
	for _, id := range f.IncludedAccountIDs {
		v.Add("included_account_id", strconv.FormatInt(id, 10))
	}
	for _, id := range f.ExcludedAccountIDs {
		v.Add("excluded_account_id", strconv.FormatInt(id, 10))
	}
	for _, id := range f.WithHeroIDs {
		v.Add("with_hero_id", strconv.Itoa(id))
	}
	for _, id := range f.AgainstHeroIDs {
		v.Add("against_hero_id", strconv.Itoa(id))
	}
	if f.Having > 0 {
		v.Set("having", strconv.Itoa(f.Having))
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	return v
}

func setIntPtr(v url.Values, key string, p *int) {
	if p != nil {
		v.Set(key, strconv.Itoa(*p))
	}
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// GetPlayer fetches a player's account overview.
//
// Returns a CodeNotFound error for unknown account ids.
func (c *Client) GetPlayer(ctx context.Context, accountID int64, refresh bool) (*Player, error) {
	p, err := getJSON[Player](ctx, c, fmt.Sprintf("players/%d", accountID), nil, refresh)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlayerMatches lists a player's match history, newest first.
// A nil filter returns the server default page.
func (c *Client) GetPlayerMatches(ctx context.Context, accountID int64, filter *PlayerMatchesFilter, refresh bool) ([]PlayerMatch, error) {
	endpoint := fmt.Sprintf("players/%d/matches", accountID)
	return getJSON[[]PlayerMatch](ctx, c, endpoint, filter.Values(), refresh)
}
