package opendota

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Match holds full details for a single match.
type Match struct {
	MatchID               int64         `json:"match_id"`
	MatchSeqNum           int64         `json:"match_seq_num"`
	Duration              int           `json:"duration"` // seconds
	StartTime             int64         `json:"start_time"`
	RadiantWin            bool          `json:"radiant_win"`
	RadiantScore          int           `json:"radiant_score"`
	DireScore             int           `json:"dire_score"`
	GameMode              int           `json:"game_mode"`
	LobbyType             int           `json:"lobby_type"`
	Region                int           `json:"region"`
	Patch                 int           `json:"patch"`
	Cluster               int           `json:"cluster"`
	LeagueID              int           `json:"leagueid"`
	FirstBloodTime        int           `json:"first_blood_time"`
	HumanPlayers          int           `json:"human_players"`
	TowerStatusRadiant    int           `json:"tower_status_radiant"`
	TowerStatusDire       int           `json:"tower_status_dire"`
	BarracksStatusRadiant int           `json:"barracks_status_radiant"`
	BarracksStatusDire    int           `json:"barracks_status_dire"`
	RadiantGoldAdv        []int         `json:"radiant_gold_adv"`
	RadiantXPAdv          []int         `json:"radiant_xp_adv"`
	ReplayURL             string        `json:"replay_url"`
	Version               *int          `json:"version"` // nil when the replay was not parsed
	Players               []MatchPlayer `json:"players"`
}

// MatchPlayer holds one player's performance within a match. Parsed-only
// fields (teamfight participation, stuns, ward counts) are zero for matches
// that were never replay-parsed.
type MatchPlayer struct {
	AccountID              *int64  `json:"account_id"` // nil for anonymous players
	PlayerSlot             int     `json:"player_slot"`
	HeroID                 int     `json:"hero_id"`
	Personaname            string  `json:"personaname"`
	IsRadiant              bool    `json:"isRadiant"`
	Win                    int     `json:"win"`
	Level                  int     `json:"level"`
	Kills                  int     `json:"kills"`
	Deaths                 int     `json:"deaths"`
	Assists                int     `json:"assists"`
	LastHits               int     `json:"last_hits"`
	Denies                 int     `json:"denies"`
	GoldPerMin             int     `json:"gold_per_min"`
	XPPerMin               int     `json:"xp_per_min"`
	NetWorth               int     `json:"net_worth"`
	HeroDamage             int     `json:"hero_damage"`
	TowerDamage            int     `json:"tower_damage"`
	HeroHealing            int     `json:"hero_healing"`
	TowersKilled           int     `json:"towers_killed"`
	RoshansKilled          int     `json:"roshans_killed"`
	ObsPlaced              int     `json:"obs_placed"`
	SenPlaced              int     `json:"sen_placed"`
	CampsStacked           int     `json:"camps_stacked"`
	RunePickups            int     `json:"rune_pickups"`
	FirstbloodClaimed      int     `json:"firstblood_claimed"`
	TeamfightParticipation float64 `json:"teamfight_participation"`
	Stuns                  float64 `json:"stuns"`
}

// PublicMatch is one row of the public matches feed.
type PublicMatch struct {
	MatchID     int64 `json:"match_id"`
	MatchSeqNum int64 `json:"match_seq_num"`
	RadiantWin  bool  `json:"radiant_win"`
	StartTime   int64 `json:"start_time"`
	Duration    int   `json:"duration"`
	LobbyType   int   `json:"lobby_type"`
	GameMode    int   `json:"game_mode"`
	AvgMMR      *int  `json:"avg_mmr"` // nil when unknown
	NumMMR      *int  `json:"num_mmr"`
	AvgRankTier int   `json:"avg_rank_tier"`
	NumRankTier int   `json:"num_rank_tier"`
	Cluster     int   `json:"cluster"`
	RadiantTeam []int `json:"radiant_team"` // hero ids
	DireTeam    []int `json:"dire_team"`
}

// ProMatch is one row of the professional matches feed.
type ProMatch struct {
	MatchID       int64  `json:"match_id"`
	Duration      int    `json:"duration"`
	StartTime     int64  `json:"start_time"`
	RadiantTeamID int    `json:"radiant_team_id"`
	RadiantName   string `json:"radiant_name"`
	DireTeamID    int    `json:"dire_team_id"`
	DireName      string `json:"dire_name"`
	LeagueID      int    `json:"leagueid"`
	LeagueName    string `json:"league_name"`
	SeriesID      int    `json:"series_id"`
	SeriesType    int    `json:"series_type"`
	RadiantScore  int    `json:"radiant_score"`
	DireScore     int    `json:"dire_score"`
	RadiantWin    bool   `json:"radiant_win"`
}

// ParsedMatch is one row of the parsed matches feed.
type ParsedMatch struct {
	MatchID int64 `json:"match_id"`
}

// PublicMatchesFilter narrows GetPublicMatches listings.
// Zero-value fields are omitted from the query.
type PublicMatchesFilter struct {
	MMRAscending    bool  // order by ascending average rank
	MMRDescending   bool  // order by descending average rank
	LessThanMatchID int64 // page back from this match id
}

// Values encodes the set filter fields as query parameters.
func (f *PublicMatchesFilter) Values() url.Values {
	v := url.Values{}
	if f == nil {
		return v
	}
	if f.MMRAscending {
		v.Set("mmr_ascending", "1")
	}
	if f.MMRDescending {
		v.Set("mmr_descending", "1")
	}
	if f.LessThanMatchID > 0 {
		v.Set("less_than_match_id", strconv.FormatInt(f.LessThanMatchID, 10))
	}
	return v
}

// GetMatch fetches full details for a single match.
//
// Returns a CodeNotFound error if the match does not exist. If refresh is
// true the cache is bypassed and the entry rewritten.
func (c *Client) GetMatch(ctx context.Context, matchID int64, refresh bool) (*Match, error) {
	m, err := getJSON[Match](ctx, c, fmt.Sprintf("matches/%d", matchID), nil, refresh)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetPublicMatches lists recent public matches, optionally filtered.
// A nil filter returns the newest matches.
func (c *Client) GetPublicMatches(ctx context.Context, filter *PublicMatchesFilter, refresh bool) ([]PublicMatch, error) {
	return getJSON[[]PublicMatch](ctx, c, "publicMatches", filter.Values(), refresh)
}

// GetProMatches lists professional matches, newest first. Pass a nonzero
// lessThanMatchID to page back from that match.
func (c *Client) GetProMatches(ctx context.Context, lessThanMatchID int64, refresh bool) ([]ProMatch, error) {
	return getJSON[[]ProMatch](ctx, c, "proMatches", pageParams(lessThanMatchID), refresh)
}

// GetParsedMatches lists matches with parsed replay data, newest first.
// Pass a nonzero lessThanMatchID to page back from that match.
func (c *Client) GetParsedMatches(ctx context.Context, lessThanMatchID int64, refresh bool) ([]ParsedMatch, error) {
	return getJSON[[]ParsedMatch](ctx, c, "parsedMatches", pageParams(lessThanMatchID), refresh)
}

func pageParams(lessThanMatchID int64) url.Values {
	v := url.Values{}
	if lessThanMatchID > 0 {
		v.Set("less_than_match_id", strconv.FormatInt(lessThanMatchID, 10))
	}
	return v
}
