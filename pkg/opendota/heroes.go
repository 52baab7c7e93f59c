package opendota

import "context"

// Hero is the static definition of a playable hero.
type Hero struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`           // internal name, e.g. "npc_dota_hero_antimage"
	LocalizedName string   `json:"localized_name"` // display name, e.g. "Anti-Mage"
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`
	Legs          int      `json:"legs"`
}

// HeroStats extends the hero definition with base attributes and current
// pick/win counts.
type HeroStats struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	LocalizedName string   `json:"localized_name"`
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`
	Img           string   `json:"img"`
	Icon          string   `json:"icon"`

	BaseHealth      int     `json:"base_health"`
	BaseHealthRegen float64 `json:"base_health_regen"`
	BaseMana        int     `json:"base_mana"`
	BaseManaRegen   float64 `json:"base_mana_regen"`
	BaseArmor       float64 `json:"base_armor"`
	BaseMagicResist int     `json:"base_mr"`
	BaseAttackMin   int     `json:"base_attack_min"`
	BaseAttackMax   int     `json:"base_attack_max"`
	BaseStr         int     `json:"base_str"`
	BaseAgi         int     `json:"base_agi"`
	BaseInt         int     `json:"base_int"`
	StrGain         float64 `json:"str_gain"`
	AgiGain         float64 `json:"agi_gain"`
	IntGain         float64 `json:"int_gain"`
	AttackRange     int     `json:"attack_range"`
	ProjectileSpeed int     `json:"projectile_speed"`
	AttackRate      float64 `json:"attack_rate"`
	MoveSpeed       int     `json:"move_speed"`
	DayVision       int     `json:"day_vision"`
	NightVision     int     `json:"night_vision"`

	ProPick    int `json:"pro_pick"`
	ProWin     int `json:"pro_win"`
	ProBan     int `json:"pro_ban"`
	PubPick    int `json:"pub_pick"`
	PubWin     int `json:"pub_win"`
	TurboPicks int `json:"turbo_picks"`
	TurboWins  int `json:"turbo_wins"`
}

// GetHeroes fetches the static list of all heroes.
func (c *Client) GetHeroes(ctx context.Context, refresh bool) ([]Hero, error) {
	return getJSON[[]Hero](ctx, c, "heroes", nil, refresh)
}

// GetHeroStats fetches per-hero attributes and pick/win statistics.
func (c *Client) GetHeroStats(ctx context.Context, refresh bool) ([]HeroStats, error) {
	return getJSON[[]HeroStats](ctx, c, "heroStats", nil, refresh)
}
