package models

import "strings"

// CreatureRef is one entry of the collection list: a name and the URL of its detail record
type CreatureRef struct {
	Name      string `json:"name"`
	DetailURL string `json:"detail_url"`
}

// Creature is the full detail record for one catalog entry
type Creature struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	HeightDecimeters int       `json:"height_decimeters"`
	WeightDecigrams  int       `json:"weight_decigrams"`
	BaseExperience   int       `json:"base_experience"`
	SpriteURL        string    `json:"sprite_url"`
	CryURL           string    `json:"cry_url,omitempty"` // empty when the record has no cry
	Types            []Type    `json:"types"`
	Abilities        []Ability `json:"abilities"`
	Stats            []Stat    `json:"stats"`
	Moves            []Move    `json:"moves"`
}

// Type is an elemental type tag (fire, water, ...)
type Type struct {
	Name string `json:"name"`
}

// Ability is a creature ability; hidden abilities are flagged
type Ability struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
}

// Stat is a base stat value in [0, MaxStat]
type Stat struct {
	Name      string `json:"name"`
	BaseValue int    `json:"base_value"`
}

// Move is a learnable move
type Move struct {
	Name string `json:"name"`
}

// MaxStat is the upper bound of a base stat, used to scale stat bars
const MaxStat = 255

// HasCry reports whether the record carries an audio cry
func (c *Creature) HasCry() bool {
	return c.CryURL != ""
}

// HeightMeters returns the height converted from decimeters
func (c *Creature) HeightMeters() float64 {
	return float64(c.HeightDecimeters) / 10
}

// WeightKilograms returns the weight converted from decigrams
func (c *Creature) WeightKilograms() float64 {
	return float64(c.WeightDecigrams) / 10
}

// Percent returns the stat value as a percentage of MaxStat
func (s Stat) Percent() float64 {
	return float64(s.BaseValue) / MaxStat * 100
}

// Collection is the ordered set of detail records produced by one load.
// Order matches the list order of the remote source.
type Collection []Creature

// DisplayName turns a hyphenated API name ("special-attack") into "special attack"
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "-", " ")
}

// typeColors mirrors the badge palette of the web shell
var typeColors = map[string]string{
	"normal":   "gray",
	"fire":     "red",
	"water":    "blue",
	"electric": "yellow",
	"grass":    "green",
	"ice":      "lightblue",
	"fighting": "darkred",
	"poison":   "purple",
	"ground":   "darkgoldenrod",
	"flying":   "mediumpurple",
	"psychic":  "hotpink",
	"bug":      "yellowgreen",
	"rock":     "sienna",
	"ghost":    "indigo",
	"dragon":   "slateblue",
	"dark":     "dimgray",
	"steel":    "silver",
	"fairy":    "pink",
}

// TypeColor returns the named colour for a type badge, falling back to light gray
func TypeColor(typeName string) string {
	if c, ok := typeColors[typeName]; ok {
		return c
	}
	return "lightgray"
}
