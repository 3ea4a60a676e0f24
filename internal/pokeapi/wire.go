package pokeapi

import "github.com/meur/dexview/internal/models"

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Count   int             `json:"count"`
	Results []namedResource `json:"results"`
}

type creatureResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Height         int    `json:"height"`
	Weight         int    `json:"weight"`
	BaseExperience int    `json:"base_experience"`
	Sprites        struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Cries *struct {
		Latest string `json:"latest"`
		Legacy string `json:"legacy"`
	} `json:"cries"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Moves []struct {
		Move namedResource `json:"move"`
	} `json:"moves"`
}

func (r *creatureResponse) toModel() *models.Creature {
	c := &models.Creature{
		ID:               r.ID,
		Name:             r.Name,
		HeightDecimeters: r.Height,
		WeightDecigrams:  r.Weight,
		BaseExperience:   r.BaseExperience,
		SpriteURL:        r.Sprites.FrontDefault,
		Types:            make([]models.Type, 0, len(r.Types)),
		Abilities:        make([]models.Ability, 0, len(r.Abilities)),
		Stats:            make([]models.Stat, 0, len(r.Stats)),
		Moves:            make([]models.Move, 0, len(r.Moves)),
	}
	if r.Cries != nil {
		c.CryURL = r.Cries.Latest
	}
	for _, t := range r.Types {
		c.Types = append(c.Types, models.Type{Name: t.Type.Name})
	}
	for _, a := range r.Abilities {
		c.Abilities = append(c.Abilities, models.Ability{Name: a.Ability.Name, IsHidden: a.IsHidden})
	}
	for _, s := range r.Stats {
		c.Stats = append(c.Stats, models.Stat{Name: s.Stat.Name, BaseValue: s.BaseStat})
	}
	for _, m := range r.Moves {
		c.Moves = append(c.Moves, models.Move{Name: m.Move.Name})
	}
	return c
}
