package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/meur/dexview/internal/audio"
	"github.com/meur/dexview/internal/models"
	"github.com/meur/dexview/internal/pokeapi"
)

const (
	statBarWidth  = 24
	movesPreview  = 12
	noMatchesText = "No Pokemon match your search."
)

func listRow(c models.Creature) string {
	return fmt.Sprintf("#%03d  %-14s %s", c.ID, models.DisplayName(c.Name), typeBadges(c.Types))
}

func typeBadges(types []models.Type) string {
	badges := make([]string, 0, len(types))
	for _, t := range types {
		badges = append(badges, fmt.Sprintf("[%s]%s[-]", models.TypeColor(t.Name), t.Name))
	}
	return strings.Join(badges, " ")
}

// pagerText renders the page selector with the current page highlighted.
func pagerText(v models.View) string {
	if v.TotalPages == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range v.PageLabels {
		switch {
		case l.Kind == models.PageLabelEllipsis:
			b.WriteString(" … ")
		case l.Selected:
			fmt.Fprintf(&b, "[::r] %d [::-]", l.Page)
		default:
			fmt.Fprintf(&b, " %d ", l.Page)
		}
	}
	fmt.Fprintf(&b, "   page %d/%d, %d Pokemon", v.CurrentPage, v.TotalPages, v.TotalCount)
	return b.String()
}

// detailText renders an opened record and the state of its cry.
func detailText(c *models.Creature, cry audio.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[::b]#%03d %s[::-]\n\n", c.ID, models.DisplayName(c.Name))
	fmt.Fprintf(&b, "Height  %.1f m\nWeight  %.1f kg\nBase experience  %d\n\n",
		c.HeightMeters(), c.WeightKilograms(), c.BaseExperience)
	fmt.Fprintf(&b, "Types  %s\n\n", typeBadges(c.Types))

	b.WriteString("Abilities\n")
	for _, a := range c.Abilities {
		fmt.Fprintf(&b, "  %s", models.DisplayName(a.Name))
		if a.IsHidden {
			b.WriteString(" (hidden)")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nStats\n")
	for _, s := range c.Stats {
		fmt.Fprintf(&b, "  %-16s %3d  %s\n", models.DisplayName(s.Name), s.BaseValue, statBar(s))
	}

	fmt.Fprintf(&b, "\nMoves (%d)\n", len(c.Moves))
	names := make([]string, 0, movesPreview)
	for i, m := range c.Moves {
		if i == movesPreview {
			names = append(names, fmt.Sprintf("and %d more", len(c.Moves)-movesPreview))
			break
		}
		names = append(names, models.DisplayName(m.Name))
	}
	fmt.Fprintf(&b, "  %s\n\n", strings.Join(names, ", "))

	switch {
	case !c.HasCry():
		b.WriteString("Cry  none\n")
	case cry == audio.Playing:
		b.WriteString("Cry  ▶ playing (c to stop)\n")
	default:
		b.WriteString("Cry  ■ stopped (c to play)\n")
	}
	return b.String()
}

func statBar(s models.Stat) string {
	filled := int(math.Round(s.Percent() / 100 * statBarWidth))
	filled = min(max(filled, 0), statBarWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", statBarWidth-filled)
}

// detailErrorText is shown in place of a record that could not be fetched.
func detailErrorText(id int, err error) string {
	if errors.Is(err, pokeapi.ErrNotFound) {
		return fmt.Sprintf("Pokemon #%d not found.\n\nEsc to go back.", id)
	}
	return "Failed to fetch Pokemon details.\n\nEsc to go back."
}
