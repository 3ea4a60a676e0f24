package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/meur/dexview/internal/models"
)

const statBarWidth = 30

func renderList(w io.Writer, v models.View) {
	if v.TotalCount == 0 {
		if v.SearchTerm != "" {
			fmt.Fprintf(w, "No Pokemon match %q.\n", v.SearchTerm)
		} else {
			fmt.Fprintln(w, "No Pokemon found.")
		}
		return
	}

	fmt.Fprintf(w, "%-5s  %-16s  %s\n", "ID", "NAME", "TYPES")
	fmt.Fprintf(w, "%-5s  %-16s  %s\n", "--", "----", "-----")
	for _, c := range v.Items {
		fmt.Fprintf(w, "%-5s  %-16s  %s\n", fmt.Sprintf("#%03d", c.ID), models.DisplayName(c.Name), typeNames(c.Types))
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d Pokemon)\n", v.CurrentPage, v.TotalPages, v.TotalCount)
	fmt.Fprintln(w, formatPageLabels(v.PageLabels))
}

// formatPageLabels renders the selector as e.g. "1 ... 3 [4] 5 ... 8".
func formatPageLabels(labels []models.PageLabel) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		switch {
		case l.Kind == models.PageLabelEllipsis:
			parts = append(parts, "...")
		case l.Selected:
			parts = append(parts, fmt.Sprintf("[%d]", l.Page))
		default:
			parts = append(parts, fmt.Sprintf("%d", l.Page))
		}
	}
	return strings.Join(parts, " ")
}

func renderCreature(w io.Writer, c *models.Creature) {
	fmt.Fprintf(w, "#%03d %s\n", c.ID, models.DisplayName(c.Name))
	fmt.Fprintf(w, "Height: %.1f m   Weight: %.1f kg   Base experience: %d\n",
		c.HeightMeters(), c.WeightKilograms(), c.BaseExperience)
	fmt.Fprintf(w, "Types: %s\n", typeNames(c.Types))

	abilities := make([]string, 0, len(c.Abilities))
	for _, a := range c.Abilities {
		name := models.DisplayName(a.Name)
		if a.IsHidden {
			name += " (hidden)"
		}
		abilities = append(abilities, name)
	}
	fmt.Fprintf(w, "Abilities: %s\n", strings.Join(abilities, ", "))

	fmt.Fprintln(w, "Stats:")
	for _, s := range c.Stats {
		fmt.Fprintf(w, "  %-16s %3d %s\n", models.DisplayName(s.Name), s.BaseValue, statBar(s))
	}

	fmt.Fprintf(w, "Moves: %d\n", len(c.Moves))
	if c.HasCry() {
		fmt.Fprintf(w, "Cry: available (dexview cry %d)\n", c.ID)
	} else {
		fmt.Fprintln(w, "Cry: none")
	}
	if c.SpriteURL != "" {
		fmt.Fprintf(w, "Sprite: %s\n", c.SpriteURL)
	}
}

func statBar(s models.Stat) string {
	filled := int(math.Round(s.Percent() / 100 * statBarWidth))
	filled = min(max(filled, 0), statBarWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", statBarWidth-filled)
}

func typeNames(types []models.Type) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	return strings.Join(names, "/")
}
