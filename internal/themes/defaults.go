package themes

import "github.com/ghorkotha/ghorkotha-backend/pkg/db/models"

// DefaultPalette is the built-in storefront palette used whenever no
// theme row is active or the theme tables are unreachable.
func DefaultPalette() models.ThemeSetting {
	return models.ThemeSetting{
		ThemeName:             "ডিফল্ট",
		PrimaryColor:          "#0891b2",
		PrimaryForeground:     "#ffffff",
		SecondaryColor:        "#f1f5f9",
		SecondaryForeground:   "#0f172a",
		AccentColor:           "#84cc16",
		AccentForeground:      "#0f172a",
		BackgroundColor:       "#ffffff",
		ForegroundColor:       "#0f172a",
		MutedColor:            "#f1f5f9",
		MutedForeground:       "#64748b",
		BorderColor:           "#e2e8f0",
		InputColor:            "#ffffff",
		CardColor:             "#ffffff",
		CardForeground:        "#0f172a",
		DestructiveColor:      "#ef4444",
		DestructiveForeground: "#ffffff",
		RingColor:             "#0891b2",
	}
}

// applyPaletteDefaults fills any blank color on the input from the
// default palette so admins can save partial palettes.
func applyPaletteDefaults(input *Input) {
	defaults := DefaultPalette()
	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}
	fill(&input.PrimaryColor, defaults.PrimaryColor)
	fill(&input.PrimaryForeground, defaults.PrimaryForeground)
	fill(&input.SecondaryColor, defaults.SecondaryColor)
	fill(&input.SecondaryForeground, defaults.SecondaryForeground)
	fill(&input.AccentColor, defaults.AccentColor)
	fill(&input.AccentForeground, defaults.AccentForeground)
	fill(&input.BackgroundColor, defaults.BackgroundColor)
	fill(&input.ForegroundColor, defaults.ForegroundColor)
	fill(&input.MutedColor, defaults.MutedColor)
	fill(&input.MutedForeground, defaults.MutedForeground)
	fill(&input.BorderColor, defaults.BorderColor)
	fill(&input.InputColor, defaults.InputColor)
	fill(&input.CardColor, defaults.CardColor)
	fill(&input.CardForeground, defaults.CardForeground)
	fill(&input.DestructiveColor, defaults.DestructiveColor)
	fill(&input.DestructiveForeground, defaults.DestructiveForeground)
	fill(&input.RingColor, defaults.RingColor)
}
