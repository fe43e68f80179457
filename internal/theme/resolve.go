package theme

// modeBase holds the inherited text colors for each palette mode. The light
// values are the default theme's own text colors.
var modeBase = map[Mode]ResolvedPalette{
	ModeLight: {
		TextPrimary:   "rgba(0, 0, 0, 0.87)",
		TextSecondary: "rgba(0, 0, 0, 0.6)",
		Action:        "rgba(0, 0, 0, 0.54)",
	},
	ModeDark: {
		TextPrimary:   "#ffffff",
		TextSecondary: "rgba(255, 255, 255, 0.7)",
		Action:        "#ffffff",
	},
}

var defaultFonts = []string{"Roboto", "Helvetica Neue", "Arial", "sans-serif"}

// resolveDefinition fills every optional field of def, field by field:
// explicit value, then the mode base, then a value derived from the theme itself.
func resolveDefinition(def Definition) Theme {
	mode := def.Palette.Mode
	if mode != ModeDark {
		mode = ModeLight
	}
	base := modeBase[mode]

	p := ResolvedPalette{
		Mode:              mode,
		Primary:           def.Palette.Primary,
		Secondary:         def.Palette.Secondary,
		BackgroundDefault: def.Palette.BackgroundDefault,
		BackgroundPaper:   def.Palette.BackgroundPaper,
		TextPrimary:       first(def.Palette.TextPrimary, base.TextPrimary),
		TextSecondary:     first(def.Palette.TextSecondary, base.TextSecondary),
		Action:            base.Action,
	}
	p.TextTertiary = first(def.Palette.TextTertiary, p.TextPrimary)
	p.Secondary = first(p.Secondary, p.Primary)
	p.BackgroundPaper = first(p.BackgroundPaper, p.BackgroundDefault)

	fonts := def.FontFamily
	if len(fonts) == 0 {
		fonts = defaultFonts
	}

	var bio BioColors
	if def.BioColors != nil {
		bio = *def.BioColors
	}
	bio.Body = first(bio.Body, p.TextSecondary)
	bio.Title = first(bio.Title, p.TextSecondary)
	bio.Email = first(bio.Email, p.TextSecondary)
	bio.Location = first(bio.Location, bio.Body)
	bio.Phone = first(bio.Phone, p.TextSecondary)
	bio.SocialIcon = first(bio.SocialIcon, p.Action)

	return Theme{
		Key:         def.Key,
		DisplayName: first(def.DisplayName, def.Key),
		Palette:     p,
		FontFamily:  append([]string(nil), fonts...),
		SectionAccents: SectionAccents{
			Experience: first(def.SectionAccents.Experience, p.Primary),
			Education:  first(def.SectionAccents.Education, p.Primary),
			Skills:     first(def.SectionAccents.Skills, p.Primary),
		},
		MenuBackground: first(def.MenuBackground, p.BackgroundPaper),
		LogoImagePath:  def.LogoImagePath,
		Bio:            bio,
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
