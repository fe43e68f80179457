// Package theme provides the company theme registry and its layered-default resolution.
package theme

import (
	"strings"
)

// DefaultKey is the reserved key every unknown lookup resolves to.
const DefaultKey = "default"

// Mode is the palette brightness mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Palette holds the palette colors of a theme definition.
// Empty optional fields are filled in by Resolve.
type Palette struct {
	Mode              Mode
	Primary           string
	Secondary         string
	BackgroundDefault string
	BackgroundPaper   string
	TextPrimary       string // optional
	TextSecondary     string // optional
	TextTertiary      string // optional, used for navigation entries
}

// SectionAccents are the heading colors for the content sections.
type SectionAccents struct {
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
}

// BioColors overrides the colors of the About section fields.
type BioColors struct {
	Body       string `json:"body"`
	Title      string `json:"title"`
	Email      string `json:"email"`
	Location   string `json:"location"`
	Phone      string `json:"phone"`
	SocialIcon string `json:"socialIcon"`
}

// Definition is a registry entry. Only Key, DisplayName, Palette.Mode,
// Palette.Primary, Palette.Secondary, the backgrounds and MenuBackground are required.
type Definition struct {
	Key            string
	DisplayName    string
	Palette        Palette
	FontFamily     []string
	SectionAccents SectionAccents
	MenuBackground string
	LogoImagePath  string     // relative to the asset base, optional
	BioColors      *BioColors // optional
}

// ResolvedPalette is a palette with every color filled in.
type ResolvedPalette struct {
	Mode              Mode   `json:"mode"`
	Primary           string `json:"primary"`
	Secondary         string `json:"secondary"`
	BackgroundDefault string `json:"backgroundDefault"`
	BackgroundPaper   string `json:"backgroundPaper"`
	TextPrimary       string `json:"textPrimary"`
	TextSecondary     string `json:"textSecondary"`
	TextTertiary      string `json:"textTertiary"`
	Action            string `json:"action"`
}

// Theme is the fully resolved style bundle threaded through the views.
type Theme struct {
	Key            string          `json:"key"`
	DisplayName    string          `json:"displayName"`
	Palette        ResolvedPalette `json:"palette"`
	FontFamily     []string        `json:"fontFamily"`
	SectionAccents SectionAccents  `json:"sectionAccents"`
	MenuBackground string          `json:"menuBackground"`
	LogoImagePath  string          `json:"logoImagePath,omitempty"`
	Bio            BioColors       `json:"bio"`
}

// HasLogo reports whether the theme declares a logo image.
func (t Theme) HasLogo() bool {
	return t.LogoImagePath != ""
}

// CSSFontFamily renders the ordered font list as a CSS font-family value.
func (t Theme) CSSFontFamily() string {
	parts := make([]string, 0, len(t.FontFamily))
	for _, font := range t.FontFamily {
		font = strings.TrimSpace(font)
		if font == "" {
			continue
		}
		if strings.ContainsAny(font, " ") && !isGenericFamily(font) {
			font = `"` + font + `"`
		}
		parts = append(parts, font)
	}
	return strings.Join(parts, ", ")
}

func isGenericFamily(font string) bool {
	switch font {
	case "serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui":
		return true
	}
	return false
}

// Colors lists every color of the resolved theme keyed by a dotted field name.
func (t Theme) Colors() map[string]string {
	return map[string]string{
		"palette.primary":           t.Palette.Primary,
		"palette.secondary":         t.Palette.Secondary,
		"palette.backgroundDefault": t.Palette.BackgroundDefault,
		"palette.backgroundPaper":   t.Palette.BackgroundPaper,
		"palette.textPrimary":       t.Palette.TextPrimary,
		"palette.textSecondary":     t.Palette.TextSecondary,
		"palette.textTertiary":      t.Palette.TextTertiary,
		"palette.action":            t.Palette.Action,
		"sectionAccents.experience": t.SectionAccents.Experience,
		"sectionAccents.education":  t.SectionAccents.Education,
		"sectionAccents.skills":     t.SectionAccents.Skills,
		"menuBackground":            t.MenuBackground,
		"bio.body":                  t.Bio.Body,
		"bio.title":                 t.Bio.Title,
		"bio.email":                 t.Bio.Email,
		"bio.location":              t.Bio.Location,
		"bio.phone":                 t.Bio.Phone,
		"bio.socialIcon":            t.Bio.SocialIcon,
	}
}
