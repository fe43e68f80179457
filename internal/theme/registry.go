package theme

// registry is built once at init and never mutated afterwards.
var registry = buildRegistry([]Definition{
	{
		Key:         DefaultKey,
		DisplayName: "Default",
		Palette: Palette{
			Mode:              ModeLight,
			Primary:           "#1976d2",
			Secondary:         "#dc004e",
			BackgroundDefault: "#f5f5f5",
			BackgroundPaper:   "#ffffff",
			TextPrimary:       "rgba(0, 0, 0, 0.87)",
			TextSecondary:     "rgba(0, 0, 0, 0.6)",
		},
		FontFamily:     []string{"Roboto", "Helvetica Neue", "Arial", "sans-serif"},
		SectionAccents: SectionAccents{Experience: "#1976d2", Education: "#1976d2", Skills: "#1976d2"},
		MenuBackground: "#ffffff",
	},
	{
		Key:         "google",
		DisplayName: "Google",
		Palette: Palette{
			Mode:              ModeLight,
			Primary:           "#4285F4",
			Secondary:         "#DB4437",
			BackgroundDefault: "#ffffff",
			BackgroundPaper:   "#f1f3f4",
		},
		FontFamily: []string{"Google Sans", "Product Sans", "Roboto", "Arial", "sans-serif"},
		SectionAccents: SectionAccents{
			Experience: "#4285F4",
			Education:  "#0F9D58", // green
			Skills:     "#FBBC05", // yellow
		},
		MenuBackground: "#4285F4",
		LogoImagePath:  "img/google.png",
	},
	{
		Key:         "elastic",
		DisplayName: "Elastic",
		Palette: Palette{
			Mode:              ModeLight,
			Primary:           "#008A5E",
			Secondary:         "#FEC514",
			BackgroundDefault: "#ffffff",
			BackgroundPaper:   "#F5F7FA",
			TextPrimary:       "#343741",
			TextSecondary:     "#BC1E70",
			TextTertiary:      "#222",
		},
		FontFamily:     []string{"Inter", "DM Sans", "Arial", "sans-serif"},
		SectionAccents: SectionAccents{Experience: "#006BB4", Education: "#008A5E", Skills: "#BC1E70"},
		MenuBackground: "#FACB3D",
		LogoImagePath:  "img/elastic.png",
	},
	{
		Key:         "tinybird",
		DisplayName: "Tinybird",
		Palette: Palette{
			Mode:              ModeDark,
			Primary:           "#27F795",
			Secondary:         "#F9F9F9",
			BackgroundDefault: "#25283D",
			BackgroundPaper:   "#1d2033",
			TextPrimary:       "#F9F9F9",
			TextSecondary:     "#27F795",
		},
		FontFamily:     []string{"JetBrains Mono", "Fira Code", "monospace"},
		SectionAccents: SectionAccents{Experience: "#27F795", Education: "#27F795", Skills: "#27F795"},
		MenuBackground: "#1d2033",
		LogoImagePath:  "img/tinybird.png",
	},
	{
		Key:         "clickhouse",
		DisplayName: "ClickHouse",
		Palette: Palette{
			Mode:              ModeDark,
			Primary:           "#FFCC01",
			Secondary:         "#000000",
			BackgroundDefault: "#000000",
			BackgroundPaper:   "#1a1a1a",
			TextPrimary:       "#FFCC01",
			TextSecondary:     "#ffffff",
		},
		FontFamily:     []string{"Share Tech Mono", "Courier New", "monospace"},
		SectionAccents: SectionAccents{Experience: "#FFCC01", Education: "#FFCC01", Skills: "#FFCC01"},
		MenuBackground: "#1a1a1a",
		LogoImagePath:  "img/clickhouse.png",
	},
	{
		Key:         "revenuecat",
		DisplayName: "RevenueCat",
		Palette: Palette{
			Mode:              ModeLight,
			Primary:           "#F2545B",
			Secondary:         "#1F1F47",
			BackgroundDefault: "#fff",
			BackgroundPaper:   "#eeececff",
			TextSecondary:     "#576cdf",
		},
		FontFamily:     []string{"Nunito", "Outfit", "Arial", "sans-serif"},
		SectionAccents: SectionAccents{Experience: "#F2545B", Education: "#F2545B", Skills: "#F2545B"},
		MenuBackground: "#F2545B",
		LogoImagePath:  "img/revenuecat.png",
	},
	{
		Key:         "pearson",
		DisplayName: "Pearson",
		Palette: Palette{
			Mode:              ModeDark,
			Primary:           "#86acb5ff",
			Secondary:         "#F9F9F9",
			BackgroundDefault: "#ffffff",
			BackgroundPaper:   "#005A70",
			TextSecondary:     "#ffce00",
		},
		FontFamily:     []string{"Open Sans", "sans-serif"},
		SectionAccents: SectionAccents{Experience: "#007FA3", Education: "#007FA3", Skills: "#007FA3"},
		MenuBackground: "#1d2033",
		LogoImagePath:  "img/pearson-logo.png",
		BioColors: &BioColors{
			Body:       "#555555",
			Title:      "#007FA3",
			Email:      "#ffce00",
			Location:   "#005A70",
			Phone:      "#157c96ff",
			SocialIcon: "#157c96ff",
		},
	},
})

type table struct {
	order    []string
	resolved map[string]Theme
}

func buildRegistry(defs []Definition) table {
	t := table{
		order:    make([]string, 0, len(defs)),
		resolved: make(map[string]Theme, len(defs)),
	}
	for _, def := range defs {
		if _, dup := t.resolved[def.Key]; dup {
			panic("theme: duplicate key " + def.Key)
		}
		t.order = append(t.order, def.Key)
		t.resolved[def.Key] = resolveDefinition(def)
	}
	if _, ok := t.resolved[DefaultKey]; !ok {
		panic("theme: registry is missing the default key")
	}
	return t
}

// Resolve returns the theme registered under key, or the default theme when the
// key is unknown or empty.
func Resolve(key string) Theme {
	if th, ok := Lookup(key); ok {
		return th
	}
	return clone(registry.resolved[DefaultKey])
}

// Lookup returns the theme registered under key and whether it exists.
func Lookup(key string) (Theme, bool) {
	th, ok := registry.resolved[key]
	if !ok {
		return Theme{}, false
	}
	return clone(th), true
}

// Registered reports whether key is a registered theme key.
func Registered(key string) bool {
	_, ok := registry.resolved[key]
	return ok
}

// InitialKey picks the starting theme from a query parameter value.
func InitialKey(query string) string {
	if query != "" && Registered(query) {
		return query
	}
	return DefaultKey
}

// Keys returns the registered keys in picker order.
func Keys() []string {
	out := make([]string, len(registry.order))
	copy(out, registry.order)
	return out
}

// All returns every resolved theme in picker order.
func All() []Theme {
	out := make([]Theme, 0, len(registry.order))
	for _, key := range registry.order {
		out = append(out, clone(registry.resolved[key]))
	}
	return out
}

func clone(th Theme) Theme {
	th.FontFamily = append([]string(nil), th.FontFamily...)
	return th
}
