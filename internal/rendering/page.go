// Package rendering renders the résumé page from a resolved theme and the
// loader state.
package rendering

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/jonathan/cv-site/internal/layout"
	"github.com/jonathan/cv-site/internal/loader"
	"github.com/jonathan/cv-site/internal/theme"
	"github.com/jonathan/cv-site/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// MapsSearchURL is the map search endpoint the location links to.
const MapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// PickerMode selects how theme-picker affordances are emitted.
type PickerMode int

const (
	// PickerForm posts the chosen key back to the server.
	PickerForm PickerMode = iota
	// PickerLinks links to pre-rendered pages, one per theme.
	PickerLinks
)

// Options describes one page render.
type Options struct {
	Theme  theme.Theme
	Themes []theme.Theme // picker entries, defaults to theme.All()
	State  loader.State

	// AssetBase prefixes logo paths, e.g. "/" when served or "../../" for a nested static page.
	AssetBase string

	Picker     PickerMode
	FormAction string                  // PickerForm target
	LinkFor    func(key string) string // PickerLinks target per theme key

	// Refresh makes the loading placeholder reload the page.
	Refresh bool
}

type pickerOption struct {
	Key         string
	DisplayName string
	LogoURL     string
	Href        string
	Active      bool
}

type socialIcon struct {
	Network string
	URL     string
	Icon    template.HTML
}

type pageView struct {
	Title       string
	ThemeKey    string
	Stylesheet  template.CSS
	Loading     bool
	Failed      bool
	Refresh     bool
	Doc         *types.CVDocument
	MapsURL     string
	Social      []socialIcon
	Sections    []layout.Section
	Transitions string
	DrawerState layout.DrawerState
	WideMin     int
	Picker      []pickerOption
	FormMode    bool
	FormAction  string
	ThemeLinks  string // key to page link, set in PickerLinks mode
}

var (
	parseOnce sync.Once
	pageTmpl  *template.Template
	parseErr  error
)

func parseTemplates() (*template.Template, error) {
	parseOnce.Do(func() {
		tmpl, err := template.New("page").Funcs(template.FuncMap{
			"icon": icon,
		}).ParseFS(templateFS, "templates/*.html.tmpl")
		if err != nil {
			parseErr = &TemplateError{
				Message: "failed to parse page templates",
				Cause:   err,
			}
			return
		}
		pageTmpl = tmpl
	})
	return pageTmpl, parseErr
}

// MapsLink builds the map search URL for a location.
func MapsLink(location string) string {
	if strings.TrimSpace(location) == "" {
		return ""
	}
	return MapsSearchURL + url.QueryEscape(location)
}

func buildView(opts Options) (*pageView, error) {
	transitions, err := layout.TransitionsJSON()
	if err != nil {
		return nil, &RenderError{
			Message: "failed to build drawer script data",
			Cause:   err,
		}
	}

	themes := opts.Themes
	if themes == nil {
		themes = theme.All()
	}

	view := &pageView{
		Title:       "CV",
		ThemeKey:    opts.Theme.Key,
		Stylesheet:  Stylesheet(opts.Theme),
		Loading:     opts.State.Status == loader.StatusLoading || opts.State.Status == "",
		Failed:      opts.State.Status == loader.StatusFailed,
		Sections:    layout.Sections(),
		Transitions: transitions,
		DrawerState: layout.NewDrawer(layout.ViewportNarrow).State(),
		WideMin:     WideBreakpoint,
		FormMode:    opts.Picker == PickerForm,
		FormAction:  opts.FormAction,
	}
	view.Refresh = view.Loading && opts.Refresh

	if opts.State.Status == loader.StatusLoaded && opts.State.Document != nil {
		doc := opts.State.Document
		view.Doc = doc
		if doc.PersonalInfo.Name != "" {
			view.Title = doc.PersonalInfo.Name + " · CV"
		}
		view.MapsURL = MapsLink(doc.PersonalInfo.Location)
		for _, link := range doc.SocialLinks.Present() {
			view.Social = append(view.Social, socialIcon{
				Network: link.Network,
				URL:     link.URL,
				Icon:    icon(link.Network),
			})
		}
	}

	links := make(map[string]string, len(themes))
	for _, th := range themes {
		opt := pickerOption{
			Key:         th.Key,
			DisplayName: th.DisplayName,
			Active:      th.Key == opts.Theme.Key,
		}
		if th.HasLogo() {
			opt.LogoURL = opts.AssetBase + th.LogoImagePath
		}
		if opts.Picker == PickerLinks && opts.LinkFor != nil {
			opt.Href = opts.LinkFor(th.Key)
			links[th.Key] = opt.Href
		}
		view.Picker = append(view.Picker, opt)
	}

	if len(links) > 0 {
		data, err := json.Marshal(links)
		if err != nil {
			return nil, &RenderError{
				Message: "failed to encode theme links",
				Cause:   err,
			}
		}
		view.ThemeLinks = string(data)
	}

	return view, nil
}

// Render writes the full page.
func Render(w io.Writer, opts Options) error {
	tmpl, err := parseTemplates()
	if err != nil {
		return err
	}

	view, err := buildView(opts)
	if err != nil {
		return err
	}

	// Render into a buffer so a failed execution never emits a partial page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page.html.tmpl", view); err != nil {
		return &TemplateError{
			Message: "failed to execute page template",
			Cause:   err,
		}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{
			Message: "failed to write page",
			Cause:   err,
		}
	}
	return nil
}

// RenderString renders the page to a string.
func RenderString(opts Options) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}
