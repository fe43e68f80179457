package rendering

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/cv-site/internal/layout"
	"github.com/jonathan/cv-site/internal/loader"
	"github.com/jonathan/cv-site/internal/theme"
	"github.com/jonathan/cv-site/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *types.CVDocument {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "types", "testdata", "cv.json"))
	require.NoError(t, err)
	doc, err := types.DecodeCVDocument(data)
	require.NoError(t, err)
	return doc
}

func renderDoc(t *testing.T, opts Options) *goquery.Document {
	t.Helper()
	html, err := RenderString(opts)
	require.NoError(t, err)
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return dom
}

func loaded(doc *types.CVDocument) loader.State {
	return loader.State{Status: loader.StatusLoaded, Document: doc}
}

func TestRender_SectionsInFixedOrder(t *testing.T) {
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loaded(loadSample(t))})

	var ids, headings []string
	dom.Find("main section").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
		headings = append(headings, s.ChildrenFiltered("h2").Text())
	})
	assert.Equal(t, []string{"about", "experience", "education", "skills"}, ids)
	assert.Equal(t, []string{"About Me", "Experience", "Education", "Skills"}, headings)
	assert.Equal(t, 4, dom.Find("main section > h2").Length())
}

func TestRender_CardCountsPreserveOrder(t *testing.T) {
	doc := loadSample(t)
	dom := renderDoc(t, Options{Theme: theme.Resolve("google"), State: loaded(doc)})

	exp := dom.Find(".experience-card")
	require.Equal(t, len(doc.Experience), exp.Length())
	exp.Each(func(i int, s *goquery.Selection) {
		assert.Equal(t, doc.Experience[i].Role, s.Find("h3").Text())
		assert.Equal(t, doc.Experience[i].Company, s.Find(".company").Text())
	})

	var achievements []string
	exp.First().Find("ul li").Each(func(_ int, s *goquery.Selection) {
		achievements = append(achievements, s.Text())
	})
	assert.Equal(t, doc.Experience[0].Achievements, achievements)

	assert.Equal(t, len(doc.Education), dom.Find(".education-card").Length())

	skills := dom.Find(".skill-card")
	require.Equal(t, len(doc.Skills), skills.Length())
	skills.Each(func(i int, s *goquery.Selection) {
		assert.Equal(t, doc.Skills[i].Category, s.Find(".category").Text())
		assert.Equal(t, len(doc.Skills[i].Items), s.Find(".tag").Length())
	})
}

func TestRender_SingleSocialIcon(t *testing.T) {
	doc := loadSample(t)
	doc.SocialLinks = types.SocialLinks{GitHub: "https://github.com/x"}
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loaded(doc)})

	icons := dom.Find(".social-icon")
	require.Equal(t, 1, icons.Length())
	href, _ := icons.Attr("href")
	assert.Equal(t, "https://github.com/x", href)
	network, _ := icons.Attr("data-network")
	assert.Equal(t, "github", network)
}

func TestRender_NoSocialLinks(t *testing.T) {
	doc := loadSample(t)
	doc.SocialLinks = types.SocialLinks{}
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loaded(doc)})
	assert.Equal(t, 0, dom.Find(".social").Length())
}

func TestRender_LocationLinksToMapSearch(t *testing.T) {
	doc := loadSample(t)
	doc.PersonalInfo.Location = "London, UK"
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loaded(doc)})

	link := dom.Find("a.contact-location")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=London%2C+UK", href)
	target, _ := link.Attr("target")
	assert.Equal(t, "_blank", target)
}

func TestRender_OptionalPhone(t *testing.T) {
	doc := loadSample(t)
	doc.PersonalInfo.Phone = ""
	dom := renderDoc(t, Options{Theme: theme.Resolve("pearson"), State: loaded(doc)})
	assert.Equal(t, 0, dom.Find(".contact-phone").Length())

	doc.PersonalInfo.Phone = "+44 20 7946 0000"
	dom = renderDoc(t, Options{Theme: theme.Resolve("pearson"), State: loaded(doc)})
	assert.Equal(t, "+44 20 7946 0000", strings.TrimSpace(dom.Find(".contact-phone").Text()))
}

func TestRender_LoadingPlaceholder(t *testing.T) {
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loader.State{Status: loader.StatusLoading}, Refresh: true})

	assert.Equal(t, "Loading...", dom.Find(".placeholder.loading").Text())
	assert.Equal(t, 0, dom.Find("main section").Length())
	assert.Equal(t, 0, dom.Find(".profile").Length())
	assert.Equal(t, 1, dom.Find(`meta[http-equiv="refresh"]`).Length())

	// Chrome stays interactive without the document.
	assert.Equal(t, 4, dom.Find(".nav-list a").Length())
	assert.Equal(t, len(theme.Keys()), dom.Find(".theme-option").Length())
}

func TestRender_ErrorStateShowsNoContent(t *testing.T) {
	state := loader.State{Status: loader.StatusFailed, Err: errors.New("HTTP status 404")}
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: state, Refresh: true})

	assert.Equal(t, "Error loading data", dom.Find(".placeholder.error").Text())
	assert.Equal(t, 0, dom.Find("main section").Length())
	assert.Equal(t, 0, dom.Find(".experience-card").Length())
	assert.Equal(t, 0, dom.Find(`meta[http-equiv="refresh"]`).Length())
}

func TestRender_ProfileBlock(t *testing.T) {
	doc := loadSample(t)
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loaded(doc)})

	profile := dom.Find("#drawer .profile")
	require.Equal(t, 1, profile.Length())
	assert.Equal(t, doc.PersonalInfo.Name, profile.Find(".name").Text())
	src, _ := profile.Find("img").Attr("src")
	assert.Equal(t, doc.PersonalInfo.PhotoURL, src)
}

func TestRender_PickerFormMode(t *testing.T) {
	dom := renderDoc(t, Options{
		Theme:      theme.Resolve("clickhouse"),
		State:      loaded(loadSample(t)),
		AssetBase:  "/",
		Picker:     PickerForm,
		FormAction: "/theme",
	})

	form := dom.Find("form.picker")
	require.Equal(t, 1, form.Length())
	action, _ := form.Attr("action")
	assert.Equal(t, "/theme", action)

	buttons := form.Find("button.theme-option")
	require.Equal(t, len(theme.Keys()), buttons.Length())

	var keys []string
	buttons.Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("value")
		keys = append(keys, v)
	})
	assert.Equal(t, theme.Keys(), keys)

	active := dom.Find(".theme-option.active")
	require.Equal(t, 1, active.Length())
	v, _ := active.Attr("value")
	assert.Equal(t, "clickhouse", v)

	// Default has no logo and gets the placeholder icon.
	def := dom.Find(`.theme-option[data-theme-key="default"]`)
	assert.Equal(t, 1, def.Find(".placeholder-icon").Length())
	assert.Equal(t, 0, def.Find("img").Length())

	src, _ := dom.Find(`.theme-option[data-theme-key="google"] img`).Attr("src")
	assert.Equal(t, "/img/google.png", src)
}

func TestRender_PickerLinkMode(t *testing.T) {
	dom := renderDoc(t, Options{
		Theme:     theme.Resolve("default"),
		State:     loaded(loadSample(t)),
		AssetBase: "./",
		Picker:    PickerLinks,
		LinkFor:   func(key string) string { return "themes/" + key + "/index.html" },
	})

	assert.Equal(t, 0, dom.Find("form.picker").Length())
	href, _ := dom.Find(`a.theme-option[data-theme-key="elastic"]`).Attr("href")
	assert.Equal(t, "themes/elastic/index.html", href)
	src, _ := dom.Find(`a.theme-option[data-theme-key="elastic"] img`).Attr("src")
	assert.Equal(t, "./img/elastic.png", src)

	raw, _ := dom.Find(".picker").Attr("data-theme-links")
	assert.Contains(t, raw, `"elastic":"themes/elastic/index.html"`)
}

func TestRender_FormModeHasNoThemeLinks(t *testing.T) {
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loaded(loadSample(t)), Picker: PickerForm})

	_, ok := dom.Find("[data-theme-links]").Attr("data-theme-links")
	assert.False(t, ok)
}

func TestRender_DrawerCarriesTransitions(t *testing.T) {
	dom := renderDoc(t, Options{Theme: theme.Resolve("default"), State: loaded(loadSample(t))})

	drawer := dom.Find("#drawer")
	state, _ := drawer.Attr("data-drawer-state")
	assert.Equal(t, "collapsed", state)
	assert.Equal(t, string(layout.NewDrawer(layout.ViewportNarrow).State()), state)
	raw, _ := drawer.Attr("data-drawer-transitions")
	assert.Contains(t, raw, `"toggle":"expanded"`)
	wideMin, _ := drawer.Attr("data-wide-min")
	assert.Equal(t, strconv.Itoa(WideBreakpoint), wideMin)
	assert.Contains(t, string(Stylesheet(theme.Resolve("default"))), fmt.Sprintf("@media (min-width: %dpx)", WideBreakpoint))

	assert.Equal(t, 1, dom.Find(`.app-bar [data-drawer-event="toggle"]`).Length())
	assert.Equal(t, 1, dom.Find(`#drawer [data-drawer-event="close"]`).Length())
	assert.Equal(t, 4, dom.Find(`.nav-list a[data-drawer-event="navigate"]`).Length())
	href, _ := dom.Find(".nav-list a").Eq(2).Attr("href")
	assert.Equal(t, "#education", href)
}

func TestRender_StylesheetFollowsTheme(t *testing.T) {
	dom := renderDoc(t, Options{Theme: theme.Resolve("clickhouse"), State: loaded(loadSample(t))})
	css := dom.Find("style").Text()

	ch := theme.Resolve("clickhouse")
	assert.Contains(t, css, "background-color: "+ch.MenuBackground)
	assert.Contains(t, css, "#experience > h2 { color: "+ch.SectionAccents.Experience)
	assert.NotContains(t, css, "ZgotmplZ")
}

func TestRender_EscapesDocumentText(t *testing.T) {
	doc := loadSample(t)
	doc.PersonalInfo.Summary = `<script>alert("x")</script>`
	html, err := RenderString(Options{Theme: theme.Resolve("default"), State: loaded(doc)})
	require.NoError(t, err)
	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestStylesheet_NoFormatErrors(t *testing.T) {
	for _, th := range theme.All() {
		css := string(Stylesheet(th))
		assert.NotContains(t, css, "%!", th.Key)
		assert.Contains(t, css, th.CSSFontFamily(), th.Key)
		assert.Contains(t, css, ".theme-option.active { border-color: "+th.Palette.Primary, th.Key)
	}
}

func TestMapsLink(t *testing.T) {
	assert.Equal(t, "", MapsLink("  "))
	assert.Equal(t, MapsSearchURL+"S%C3%A3o+Paulo", MapsLink("São Paulo"))
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, &TemplateError{Message: "x", Cause: cause}, cause)
	assert.ErrorIs(t, &RenderError{Message: "x", Cause: cause}, cause)
	assert.Equal(t, "render error: x", (&RenderError{Message: "x"}).Error())
}
