package rendering

import (
	"fmt"
	"html/template"

	"github.com/jonathan/cv-site/internal/theme"
)

// DrawerWidth is the width of the navigation panel in pixels.
const DrawerWidth = 240

// WideBreakpoint is the viewport width from which the drawer is docked.
const WideBreakpoint = 900

// Stylesheet builds the page CSS for a resolved theme. Colors come from the
// registry, never from the document, so the result is trusted CSS.
func Stylesheet(th theme.Theme) template.CSS {
	p := th.Palette
	css := fmt.Sprintf(`
*, *::before, *::after { box-sizing: border-box; }
html { scroll-behavior: smooth; }
body { margin: 0; font-family: %[1]s; color: %[2]s; background-color: %[3]s; }
a { color: %[4]s; }
main { padding: 24px; min-height: 100vh; background-color: %[3]s; }
.content { max-width: 800px; margin: 0 auto; }
.placeholder { padding: 48px 0; color: %[5]s; }
.placeholder.error { color: %[7]s; }

section { margin-bottom: 48px; scroll-margin-top: 80px; }
section > h2 { display: inline-block; margin: 0 0 24px; padding-bottom: 8px; font-size: 2rem; font-weight: 400; border-bottom: 2px solid; }
#about > h2 { color: %[4]s; border-color: %[4]s; }
#experience > h2 { color: %[8]s; border-color: %[8]s; }
#education > h2 { color: %[9]s; border-color: %[9]s; }
#skills > h2 { color: %[10]s; border-color: %[10]s; }

.bio-name, .bio-title { color: %[11]s; margin: 0 0 8px; font-weight: 400; }
.bio-name { font-size: 3rem; }
.bio-title { font-size: 1.5rem; }
.bio-summary { color: %[12]s; }
.contact { display: flex; flex-wrap: wrap; gap: 16px; margin-bottom: 16px; font-size: 0.875rem; }
.contact-item { display: inline-flex; align-items: center; gap: 4px; }
.contact-item svg { width: 20px; height: 20px; fill: %[13]s; }
.contact-email { color: %[14]s; }
.contact-phone { color: %[15]s; }
.contact-location { color: %[16]s; text-decoration: underline; }
.social { display: flex; gap: 8px; }
.social-icon { display: inline-flex; padding: 8px; border-radius: 50%%; }
.social-icon svg { width: 24px; height: 24px; fill: %[17]s; }

.card { background-color: %[6]s; border-radius: 4px; padding: 16px; margin-bottom: 24px; box-shadow: 0 3px 3px -2px rgba(0, 0, 0, 0.2), 0 3px 4px 0 rgba(0, 0, 0, 0.14), 0 1px 8px 0 rgba(0, 0, 0, 0.12); }
.card-header { display: flex; flex-wrap: wrap; justify-content: space-between; gap: 8px; }
.card h3 { margin: 0; font-size: 1.25rem; font-weight: 500; }
.card .company, .card .category { color: %[4]s; margin: 0; }
.card .period { color: %[5]s; font-size: 0.875rem; }
.card .description { font-size: 0.875rem; }
.card ul { margin: 0; padding-left: 16px; font-size: 0.875rem; }
.skills { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 24px; }
.tags { display: flex; flex-wrap: wrap; gap: 8px; }
.tag { border: 1px solid %[5]s; border-radius: 16px; padding: 2px 10px; font-size: 0.8125rem; }

.app-bar { display: none; }
.drawer { position: fixed; top: 0; right: 0; bottom: 0; width: %[18]dpx; overflow-y: auto; padding: 16px; background-color: %[19]s; }
.drawer-close { display: none; }
.backdrop { display: none; }
.profile { display: flex; flex-direction: column; align-items: center; margin: 16px 0 24px; text-align: center; }
.profile img { width: 100px; height: 100px; border-radius: 50%%; border: 4px solid %[4]s; margin-bottom: 16px; object-fit: cover; }
.profile .name { font-weight: bold; font-size: 1.25rem; }
.profile .title { color: %[5]s; font-size: 0.875rem; }
.drawer-heading { color: %[5]s; font-size: 0.875rem; font-weight: 500; margin: 0 0 8px; padding-left: 16px; }
.nav-list { list-style: none; margin: 0 0 32px; padding: 0; }
.nav-list a { display: block; padding: 8px 16px; color: %[20]s; text-decoration: none; }
.picker { display: flex; flex-wrap: wrap; gap: 8px; justify-content: center; margin: 0; }
.theme-option { display: inline-flex; padding: 4px; border: 2px solid transparent; border-radius: 50%%; background: none; cursor: pointer; }
.theme-option.active { border-color: %[4]s; }
.theme-option img, .theme-option .placeholder-icon { width: 32px; height: 32px; border-radius: 50%%; background-color: #ffffff; }
.theme-option .placeholder-icon { display: inline-flex; align-items: center; justify-content: center; background-color: #eeeeee; }
.theme-option .placeholder-icon svg { width: 20px; height: 20px; fill: #666666; }

@media (min-width: %[21]dpx) {
  main { margin-right: %[18]dpx; }
}
@media (max-width: %[22]dpx) {
  main { margin-top: 64px; }
  .app-bar { display: flex; align-items: center; position: fixed; top: 0; left: 0; right: 0; height: 64px; padding: 0 16px; z-index: 1200; color: #ffffff; background-color: %[4]s; }
  .app-bar h1 { flex-grow: 1; margin: 0; font-size: 1.25rem; font-weight: 500; }
  .app-bar button, .drawer-close { background: none; border: 0; color: inherit; cursor: pointer; }
  .app-bar svg, .drawer-close svg { width: 24px; height: 24px; fill: currentColor; }
  .drawer { z-index: 1300; transition: transform 225ms; }
  .drawer[data-drawer-state="collapsed"] { transform: translateX(100%%); }
  .drawer-close { display: flex; justify-content: flex-end; width: 100%%; padding: 8px; }
  .drawer[data-drawer-state="expanded"] + .backdrop { display: block; position: fixed; inset: 0; z-index: 1250; background-color: rgba(0, 0, 0, 0.5); }
}
@media print {
  .app-bar, .drawer, .backdrop { display: none !important; }
  main { margin: 0 !important; padding: 0; min-height: 0; }
  .card { box-shadow: none; border: 1px solid %[5]s; break-inside: avoid; }
}
`,
		th.CSSFontFamily(),           // 1
		p.TextPrimary,                // 2
		p.BackgroundDefault,          // 3
		p.Primary,                    // 4
		p.TextSecondary,              // 5
		p.BackgroundPaper,            // 6
		p.Secondary,                  // 7
		th.SectionAccents.Experience, // 8
		th.SectionAccents.Education,  // 9
		th.SectionAccents.Skills,     // 10
		th.Bio.Title,                 // 11
		th.Bio.Body,                  // 12
		p.Action,                     // 13
		th.Bio.Email,                 // 14
		th.Bio.Phone,                 // 15
		th.Bio.Location,              // 16
		th.Bio.SocialIcon,            // 17
		DrawerWidth,                  // 18
		th.MenuBackground,            // 19
		p.TextTertiary,               // 20
		WideBreakpoint,               // 21
		WideBreakpoint-1,             // 22
	)
	return template.CSS(css)
}
