package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-site/internal/loader"
	"github.com/jonathan/cv-site/internal/metrics"
	"github.com/jonathan/cv-site/internal/rendering"
	"github.com/jonathan/cv-site/internal/session"
	"github.com/jonathan/cv-site/internal/theme"
	"github.com/rs/zerolog"
)

// ThemeParam is the query parameter that picks the theme of a viewer without a session.
const ThemeParam = "theme"

// maxThemeFormBytes caps the POST /theme body.
const maxThemeFormBytes = 4 << 10

// ThemeResponse is returned by POST /theme for JSON clients.
type ThemeResponse struct {
	Key      string `json:"key"`
	Resolved string `json:"resolved"`
	Changed  bool   `json:"changed"`
}

// ThemesResponse lists the registered themes.
type ThemesResponse struct {
	Default string        `json:"default"`
	Active  string        `json:"active,omitempty"`
	Themes  []theme.Theme `json:"themes"`
}

// handlePage renders the résumé in the viewer's current theme.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	// Only POST /theme creates sessions; page views without one render the query theme.
	var th theme.Theme
	if sel, ok := s.sessions.Lookup(session.FromRequest(r)); ok {
		th = sel.Theme()
	} else {
		th = theme.Resolve(theme.InitialKey(r.URL.Query().Get(ThemeParam)))
	}
	state := s.loader.State()

	page, err := rendering.RenderString(rendering.Options{
		Theme:      th,
		State:      state,
		AssetBase:  s.basePath,
		Picker:     rendering.PickerForm,
		FormAction: s.basePath + "theme",
		Refresh:    true,
	})
	if err != nil {
		logger.Error().Err(err).Str("theme", th.Key).Msg("page render failed")
		s.errorResponse(w, HTTPStatus(err), "failed to render page")
		return
	}
	metrics.PageRenders.WithLabelValues(th.Key, string(state.Status)).Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, page); err != nil {
		logger.Debug().Err(err).Msg("client went away")
	}
}

// handleSetTheme stores the chosen key for the session. The key is stored as
// given; unknown keys render with the default theme.
func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxThemeFormBytes)
	if err := r.ParseForm(); err != nil {
		verr := &ErrValidation{Field: "key", Message: "malformed form body"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}
	key := r.PostForm.Get("key")

	id, sel, created := s.sessions.Acquire(session.FromRequest(r), "")
	if created {
		http.SetCookie(w, s.sessions.Cookie(id, s.basePath))
	}

	changed := sel.Set(key)
	resolved := sel.Theme().Key
	if changed {
		metrics.ThemeSelections.WithLabelValues(resolved).Inc()
	}
	logger.Debug().
		Str("key", key).
		Str("resolved", resolved).
		Bool("changed", changed).
		Msg("theme selected")

	if wantsJSON(r) {
		s.jsonResponse(w, http.StatusOK, ThemeResponse{Key: key, Resolved: resolved, Changed: changed})
		return
	}
	http.Redirect(w, r, s.basePath, http.StatusSeeOther)
}

// handleThemes lists the registered themes in picker order.
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	resp := ThemesResponse{
		Default: theme.DefaultKey,
		Themes:  theme.All(),
	}
	if sel, ok := s.sessions.Lookup(session.FromRequest(r)); ok {
		resp.Active = sel.Theme().Key
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDocument returns the loaded document as JSON.
func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	state := s.loader.State()
	switch state.Status {
	case loader.StatusLoaded:
		s.jsonResponse(w, http.StatusOK, state.Document)
	case loader.StatusFailed:
		err := &ErrDocumentFailed{Cause: state.Err}
		s.errorResponse(w, HTTPStatus(err), err.Error())
	default:
		err := &ErrDocumentLoading{}
		w.Header().Set("Retry-After", "1")
		s.errorResponse(w, HTTPStatus(err), err.Error())
	}
}

// handleDocumentFile serves the raw cv.json from the data directory.
func (s *Server) handleDocumentFile(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.dataDir, loader.DocumentName))
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
