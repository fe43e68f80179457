// Package site pre-renders the résumé page once per theme into a static tree.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/jonathan/cv-site/internal/loader"
	"github.com/jonathan/cv-site/internal/logging"
	"github.com/jonathan/cv-site/internal/rendering"
	"github.com/jonathan/cv-site/internal/theme"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// IndexFile is the page file name written for every theme.
const IndexFile = "index.html"

// ThemesDir holds the pages of the non-default themes.
const ThemesDir = "themes"

// maxConcurrentRenders bounds the render goroutines.
const maxConcurrentRenders = 4

// Options configures a static build.
type Options struct {
	DataDir string        // holds cv.json and img/
	OutDir  string        // output root, created if missing
	Source  loader.Source // defaults to DataDir/cv.json
	Themes  []theme.Theme // defaults to theme.All()
	Logger  zerolog.Logger
}

// Result summarizes a finished build.
type Result struct {
	Pages  []string // output-relative page paths, sorted
	Assets int      // files copied from DataDir
}

// PagePath returns the output-relative page path for a theme key.
func PagePath(key string) string {
	if key == theme.DefaultKey {
		return IndexFile
	}
	return path.Join(ThemesDir, key, IndexFile)
}

// assetBase returns the prefix that reaches the output root from a page.
func assetBase(key string) string {
	if key == theme.DefaultKey {
		return "./"
	}
	return "../../"
}

// linkFor returns the picker link from the page of fromKey to the page of toKey.
func linkFor(fromKey string) func(string) string {
	base := assetBase(fromKey)
	return func(toKey string) string {
		if toKey == theme.DefaultKey {
			return base
		}
		return base + ThemesDir + "/" + toKey + "/"
	}
}

// Build loads the document once and writes one page per theme.
func Build(ctx context.Context, opts Options) (*Result, error) {
	if opts.OutDir == "" {
		return nil, errors.New("output directory is required")
	}
	source := opts.Source
	if source == nil {
		if opts.DataDir == "" {
			return nil, errors.New("data directory is required when no document source is given")
		}
		source = loader.FileSource{Dir: opts.DataDir}
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.All()
	}

	l := loader.New(source, logging.Component(opts.Logger, "loader"))
	state := l.Load(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if state.Status == loader.StatusFailed {
		return nil, fmt.Errorf("failed to load document: %w", state.Err)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{}
	if opts.DataDir != "" {
		n, err := copyAssets(opts.DataDir, opts.OutDir)
		if err != nil {
			return nil, err
		}
		result.Assets = n
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRenders)

	pages := make([]string, len(themes))
	for i, th := range themes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rel := PagePath(th.Key)
			if err := writePage(filepath.Join(opts.OutDir, filepath.FromSlash(rel)), rendering.Options{
				Theme:     th,
				Themes:    themes,
				State:     state,
				AssetBase: assetBase(th.Key),
				Picker:    rendering.PickerLinks,
				LinkFor:   linkFor(th.Key),
			}); err != nil {
				return fmt.Errorf("theme %s: %w", th.Key, err)
			}
			pages[i] = rel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(pages)
	result.Pages = pages
	opts.Logger.Info().
		Str("out", opts.OutDir).
		Int("pages", len(pages)).
		Int("assets", result.Assets).
		Msg("site built")
	return result, nil
}

func writePage(dst string, opts rendering.Options) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create page directory: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	if err := rendering.Render(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// copyAssets copies cv.json and the img/ tree into out. Missing sources are skipped.
func copyAssets(dataDir, outDir string) (int, error) {
	copied := 0

	doc := filepath.Join(dataDir, loader.DocumentName)
	if _, err := os.Stat(doc); err == nil {
		if err := copyFile(doc, filepath.Join(outDir, loader.DocumentName)); err != nil {
			return copied, err
		}
		copied++
	}

	imgDir := filepath.Join(dataDir, "img")
	err := filepath.WalkDir(imgDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == imgDir {
				return fs.SkipDir
			}
			return err
		}
		rel, err := filepath.Rel(dataDir, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(outDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		if err := copyFile(p, dst); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("failed to copy images: %w", err)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
