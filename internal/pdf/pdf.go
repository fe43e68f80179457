// Package pdf prints rendered résumé pages to PDF with headless Chrome.
package pdf

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single print.
const DefaultTimeout = 60 * time.Second

// A4 paper size in inches.
const (
	A4Width  = 8.27
	A4Height = 11.69
)

// Options controls the printed document.
type Options struct {
	Timeout         time.Duration
	PaperWidth      float64 // inches
	PaperHeight     float64 // inches
	Margin          float64 // inches, all sides
	Landscape       bool
	PrintBackground bool
}

// DefaultOptions returns A4 portrait with theme backgrounds kept.
func DefaultOptions() Options {
	return Options{
		Timeout:         DefaultTimeout,
		PaperWidth:      A4Width,
		PaperHeight:     A4Height,
		Margin:          0.4,
		PrintBackground: true,
	}
}

// FileURL converts a local path into a file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func printParams(opts Options) *page.PrintToPDFParams {
	params := page.PrintToPDF().
		WithPrintBackground(opts.PrintBackground).
		WithLandscape(opts.Landscape).
		WithPreferCSSPageSize(false)
	if opts.PaperWidth > 0 && opts.PaperHeight > 0 {
		params = params.WithPaperWidth(opts.PaperWidth).WithPaperHeight(opts.PaperHeight)
	}
	if opts.Margin >= 0 {
		params = params.
			WithMarginTop(opts.Margin).
			WithMarginBottom(opts.Margin).
			WithMarginLeft(opts.Margin).
			WithMarginRight(opts.Margin)
	}
	return params
}

// Print loads pageURL in a headless browser and returns the PDF bytes.
// Requires Chrome/Chromium to be installed on the system.
func Print(ctx context.Context, pageURL string, opts Options) ([]byte, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := printParams(opts).Do(ctx)
			if err != nil {
				return err
			}
			buf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf printing failed: %w", err)
	}
	return buf, nil
}

// PrintFile prints the local HTML page at htmlPath into outPath.
func PrintFile(ctx context.Context, htmlPath, outPath string, opts Options) error {
	pageURL, err := FileURL(htmlPath)
	if err != nil {
		return err
	}
	data, err := Print(ctx, pageURL, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
