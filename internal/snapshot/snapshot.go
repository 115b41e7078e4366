// Package snapshot captures a rendered HTML report as a PNG using headless Chrome.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// 800x480 is the resolution of the e-paper panel the image is shown on.
	DefaultWidth  = 800
	DefaultHeight = 480
	DefaultSettle = time.Second

	captureTimeout = 30 * time.Second
	pngQuality     = 100
)

var ErrCapture = errors.New("capture failed")

// Capturer writes an image of an HTML file.
type Capturer interface {
	Capture(ctx context.Context, htmlPath, pngPath string) error
}

// Chrome captures screenshots with a headless Chrome started per capture.
type Chrome struct {
	Width  int64
	Height int64
	// Settle is the fixed wait after load for fonts and icon webfonts.
	Settle time.Duration
	// ExecPath overrides the browser binary; empty lets chromedp find one.
	ExecPath string
}

func NewChrome() *Chrome {
	return &Chrome{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Settle: DefaultSettle,
	}
}

func (c *Chrome) Capture(ctx context.Context, htmlPath, pngPath string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(int(c.Width), int(c.Height)),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(c.Width, c.Height),
		chromedp.Navigate("file://"+filepath.ToSlash(abs)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(c.Settle),
		chromedp.FullScreenshot(&buf, pngQuality),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}

	if err := os.MkdirAll(filepath.Dir(pngPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}
	if err := os.WriteFile(pngPath, buf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}
	return nil
}
