package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Headless  bool
	UserAgent string
	// SlowMo slows every playwright operation down, handy when watching a headed run.
	SlowMo time.Duration
}

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywright(ctx context.Context, opts Options) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launch.SlowMo = playwright.Float(float64(opts.SlowMo.Milliseconds()))
	}

	browser, err := pw.Chromium.Launch(launch)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// Browser exposes the underlying browser for callers that need raw playwright
// (PDF rendering).
func (pm *PlaywrightManager) Browser() playwright.Browser {
	return pm.browser
}

// NewPage opens a fresh context and page.
func (pm *PlaywrightManager) NewPage(userAgent string) (Page, error) {
	opts := playwright.BrowserNewContextOptions{}
	if userAgent != "" {
		opts.UserAgent = playwright.String(userAgent)
	}
	bctx, err := pm.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &pwPage{page: page}, nil
}

func (pm *PlaywrightManager) Close() error {
	var errs []error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		log.Printf("⚠️ Error while closing playwright: %v", errors.Join(errs...))
	}
	return errors.Join(errs...)
}

type pwPage struct {
	page playwright.Page
}

func (p *pwPage) Goto(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   millis(timeout),
	})
	return wrapTimeout(err)
}

func (p *pwPage) WaitForSelector(selector string, timeout time.Duration) error {
	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: millis(timeout),
	})
	return wrapTimeout(err)
}

func (p *pwPage) FirstFrame(selector string) (Frame, error) {
	el, err := p.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	frame, err := el.ContentFrame()
	if err != nil {
		return nil, fmt.Errorf("could not bind content frame of %s: %w", selector, err)
	}
	if frame == nil {
		return nil, fmt.Errorf("%w: %s has no content frame", ErrNoElement, selector)
	}
	return &pwFrame{frame: frame}, nil
}

func (p *pwPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

type pwFrame struct {
	frame playwright.Frame
}

func (f *pwFrame) WaitForSelector(selector string, timeout time.Duration) error {
	_, err := f.frame.WaitForSelector(selector, playwright.FrameWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: millis(timeout),
	})
	return wrapTimeout(err)
}

func (f *pwFrame) Count(selector string) (int, error) {
	return f.frame.Locator(selector).Count()
}

func (f *pwFrame) ClickNth(selector string, n int) error {
	return wrapTimeout(f.frame.Locator(selector).Nth(n).Click())
}

func (f *pwFrame) Content() (string, error) {
	return f.frame.Content()
}

func (f *pwFrame) URL() string {
	return f.frame.URL()
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func wrapTimeout(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
