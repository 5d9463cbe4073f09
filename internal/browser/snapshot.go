package browser

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultPollInterval = 25 * time.Millisecond

// SnapshotFrame is a Frame backed by static HTML. It is used to replay saved
// DOM snapshots offline and to drive the scraper in tests. Clicks can be
// wired to swap in another snapshot, which is how tab switches are modelled.
type SnapshotFrame struct {
	mu          sync.Mutex
	url         string
	html        string
	doc         *goquery.Document
	transitions map[clickKey]string
	clicks      []string

	PollInterval time.Duration
}

type clickKey struct {
	selector string
	n        int
}

func NewSnapshotFrame(url, html string) (*SnapshotFrame, error) {
	f := &SnapshotFrame{
		url:          url,
		transitions:  make(map[clickKey]string),
		PollInterval: defaultPollInterval,
	}
	if err := f.SetContent(html); err != nil {
		return nil, err
	}
	return f, nil
}

// SetContent replaces the frame document. Safe to call while another
// goroutine is waiting on a selector.
func (f *SnapshotFrame) SetContent(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("could not parse snapshot: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.html = html
	f.doc = doc
	return nil
}

// OnClick makes a click on the n-th match of selector replace the frame
// document with html.
func (f *SnapshotFrame) OnClick(selector string, n int, html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions[clickKey{selector, n}] = html
}

// Clicks returns every click performed so far as "selector#n".
func (f *SnapshotFrame) Clicks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.clicks...)
}

func (f *SnapshotFrame) WaitForSelector(selector string, timeout time.Duration) error {
	interval := f.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	deadline := time.Now().Add(timeout)
	for {
		n, err := f.Count(selector)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: %s not attached after %v", ErrTimeout, selector, timeout)
		}
		time.Sleep(min(interval, time.Until(deadline)))
	}
}

// Count never fails: goquery treats a malformed selector as matching nothing.
func (f *SnapshotFrame) Count(selector string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Find(selector).Length(), nil
}

func (f *SnapshotFrame) ClickNth(selector string, n int) error {
	count, err := f.Count(selector)
	if err != nil {
		return err
	}
	if n >= count {
		return fmt.Errorf("%w: %s (index %d of %d)", ErrNoElement, selector, n, count)
	}

	f.mu.Lock()
	f.clicks = append(f.clicks, fmt.Sprintf("%s#%d", selector, n))
	next, ok := f.transitions[clickKey{selector, n}]
	f.mu.Unlock()

	if !ok {
		return nil
	}
	return f.SetContent(next)
}

func (f *SnapshotFrame) Content() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.html, nil
}

func (f *SnapshotFrame) URL() string {
	return f.url
}

// SnapshotPage is a Page whose only child frame is a SnapshotFrame.
type SnapshotPage struct {
	frame      *SnapshotFrame
	html       string
	visited    []string
	screenshot func(path string) error

	// GotoErr, when set, is returned by every Goto to model a page that never settles.
	GotoErr error
}

// NewSnapshotPage wraps frame in a top-level document. A nil frame models a
// page on which the iframe never appears.
func NewSnapshotPage(frame *SnapshotFrame) *SnapshotPage {
	html := `<html><body><div id="schedule"></div></body></html>`
	if frame != nil {
		html = fmt.Sprintf(`<html><body><iframe src=%q></iframe></body></html>`, frame.URL())
	}
	return &SnapshotPage{frame: frame, html: html}
}

func (p *SnapshotPage) Goto(url string, timeout time.Duration) error {
	p.visited = append(p.visited, url)
	return p.GotoErr
}

// Visited lists every URL passed to Goto.
func (p *SnapshotPage) Visited() []string {
	return p.visited
}

func (p *SnapshotPage) WaitForSelector(selector string, timeout time.Duration) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.html))
	if err != nil {
		return err
	}
	if doc.Find(selector).Length() > 0 {
		return nil
	}
	time.Sleep(timeout)
	return fmt.Errorf("%w: %s not attached after %v", ErrTimeout, selector, timeout)
}

func (p *SnapshotPage) FirstFrame(selector string) (Frame, error) {
	if p.frame == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return p.frame, nil
}

// OnScreenshot sets the function called by Screenshot. By default
// screenshots are skipped since there is nothing to render.
func (p *SnapshotPage) OnScreenshot(fn func(path string) error) {
	p.screenshot = fn
}

func (p *SnapshotPage) Screenshot(path string) error {
	if p.screenshot == nil {
		return nil
	}
	return p.screenshot(path)
}
