package browser

import (
	"errors"
	"time"
)

var (
	// ErrTimeout is returned when a wait runs out of time.
	ErrTimeout = errors.New("browser: timeout")
	// ErrNoElement is returned when a selector matches nothing where one element is required.
	ErrNoElement = errors.New("browser: no element matches selector")
)

// Frame is the part of a rendered document the scraper drives: it waits for
// markers, clicks controls and reads back the rendered HTML.
type Frame interface {
	// WaitForSelector blocks until selector is attached to the DOM or timeout expires.
	WaitForSelector(selector string, timeout time.Duration) error
	Count(selector string) (int, error)
	// ClickNth clicks the n-th (0-based) element matching selector.
	ClickNth(selector string, n int) error
	// Content returns the current serialized DOM.
	Content() (string, error)
	URL() string
}

// Page is a top-level browser tab.
type Page interface {
	Goto(url string, timeout time.Duration) error
	WaitForSelector(selector string, timeout time.Duration) error
	// FirstFrame binds to the content frame of the first element matching selector.
	FirstFrame(selector string) (Frame, error)
	Screenshot(path string) error
}
