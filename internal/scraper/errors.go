package scraper

import (
	"errors"
	"fmt"
	"time"
)

// ErrTabUnavailable is returned when the fixture renders fewer tab buttons
// than the requested tab needs. It is not a failure: the tab is skipped.
var ErrTabUnavailable = errors.New("tab not rendered for this fixture")

// NavigationError means the schedule page did not settle.
type NavigationError struct {
	URL     string
	Elapsed time.Duration
	Err     error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s did not settle after %v: %v", e.URL, e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ElementNotFoundError means a structural element on the path to the
// fixture (frame, fixture list, detail view) never appeared.
type ElementNotFoundError struct {
	What     string
	Selector string
	Elapsed  time.Duration
	Err      error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("%s not found (selector %q, waited %v): %v", e.What, e.Selector, e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

// TabLoadTimeoutError means a tab was clicked but its content marker never rendered.
type TabLoadTimeoutError struct {
	Tab      Tab
	Selector string
	Elapsed  time.Duration
	Err      error
}

func (e *TabLoadTimeoutError) Error() string {
	return fmt.Sprintf("%s tab did not load (selector %q, waited %v): %v", e.Tab, e.Selector, e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *TabLoadTimeoutError) Unwrap() error { return e.Err }

// ExtractionTimeoutError means an extractor's root marker was absent when it
// came to read the tab.
type ExtractionTimeoutError struct {
	Tab      Tab
	Selector string
	Elapsed  time.Duration
	Err      error
}

func (e *ExtractionTimeoutError) Error() string {
	return fmt.Sprintf("%s extraction timed out (selector %q, waited %v): %v", e.Tab, e.Selector, e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *ExtractionTimeoutError) Unwrap() error { return e.Err }

// NoFixturesError means the schedule rendered but offered nothing to open.
// The schedule may legitimately be empty, so callers report it rather than fail.
type NoFixturesError struct {
	Selector string
}

func (e *NoFixturesError) Error() string {
	return fmt.Sprintf("no fixtures to open (selector %q matched nothing)", e.Selector)
}
