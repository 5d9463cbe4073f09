package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-fixture-summary/internal/browser"
)

const SnapshotDir = "snapshots"

// ScreenShotDebugger keeps the evidence of one run: a screenshot and the
// frame HTML for every structural failure, and the recorded tab snapshots.
type ScreenShotDebugger struct {
	outputDir string

	mu       sync.Mutex
	captured []string
}

// NewScreenShotDebugger creates baseDir/runID for the run's artifacts.
func NewScreenShotDebugger(baseDir, runID string) *ScreenShotDebugger {
	dir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create diagnostics directory: %v", err)
	}
	return &ScreenShotDebugger{
		outputDir: dir,
	}
}

func (s *ScreenShotDebugger) Dir() string { return s.outputDir }

// SnapshotsDir holds the recorded views in the layout the replay loader reads.
func (s *ScreenShotDebugger) SnapshotsDir() string {
	return filepath.Join(s.outputDir, SnapshotDir)
}

// Captured lists the files written by Capture.
func (s *ScreenShotDebugger) Captured() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.captured...)
}

func (s *ScreenShotDebugger) Snapshot(frame browser.Frame, file string) {
	html, err := frame.Content()
	if err != nil {
		log.Printf("⚠️ Failed to read frame for snapshot %s: %v", file, err)
		return
	}
	dir := s.SnapshotsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create snapshot directory: %v", err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, file), []byte(html), 0644); err != nil {
		log.Printf("⚠️ Failed to write snapshot %s: %v", file, err)
	}
}

// Capture saves a full-page screenshot and, when a frame is bound, its HTML.
// Failures here are only logged.
func (s *ScreenShotDebugger) Capture(page browser.Page, frame browser.Frame, name string, cause error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	base := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s", name, timestamp))
	log.Printf("📸 %s: %v", name, cause)

	if page != nil {
		shot := base + ".png"
		if err := page.Screenshot(shot); err != nil {
			log.Printf("⚠️ Failed to capture screenshot: %v", err)
		} else {
			s.record(shot)
			log.Printf("   Screenshot saved: %s", shot)
		}
	}

	if frame != nil {
		html, err := frame.Content()
		if err != nil {
			log.Printf("⚠️ Failed to dump frame HTML: %v", err)
			return
		}
		dump := base + ".html"
		if err := os.WriteFile(dump, []byte(html), 0644); err != nil {
			log.Printf("⚠️ Failed to write frame HTML: %v", err)
			return
		}
		s.record(dump)
		log.Printf("   Frame HTML saved: %s", dump)
	}
}

func (s *ScreenShotDebugger) record(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captured = append(s.captured, path)
}
