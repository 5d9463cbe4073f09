// Package reporter writes the run artifacts to the output directory.
package reporter

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-fixture-summary/internal/models"
)

const (
	SummaryFile   = "game-summary-full.json"
	NarrativeFile = "game-summary-llm.txt"
)

type FileReporter struct {
	dir string
}

func NewFileReporter(dir string) *FileReporter {
	return &FileReporter{dir: dir}
}

func (r *FileReporter) Dir() string { return r.dir }

// WriteSummary writes the summary as indented JSON and returns the file path.
func (r *FileReporter) WriteSummary(summary *models.MatchSummary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	path, err := r.write(SummaryFile, data)
	if err != nil {
		return "", err
	}
	log.Printf("💾 Extracted full game summary to %s", path)
	return path, nil
}

// WriteNarrative writes the LLM text exactly as returned.
func (r *FileReporter) WriteNarrative(text string) (string, error) {
	path, err := r.write(NarrativeFile, []byte(text))
	if err != nil {
		return "", err
	}
	log.Printf("📝 Saved game summary from LLM to %s", path)
	return path, nil
}

func (r *FileReporter) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// ReadSummary loads a summary previously written by WriteSummary.
func ReadSummary(path string) (*models.MatchSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	var summary models.MatchSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &summary, nil
}
