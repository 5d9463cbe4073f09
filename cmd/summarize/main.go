package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"go-fixture-summary/internal/ai"
	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/reporter"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config")
	input := flag.String("in", "", "summary JSON to narrate (defaults to the output dir's game-summary-full.json)")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if !cfg.LLM.Enabled() {
		log.Println("OPENAI_API_KEY environment variable not set. Please set it to summarize the match.")
		return
	}

	path := *input
	if path == "" {
		path = filepath.Join(cfg.OutputDir, reporter.SummaryFile)
	}
	summary, err := reporter.ReadSummary(path)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	client := ai.NewOpenAIClient(cfg.LLM.APIKey, ai.Options{
		Endpoint:    cfg.LLM.Endpoint,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temp(),
	})

	fmt.Printf("Sending %s to %s...\n", path, cfg.LLM.Model)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text, err := client.SummarizeMatch(ctx, summary)
	if err != nil {
		log.Fatalf("SummarizeMatch failed: %v", err)
	}

	if _, err := reporter.NewFileReporter(cfg.OutputDir).WriteNarrative(text); err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Println("\nGame summary from LLM:")
	fmt.Println(text)
}
