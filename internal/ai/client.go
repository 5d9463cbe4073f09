package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go-fixture-summary/internal/models"
)

// Client is the interface for AI providers
type Client interface {
	// SummarizeMatch returns a short narrative of the match for a general audience.
	SummarizeMatch(ctx context.Context, summary *models.MatchSummary) (string, error)
}

const systemPrompt = "You are a helpful assistant."

// buildUserPrompt embeds the match document in the journalist instructions
func buildUserPrompt(summary *models.MatchSummary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal match summary: %w", err)
	}
	return `You are a sports journalist. You are given a JSON object representing a soccer game, with the following structure:

- date, time, venue, homeTeam, awayTeam, score, matchStatus, competition, matchId
- actionLog: array of events (minute, extraTime, type, player, icon)
- scoreBreakdown: array of periods with home/away scores
- statistics: player stats for both teams (number, name, goals, assists, yellowCards, redCards, minutesPlayed)

Please write a concise, engaging summary of the match for a general audience.

Format:
- 1-2 sentences on the overall result and key moments
- 1-2 sentences highlighting standout players or performances
- 1 sentence on any notable statistics or trends

Here is the game object:

` + string(data) + `

Summary:`, nil
}
