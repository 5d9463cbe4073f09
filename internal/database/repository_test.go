package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fixture-summary/internal/models"
)

func str(s string) *string { return &s }

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "48213", StorageKey(&models.MatchSummary{MatchID: str("48213")}, "run-1"))
	assert.Equal(t, "run:run-1", StorageKey(&models.MatchSummary{}, "run-1"))
	assert.Equal(t, "run:run-1", StorageKey(&models.MatchSummary{MatchID: str("")}, "run-1"))
}

// Needs a reachable PostgreSQL in TEST_DATABASE_URL.
func TestRepositoryRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	repo, err := ConnectDB(ctx, url)
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.EnsureSchema(ctx))

	events := []models.ActionEvent{{Minute: str("45"), Type: str("Goal")}}
	summary := &models.MatchSummary{MatchID: str("test-48213"), ActionLog: &events}
	require.NoError(t, repo.SaveSummary(ctx, "run-1", "2025.07-1", summary, "A tight win."))
	require.NoError(t, repo.SaveSummary(ctx, "run-2", "2025.07-1", summary, ""))

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-48213", latest.MatchID)
	assert.Equal(t, "run-2", latest.RunID)
	assert.Equal(t, summary, latest.Summary)
	require.NotNil(t, latest.Narrative)
	assert.Equal(t, "A tight win.", *latest.Narrative)
}
