package reviewstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"reviewharvest/lib/scrapers/reviews"
	"reviewharvest/lib/telemetry"

	_ "modernc.org/sqlite"
)

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:reviewstore")
	defer cleanup()

	sqlite, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer sqlite.Close()
	_, err = sqlite.Exec(Schema)
	require.NoError(t, err)
	store := NewStore(sqlite)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	rating := 4.5
	records := []reviews.ReviewRecord{
		{
			Title:           "Solid tool",
			Body:            "Does what it says on the tin.",
			Date:            "2024-03-05",
			Rating:          &rating,
			ReviewerName:    "Jordan P.",
			ReviewerContext: "Mid-Market (51-1000 emp.)",
			Pros:            "Fast onboarding",
			Cons:            "Pricey at scale",
			Source:          reviews.SourceG2,
		},
		{
			Title:           reviews.SentinelAnonymous,
			Body:            "No description available",
			Date:            "unknown",
			ReviewerName:    "anonymous",
			ReviewerContext: "unspecified",
			Source:          reviews.SourceG2,
		},
	}

	startedAt := time.Now()
	crawlId, err := store.Push(ctx, "Acme", reviews.SourceG2, startedAt, records)
	require.NoError(t, err)

	got, err := store.Pull(ctx, crawlId)
	require.NoError(t, err)
	require.Equal(t, records, got)

	crawls, err := store.Crawls(ctx)
	require.NoError(t, err)
	require.Len(t, crawls, 1)
	require.Equal(t, "Acme", crawls[0].Company)
	require.Equal(t, reviews.SourceG2, crawls[0].Source)
	require.Equal(t, 2, crawls[0].Collected)

	empty, err := store.Pull(ctx, crawlId+1)
	require.NoError(t, err)
	require.Len(t, empty, 0)
}
