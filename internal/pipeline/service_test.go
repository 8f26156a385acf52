package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ejezie/Enact-Pricing/pkg/types"
)

func TestSnapshots(t *testing.T) {
	t.Parallel()

	snaps := NewSnapshots()
	assert.Zero(t, snaps.Len())

	_, ok := snaps.Latest("widget")
	assert.False(t, ok)

	snaps.Put(&domain.RunResult{RunID: "r1", SearchTerm: "Widget"})

	// Lookup is case-insensitive.
	got, ok := snaps.Latest("  widget ")
	require.True(t, ok)
	assert.Equal(t, "r1", got.RunID)

	snaps.Put(&domain.RunResult{RunID: "r2", SearchTerm: "widget"})
	got, _ = snaps.Latest("widget")
	assert.Equal(t, "r2", got.RunID, "newer run replaces the snapshot")
	assert.Equal(t, 1, snaps.Len())
}

func TestService_AnalyzeCachesRuns(t *testing.T) {
	src := &fakeSource{page: listingsPage}
	service := NewService(markupRunner(src), nil)

	first, err := service.Analyze(context.Background(), "widget", false)
	require.NoError(t, err)

	second, err := service.Analyze(context.Background(), "widget", false)
	require.NoError(t, err)
	assert.Equal(t, first.RunID, second.RunID, "second call must hit the cache")
	assert.Len(t, src.urls, 1)

	third, err := service.Analyze(context.Background(), "widget", true)
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, third.RunID, "refresh forces a new run")
	assert.Len(t, src.urls, 2)
}

func TestService_RefreshAll(t *testing.T) {
	src := &fakeSource{page: listingsPage}
	service := NewService(markupRunner(src), nil)

	// Seed the cache with one term, then refresh with a watch list that
	// overlaps it.
	_, err := service.Analyze(context.Background(), "widget", false)
	require.NoError(t, err)

	service.RefreshAll(context.Background(), []string{"gadget", "WIDGET"})

	// gadget once, widget twice (seed + refresh).
	assert.Len(t, src.urls, 3)

	_, ok := service.Latest("gadget")
	assert.True(t, ok)
}
