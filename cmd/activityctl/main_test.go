package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/organize-activities-api/internal/models"
	"github.com/noah-isme/organize-activities-api/pkg/future"
)

type fakeQueries struct {
	list     future.Future[[]models.CampaignActivity]
	overview future.Future[models.ActivityOverview]
	calls    []string
}

func (f *fakeQueries) AllActivities(int, int) future.Future[[]models.CampaignActivity] {
	f.calls = append(f.calls, "all")
	return f.list
}

func (f *fakeQueries) CurrentActivities(int) future.Future[[]models.CampaignActivity] {
	f.calls = append(f.calls, "current")
	return f.list
}

func (f *fakeQueries) CampaignActivities(int, int) future.Future[[]models.CampaignActivity] {
	f.calls = append(f.calls, "campaign")
	return f.list
}

func (f *fakeQueries) ArchivedActivities(int, int) future.Future[[]models.CampaignActivity] {
	f.calls = append(f.calls, "archived")
	return f.list
}

func (f *fakeQueries) ArchivedStandaloneActivities(int) future.Future[[]models.CampaignActivity] {
	f.calls = append(f.calls, "standalone")
	return f.list
}

func (f *fakeQueries) ActivityOverview(int, int) future.Future[models.ActivityOverview] {
	f.calls = append(f.calls, "overview")
	return f.overview
}

// useBackend swaps openBackend for the duration of the test.
func useBackend(t *testing.T, q activityQueries, warmErr error) *[]int {
	t.Helper()
	warmed := &[]int{}
	original := openBackend
	openBackend = func(context.Context, *options, io.Writer) (*backend, error) {
		return &backend{
			queries: q,
			warm: func(_ context.Context, orgID int) error {
				*warmed = append(*warmed, orgID)
				return warmErr
			},
		}, nil
	}
	t.Cleanup(func() { openBackend = original })
	return warmed
}

func sampleActivities() []models.CampaignActivity {
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	return []models.CampaignActivity{
		models.NewCampaignActivity(models.Task{ID: 4, Title: "Share the petition"}, nil, nil),
		models.NewCampaignActivity(models.Survey{ID: 3, Title: "Volunteer survey", Campaign: &models.CampaignRef{ID: 9, Title: "Spring"}}, &from, nil),
	}
}

func TestRunListPrintsTable(t *testing.T) {
	q := &fakeQueries{list: future.Resolved(sampleActivities())}
	warmed := useBackend(t, q, nil)
	var stdout bytes.Buffer

	err := run(context.Background(), []string{"list", "--org", "7"}, &stdout, nil)

	require.NoError(t, err)
	assert.Equal(t, []int{7}, *warmed)
	assert.Equal(t, []string{"current"}, q.calls)
	out := stdout.String()
	assert.Contains(t, out, "Share the petition")
	assert.Contains(t, out, "Volunteer survey")
	assert.Contains(t, out, "Spring")
	assert.Contains(t, out, "2024-05-01")
}

func TestRunListScopes(t *testing.T) {
	tests := []struct {
		args []string
		call string
	}{
		{args: []string{"list", "--org", "7", "--campaign", "9"}, call: "campaign"},
		{args: []string{"list", "--org", "7", "--scope", "archived"}, call: "archived"},
		{args: []string{"list", "--org", "7", "--scope", "standalone"}, call: "standalone"},
		{args: []string{"list", "--org", "7", "--scope", "all", "--campaign", "9"}, call: "all"},
	}
	for _, tc := range tests {
		q := &fakeQueries{list: future.Resolved([]models.CampaignActivity{})}
		useBackend(t, q, nil)
		require.NoError(t, run(context.Background(), tc.args, io.Discard, io.Discard), tc.args)
		assert.Equal(t, []string{tc.call}, q.calls, tc.args)
	}
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	q := &fakeQueries{}
	warmed := useBackend(t, q, nil)

	for _, args := range [][]string{
		{"list"},
		{"list", "--org", "0"},
		{"overview", "--org", "7", "--campaign", "-2"},
		{"list", "--org", "7", "--scope", "upcoming"},
		{"list", "--org", "7", "--scope", "standalone", "--campaign", "3"},
	} {
		assert.Error(t, run(context.Background(), args, io.Discard, io.Discard), args)
	}
	assert.Empty(t, q.calls)
	assert.Len(t, *warmed, 2)
}

func TestRunOverviewSections(t *testing.T) {
	activities := sampleActivities()
	q := &fakeQueries{overview: future.Resolved(models.ActivityOverview{
		Today:        activities[:1],
		Tomorrow:     []models.CampaignActivity{},
		AlsoThisWeek: activities[1:],
	})}
	useBackend(t, q, nil)
	var stdout bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"overview", "--org", "7"}, &stdout, nil))

	out := stdout.String()
	assert.Contains(t, out, "Today (1)")
	assert.Contains(t, out, "Tomorrow (0)")
	assert.Contains(t, out, "Also this week (1)")
	assert.Contains(t, out, "Volunteer survey")
}

func TestRunSurfacesSourceFailures(t *testing.T) {
	upstream := errors.New("surveys: connection refused")

	useBackend(t, &fakeQueries{}, upstream)
	err := run(context.Background(), []string{"list", "--org", "7"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, upstream)

	useBackend(t, &fakeQueries{list: future.Errored[[]models.CampaignActivity](upstream)}, nil)
	err = run(context.Background(), []string{"list", "--org", "7"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, upstream)

	useBackend(t, &fakeQueries{list: future.Loading[[]models.CampaignActivity]()}, nil)
	err = run(context.Background(), []string{"list", "--org", "7"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, errStillLoading)
}
