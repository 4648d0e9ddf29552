package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylink/tinylink-cli/internal/client/api"
	"github.com/tinylink/tinylink-cli/internal/common"
)

func TestFetch_BuildsPathAndProjectsTotals(t *testing.T) {
	f := &fakeCaller{respond: func(method, path string) (*api.Result, error) {
		return jsonResult(`{"totalClicks":42,"uniqueVisitors":7,"clicksOverTime":[1,2,3]}`), nil
	}}
	s := NewAnalyticsService(f, testLogger())

	snap, err := s.Fetch(context.Background(), "abc", "30d")
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /analytics/abc?timeRange=30d"}, f.calls)

	assert.Equal(t, "abc", snap.ShortCode)
	assert.Equal(t, "30d", snap.TimeRange)
	assert.Equal(t, int64(42), snap.TotalClicks)
	assert.Equal(t, int64(7), snap.UniqueVisitors)
	assert.JSONEq(t, `{"totalClicks":42,"uniqueVisitors":7,"clicksOverTime":[1,2,3]}`, string(snap.Data))
}

func TestFetch_SnakeCaseTotals(t *testing.T) {
	f := &fakeCaller{respond: func(method, path string) (*api.Result, error) {
		return jsonResult(`{"total_clicks":10,"unique_visitors":3}`), nil
	}}
	s := NewAnalyticsService(f, testLogger())

	snap, err := s.Fetch(context.Background(), "abc", "7d")
	require.NoError(t, err)
	assert.Equal(t, int64(10), snap.TotalClicks)
	assert.Equal(t, int64(3), snap.UniqueVisitors)
}

func TestFetch_ValidatesLocally(t *testing.T) {
	f := &fakeCaller{respond: func(method, path string) (*api.Result, error) {
		t.Fatal("no network call expected")
		return nil, nil
	}}
	s := NewAnalyticsService(f, testLogger())

	_, err := s.Fetch(context.Background(), "", "7d")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Fetch(context.Background(), "abc", "14d")
	require.ErrorIs(t, err, common.ErrValidation)

	assert.Empty(t, f.calls)
}
