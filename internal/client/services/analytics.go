package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tinylink/tinylink-cli/internal/client/api"
	"github.com/tinylink/tinylink-cli/internal/client/models"
	"github.com/tinylink/tinylink-cli/internal/common"
	"github.com/tinylink/tinylink-cli/internal/logging"
)

// TimeRanges are the aggregation windows the backend supports.
var TimeRanges = []string{"7d", "30d", "90d"}

// AnalyticsService fetches per-link click analytics. The snapshot is an
// opaque backend aggregate; the client only projects the two totals it
// displays itself and passes the rest through.
type AnalyticsService interface {
	Fetch(ctx context.Context, shortCode, timeRange string) (*models.AnalyticsSnapshot, error)
}

type analyticsService struct {
	api Caller
	log logging.Logger
}

func NewAnalyticsService(api Caller, log logging.Logger) AnalyticsService {
	return &analyticsService{api: api, log: log.With("component", "analytics")}
}

func (s *analyticsService) Fetch(ctx context.Context, shortCode, timeRange string) (*models.AnalyticsSnapshot, error) {
	if shortCode == "" {
		return nil, fmt.Errorf("%w: short code is required", common.ErrValidation)
	}
	if !validTimeRange(timeRange) {
		return nil, fmt.Errorf("%w: time range must be one of %v", common.ErrValidation, TimeRanges)
	}

	path := "/analytics/" + url.PathEscape(shortCode) + "?timeRange=" + url.QueryEscape(timeRange)
	res, err := s.api.Call(ctx, path, api.Options{})
	if err != nil {
		return nil, fmt.Errorf("fetching analytics failed: %w", err)
	}

	snap := &models.AnalyticsSnapshot{
		ShortCode: shortCode,
		TimeRange: timeRange,
		Data:      res.JSON,
	}
	snap.TotalClicks, snap.UniqueVisitors = projectTotals(res.JSON)
	return snap, nil
}

func validTimeRange(tr string) bool {
	for _, allowed := range TimeRanges {
		if tr == allowed {
			return true
		}
	}
	return false
}

// projectTotals pulls the two headline numbers out of the aggregate,
// tolerating both field-naming conventions. Missing fields read as zero.
func projectTotals(raw json.RawMessage) (totalClicks, uniqueVisitors int64) {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil {
		return 0, 0
	}
	pick := func(candidates ...string) int64 {
		for _, name := range candidates {
			if v, ok := entry[name]; ok {
				var n int64
				if err := json.Unmarshal(v, &n); err == nil {
					return n
				}
			}
		}
		return 0
	}
	return pick("totalClicks", "total_clicks"), pick("uniqueVisitors", "unique_visitors")
}
