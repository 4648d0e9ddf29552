package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tinylink/tinylink-cli/internal/client/api"
	"github.com/tinylink/tinylink-cli/internal/client/models"
	"github.com/tinylink/tinylink-cli/internal/client/reconcile"
	"github.com/tinylink/tinylink-cli/internal/common"
	"github.com/tinylink/tinylink-cli/internal/logging"
)

// LinkService manages the user's shortened links.
//
// Mutating operations take the caller's previous collection and return
// the replacement: the authoritative refetch when it succeeds, a local
// patch of prev when the refetch fails. The caller always displays
// exactly what is returned, keeping a single source of truth.
type LinkService interface {
	List(ctx context.Context) (items []models.ShortLink, dropped int, err error)
	Shorten(ctx context.Context, prev []models.ShortLink, originalURL, customCode string) ([]models.ShortLink, error)
	Delete(ctx context.Context, prev []models.ShortLink, id string) ([]models.ShortLink, error)
}

type linkService struct {
	api Caller
	log logging.Logger
}

func NewLinkService(api Caller, log logging.Logger) LinkService {
	return &linkService{api: api, log: log.With("component", "links")}
}

func (s *linkService) List(ctx context.Context) ([]models.ShortLink, int, error) {
	res, err := s.api.Call(ctx, "/url/my-urls", api.Options{})
	if err != nil {
		return nil, 0, fmt.Errorf("fetching links failed: %w", err)
	}

	items, dropped := reconcile.Links(res.JSON)
	if dropped > 0 {
		s.log.Warn(ctx, "dropped malformed link records", "dropped", dropped)
	}
	return items, dropped, nil
}

func (s *linkService) Shorten(ctx context.Context, prev []models.ShortLink, originalURL, customCode string) ([]models.ShortLink, error) {
	if err := validateOriginalURL(originalURL); err != nil {
		return nil, err
	}

	body := map[string]string{"originalUrl": originalURL}
	if customCode != "" {
		body["customCode"] = customCode
	}

	res, err := s.api.Call(ctx, "/url/shorten", api.Options{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, fmt.Errorf("shortening failed: %w", err)
	}

	// Mutation done; now the awaited authoritative refresh.
	items, _, lerr := s.List(ctx)
	if lerr == nil {
		return items, nil
	}
	s.log.Warn(ctx, "refetch after shorten failed, patching locally", "error", lerr)

	link, ok := reconcile.Link(res.JSON)
	if !ok {
		return prev, nil
	}
	return append([]models.ShortLink{link}, prev...), nil
}

func (s *linkService) Delete(ctx context.Context, prev []models.ShortLink, id string) ([]models.ShortLink, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: link id is required", common.ErrValidation)
	}

	if _, err := s.api.Call(ctx, "/url/"+url.PathEscape(id), api.Options{Method: http.MethodDelete}); err != nil {
		return nil, fmt.Errorf("deleting link failed: %w", err)
	}

	items, _, lerr := s.List(ctx)
	if lerr == nil {
		return items, nil
	}
	s.log.Warn(ctx, "refetch after delete failed, patching locally", "error", lerr)

	patched := make([]models.ShortLink, 0, len(prev))
	for _, link := range prev {
		if link.ID != id {
			patched = append(patched, link)
		}
	}
	return patched, nil
}

// validateOriginalURL rejects malformed input before any network call.
// The URL must be absolute and carry a host, matching what the backend
// will accept.
func validateOriginalURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: URL is required", common.ErrValidation)
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not a valid URL", common.ErrValidation, raw)
	}
	return nil
}
