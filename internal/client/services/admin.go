package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tinylink/tinylink-cli/internal/client/api"
	"github.com/tinylink/tinylink-cli/internal/client/models"
	"github.com/tinylink/tinylink-cli/internal/client/reconcile"
	"github.com/tinylink/tinylink-cli/internal/common"
	"github.com/tinylink/tinylink-cli/internal/logging"
)

// AdminService manages pending registrations. Only administrators can
// reach these endpoints; the access guard keeps everyone else away
// before a call is ever issued.
type AdminService interface {
	PendingUsers(ctx context.Context) (items []models.PendingUser, dropped int, err error)
	Approve(ctx context.Context, prev []models.PendingUser, userID string, approved bool) ([]models.PendingUser, error)
}

type adminService struct {
	api Caller
	log logging.Logger
}

func NewAdminService(api Caller, log logging.Logger) AdminService {
	return &adminService{api: api, log: log.With("component", "admin")}
}

func (s *adminService) PendingUsers(ctx context.Context) ([]models.PendingUser, int, error) {
	res, err := s.api.Call(ctx, "/admin/pending_users", api.Options{})
	if err != nil {
		return nil, 0, fmt.Errorf("fetching pending users failed: %w", err)
	}

	items, dropped := reconcile.PendingUsers(res.JSON)
	if dropped > 0 {
		s.log.Warn(ctx, "dropped malformed pending-user records", "dropped", dropped)
	}
	return items, dropped, nil
}

type approveRequest struct {
	UserID   string `json:"userId"`
	Approved bool   `json:"approved"`
}

// Approve resolves one pending registration: approved=true approves it,
// approved=false rejects it. The replacement collection comes from an
// authoritative refetch when possible; the local fallback patch only
// ever transitions a user whose current status is pending, since
// approved and rejected are terminal.
func (s *adminService) Approve(ctx context.Context, prev []models.PendingUser, userID string, approved bool) ([]models.PendingUser, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}

	_, err := s.api.Call(ctx, "/admin/approve_user", api.Options{
		Method: http.MethodPost,
		Body:   approveRequest{UserID: userID, Approved: approved},
	})
	if err != nil {
		return nil, fmt.Errorf("resolving registration failed: %w", err)
	}

	items, _, lerr := s.PendingUsers(ctx)
	if lerr == nil {
		return items, nil
	}
	s.log.Warn(ctx, "refetch after approval failed, patching locally", "error", lerr)

	next := models.StatusApproved
	if !approved {
		next = models.StatusRejected
	}

	patched := make([]models.PendingUser, len(prev))
	copy(patched, prev)
	for i := range patched {
		if patched[i].ID == userID && patched[i].Status == models.StatusPending {
			patched[i].Status = next
		}
	}
	return patched, nil
}
