package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinylink/tinylink-cli/internal/client/models"
)

func identity(role models.Role, approved bool) *models.Identity {
	return &models.Identity{ID: "1", Email: "a@b.com", Username: "a", Role: role, Approved: approved}
}

func TestDecide(t *testing.T) {
	adminRoute := Requirement{Role: models.RoleAdmin}
	approvedRoute := Requirement{RequireApproval: true}

	tests := []struct {
		name    string
		session models.Session
		req     Requirement
		want    Outcome
	}{
		{
			name:    "loading always renders loading, even for admin routes",
			session: models.Session{Loading: true},
			req:     adminRoute,
			want:    Loading,
		},
		{
			name:    "loading wins even with a full identity present",
			session: models.Session{Loading: true, Identity: identity(models.RoleAdmin, true), Credential: "t"},
			req:     adminRoute,
			want:    Loading,
		},
		{
			name:    "no identity redirects to login",
			session: models.Session{},
			req:     approvedRoute,
			want:    RedirectLogin,
		},
		{
			name:    "identity without credential redirects to login",
			session: models.Session{Identity: identity(models.RoleUser, true)},
			req:     approvedRoute,
			want:    RedirectLogin,
		},
		{
			name:    "credential without identity redirects to login",
			session: models.Session{Credential: "t"},
			req:     approvedRoute,
			want:    RedirectLogin,
		},
		{
			name:    "non-admin on admin route goes home, not to login",
			session: models.Session{Identity: identity(models.RoleUser, true), Credential: "t"},
			req:     adminRoute,
			want:    RedirectHome,
		},
		{
			name:    "role mismatch is not masked by missing approval",
			session: models.Session{Identity: identity(models.RoleUser, false), Credential: "t"},
			req:     Requirement{Role: models.RoleAdmin, RequireApproval: true},
			want:    RedirectHome,
		},
		{
			name:    "unapproved user on gated route sees pending notice, no redirect",
			session: models.Session{Identity: identity(models.RoleUser, false), Credential: "t"},
			req:     approvedRoute,
			want:    PendingApproval,
		},
		{
			name:    "approved user is granted",
			session: models.Session{Identity: identity(models.RoleUser, true), Credential: "t"},
			req:     approvedRoute,
			want:    Grant,
		},
		{
			name:    "admin passes admin route",
			session: models.Session{Identity: identity(models.RoleAdmin, true), Credential: "t"},
			req:     adminRoute,
			want:    Grant,
		},
		{
			name:    "unapproved admin passes a pure admin route",
			session: models.Session{Identity: identity(models.RoleAdmin, false), Credential: "t"},
			req:     adminRoute,
			want:    Grant,
		},
		{
			name:    "no requirement grants any authenticated session",
			session: models.Session{Identity: identity(models.RoleUser, false), Credential: "t"},
			req:     Requirement{},
			want:    Grant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.session, tt.req))
		})
	}
}
