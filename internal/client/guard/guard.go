// Package guard decides, per navigation, what the current session may see.
package guard

import "github.com/tinylink/tinylink-cli/internal/client/models"

// Outcome is the access decision for one protected navigation.
type Outcome int

const (
	// Loading: the initial session restore has not completed; render a
	// neutral loading state, never redirect yet.
	Loading Outcome = iota

	// RedirectLogin: no authenticated session; send to the login view.
	RedirectLogin

	// RedirectHome: authenticated but under-privileged for an admin
	// route; send to the default authenticated view, not to login.
	RedirectHome

	// PendingApproval: authenticated but not yet approved for an
	// approval-gated route; render a blocking notice, no redirect.
	PendingApproval

	// Grant: render the requested view.
	Grant
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case PendingApproval:
		return "pending-approval"
	case Grant:
		return "grant"
	}
	return "unknown"
}

// Requirement describes what a route demands of the session.
type Requirement struct {
	// Role, when non-empty, is the role the route requires.
	Role models.Role

	// RequireApproval gates the route on administrator approval of the
	// account.
	RequireApproval bool
}

// Decide classifies the session against the route requirement. The branch
// order is significant: loading is checked before identity presence so a
// slow restore cannot flash a redirect, and the role check runs before the
// approval check so an under-privileged admin-route visit is not masked by
// an approval notice.
func Decide(s models.Session, req Requirement) Outcome {
	if s.Loading {
		return Loading
	}
	if s.Identity == nil || s.Credential == "" {
		return RedirectLogin
	}
	if req.Role != "" && s.Identity.Role != req.Role {
		return RedirectHome
	}
	if req.RequireApproval && !s.Identity.Approved {
		return PendingApproval
	}
	return Grant
}
