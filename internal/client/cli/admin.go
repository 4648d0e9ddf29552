package cli

import (
	"context"
	"fmt"

	"github.com/tinylink/tinylink-cli/internal/client/models"
)

// Pending fetches and prints the registrations awaiting action.
func (a *App) Pending(ctx context.Context) error {
	if !a.authorize(adminRoute) {
		return nil
	}

	items, dropped, err := a.admin.PendingUsers(ctx)
	if err != nil {
		return err
	}
	a.pendingUsers = items

	if len(items) == 0 {
		printlnFn("No pending registrations.")
		return nil
	}

	var pending, approved, rejected int
	for _, user := range items {
		switch user.Status {
		case models.StatusPending:
			pending++
		case models.StatusApproved:
			approved++
		case models.StatusRejected:
			rejected++
		}
		printlnFn(fmt.Sprintf("%-12s %-25s %-15s %s", user.ID, user.Email, user.Username, user.Status))
	}
	printlnFn(fmt.Sprintf("%d pending, %d approved, %d rejected", pending, approved, rejected))
	if dropped > 0 {
		printlnFn(fmt.Sprintf("(%d malformed records skipped)", dropped))
	}
	return nil
}

// Approve accepts one pending registration.
func (a *App) Approve(ctx context.Context, args []string) error {
	return a.resolveRegistration(ctx, args, true)
}

// Reject declines one pending registration.
func (a *App) Reject(ctx context.Context, args []string) error {
	return a.resolveRegistration(ctx, args, false)
}

func (a *App) resolveRegistration(ctx context.Context, args []string, approved bool) error {
	if !a.authorize(adminRoute) {
		return nil
	}
	verb := "approve"
	if !approved {
		verb = "reject"
	}
	if len(args) == 0 {
		printlnFn("Usage: " + verb + " <userId>")
		return nil
	}

	items, err := a.admin.Approve(ctx, a.pendingUsers, args[0], approved)
	if err != nil {
		return err
	}
	a.pendingUsers = items

	printlnFn(fmt.Sprintf("User %s %sd.", args[0], verb))
	return nil
}
