package cli

import (
	"context"
	"fmt"
	"os"
)

// Profile prints the account view and its usage stats.
func (a *App) Profile(ctx context.Context) error {
	if !a.authorize(approvedRoute) {
		return nil
	}

	p, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s>", p.Username, p.Email))
	printlnFn(fmt.Sprintf("  links created: %d", p.URLsCreated))
	printlnFn(fmt.Sprintf("  total clicks:  %d", p.TotalClicks))
	if p.MemberSince != "" {
		printlnFn(fmt.Sprintf("  member since:  %s", p.MemberSince))
	}
	return nil
}

// UpdateProfile prompts for a new username and email and saves them,
// then refreshes the view.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.authorize(approvedRoute) {
		return nil
	}

	username, err := getSimpleText(a.reader, "New username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.profile.Update(ctx, username, email); err != nil {
		return err
	}
	printlnFn("Profile updated.")
	return nil
}

// ChangePassword prompts for the current and new passwords. All rules
// are checked locally before anything is sent.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.authorize(approvedRoute) {
		return nil
	}

	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	next, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.profile.ChangePassword(ctx, current, next, confirm); err != nil {
		return err
	}
	printlnFn("Password changed.")
	return nil
}
