package cli

import (
	"context"
	"fmt"
	"os"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for email, username and password and registers a new
// account. Registration never logs the caller in: the account stays
// pending until an administrator approves it, and the server's message
// says so.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.session.Signup(ctx, email, username, password)
	if err != nil {
		return err
	}

	printlnFn(msg)
	return nil
}

// Login prompts for credentials and authenticates against the backend.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}

	snap := a.session.Snapshot()
	printlnFn(fmt.Sprintf("Logged in as %s.", snap.Identity.Username))
	if !snap.Identity.Approved {
		printlnFn("Your account is pending admin approval.")
	}
	return nil
}

// Logout clears the session and its persisted copy, and drops the cached
// collections so nothing of the previous user leaks into the next one.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.linkItems = nil
	a.pendingUsers = nil
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current identity and, when the credential carries an
// expiry, when it expires.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.Identity == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s> role=%s approved=%t",
		snap.Identity.Username, snap.Identity.Email, snap.Identity.Role, snap.Identity.Approved))

	if exp, ok := a.session.CredentialExpiry(); ok {
		if exp.Before(time.Now()) {
			printlnFn(fmt.Sprintf("Session expired at %s, please log in again.", exp.Format(time.RFC822)))
		} else {
			printlnFn(fmt.Sprintf("Session valid until %s.", exp.Format(time.RFC822)))
		}
	}
	return nil
}
