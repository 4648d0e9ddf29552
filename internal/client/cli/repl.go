package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tinylink/tinylink-cli/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Shorten(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Pending(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
}

// runREPL starts the read-eval-print loop. It reads a line, parses the
// first token as the command, and dispatches to methods on 'a'. Unknown
// commands are reported back. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Errors returned by command handlers are printed here, in one place, so
// a failed action never kills the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tl %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			printHelp(a)

		case "signup":
			err = a.Signup(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)

		case "l", "list":
			err = a.List(ctx)
		case "shorten":
			err = a.Shorten(ctx)
		case "delete":
			err = a.Delete(ctx, args)
		case "stats":
			err = a.Stats(ctx, args)

		case "profile":
			err = a.Profile(ctx)
		case "update":
			err = a.UpdateProfile(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)

		case "pending":
			err = a.Pending(ctx)
		case "approve":
			err = a.Approve(ctx, args)
		case "reject":
			err = a.Reject(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
			if errors.Is(err, common.ErrUnauthorized) {
				printlnFn("Your session may have expired, try 'login' again.")
			}
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: signup, login, whoami, exit")
		return
	}
	if a.isAdmin() {
		printlnFn("Available commands: (l)ist, shorten, delete, stats, profile, update, passwd, pending, approve, reject, whoami, logout, exit")
		return
	}
	printlnFn("Available commands: (l)ist, shorten, delete, stats, profile, update, passwd, whoami, logout, exit")
}
