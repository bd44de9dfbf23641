package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	Unlock(ctx context.Context) error
	SignOut(ctx context.Context) error
	List(ctx context.Context) error
	Day(ctx context.Context) error
	SelectDate(ctx context.Context, date string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Profile(ctx context.Context) error
	Biometrics(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Daykeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - signin         — authenticate with email and password
//	  - unlock         — restore the last session via biometrics
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - list           — list all events
//	  - day            — list events on the selected date
//	  - select <date>  — change the selected date (YYYY-MM-DD)
//	  - add            — create an event
//	  - edit           — edit an event (interactive ID prompt)
//	  - delete         — delete an event (interactive ID prompt)
//	  - profile        — view and edit the account profile
//	  - biometrics     — toggle biometric sign-in
//	  - signout        — end the session
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dk> %s > ", statusFn()))
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

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: (l)ist, day, select <date>, add, edit, delete, profile, biometrics, signout, exit")
			} else {
				printlnFn("Available commands: signup, signin, unlock, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "signin":
			_ = a.SignIn(ctx)

		case "unlock":
			_ = a.Unlock(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "day":
			_ = a.Day(ctx)

		case "select":
			if len(args) == 0 {
				printlnFn("Usage: select <YYYY-MM-DD>")
				continue
			}
			_ = a.SelectDate(ctx, args[0])

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "biometrics":
			_ = a.Biometrics(ctx)

		case "signout":
			_ = a.SignOut(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
