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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Albums(ctx context.Context) error
	CreateAlbum(ctx context.Context) error
	OpenAlbum(ctx context.Context, albumID string) error
	Invite(ctx context.Context) error
	Members(ctx context.Context) error
	Share(ctx context.Context) error
	Upload(ctx context.Context, paths []string) error
	Media(ctx context.Context) error
	DeleteMedia(ctx context.Context, mediaID string) error
	SaveAll(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Vacay CLI.
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
//	Not logged in:
//	  - help             — show available commands
//	  - register         — create an account
//	  - login            — authenticate
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - albums           — list your albums
//	  - create           — create a new album
//	  - open <id>        — make an album current
//	  - invite           — add a member to the current album
//	  - members          — list members of the current album
//	  - share            — print the current album's share link
//	  - upload <files>   — upload files to the current album
//	  - media            — list media of the current album
//	  - delete <id>      — delete a media item
//	  - saveall          — save every album item to the export directory
//	  - logout           — log out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vacay %s> ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn("Available commands: albums, create, open, invite, members, share, upload, media, delete, saveall, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "albums":
			_ = a.Albums(ctx)

		case "create":
			_ = a.CreateAlbum(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <album-id>")
				continue
			}
			_ = a.OpenAlbum(ctx, args[0])

		case "invite":
			_ = a.Invite(ctx)

		case "members":
			_ = a.Members(ctx)

		case "share":
			_ = a.Share(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <file> [file...]")
				continue
			}
			_ = a.Upload(ctx, args)

		case "media":
			_ = a.Media(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <media-id>")
				continue
			}
			_ = a.DeleteMedia(ctx, args[0])

		case "saveall":
			_ = a.SaveAll(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
