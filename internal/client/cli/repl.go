package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Podcasts(ctx context.Context) error
	Import(ctx context.Context, path string) error
	Stored(ctx context.Context) error
	Forget(ctx context.Context, key string) error
	Reset(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Logged out:
//	  - help            show available commands
//	  - login           start a session
//	  - status          show the active user
//	  - podcasts        list cached podcasts
//	  - stored          list keys kept in local storage
//	  - forget <key>    delete one stored key
//	  - reset           log out and wipe local storage
//	  - exit | quit     leave the program
//
//	Logged in, additionally:
//	  - import <file>   load a JSON podcast list into the cache
//	  - logout          end the session and drop the podcast cache
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "sedaily %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: status, podcasts, import <file>, stored, forget <key>, reset, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, status, podcasts, stored, forget <key>, reset, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "status", "whoami":
			cmdErr = a.Status(ctx)

		case "podcasts", "p":
			cmdErr = a.Podcasts(ctx)

		case "import":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: import <file>")
				continue
			}
			cmdErr = a.Import(ctx, args[0])

		case "stored":
			cmdErr = a.Stored(ctx)

		case "forget":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: forget <key>")
				continue
			}
			cmdErr = a.Forget(ctx, args[0])

		case "reset":
			cmdErr = a.Reset(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}
