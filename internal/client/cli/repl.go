package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App satisfies it;
// tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	hasWorkspace() bool
	drainNotices() []string

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Passwd(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	Influencers(ctx context.Context) error
	CreateInfluencer(ctx context.Context) error
	Open(ctx context.Context, id string) error
	DeleteInfluencer(ctx context.Context, id string) error
	CloseWorkspace(ctx context.Context) error

	ShowPersona(ctx context.Context) error
	EditPersona(ctx context.Context) error
	InitIdentity(ctx context.Context) error
	List(ctx context.Context, category string) error
	Add(ctx context.Context, category string) error
	Delete(ctx context.Context, category, id string) error
	Push(ctx context.Context, id, date string) error
	SetStatus(ctx context.Context, id, status, note string) error
	Reel(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, exit"
	helpAccount   = "Available commands: (ls) influencers, create, open <id>, remove <id>, passwd, deleteaccount, logout, exit"
	helpWorkspace = "Available commands: persona, editpersona, identity, list <category>, add <category>, " +
		"delete <category> <id>, push <card-id> [date], status <post-id> <STATUS> [note], reel, close, logout, exit\n" +
		"Categories: posts, plans, brands, strategies"
)

// runREPL reads commands from reader until EOF, "exit" or "quit", and
// dispatches them to a. The commands on offer depend on whether a user is
// logged in and whether an influencer workspace is open. Command errors are
// printed and the loop continues; pending notices are shown after every
// command. Prompts issued by commands share reader, so input can be piped.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pd %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		var err error
		switch {
		case !a.isLoggedIn():
			err = dispatchLoggedOut(ctx, a, cmd)
		case !a.hasWorkspace():
			err = dispatchAccount(ctx, a, cmd, args)
		default:
			err = dispatchWorkspace(ctx, a, cmd, args)
		}
		if err != nil {
			printlnFn("error:", err)
		}

		for _, n := range a.drainNotices() {
			printlnFn("!", n)
		}
	}
}

func dispatchLoggedOut(ctx context.Context, a execIface, cmd string) error {
	switch cmd {
	case "help":
		printlnFn(helpLoggedOut)
	case "signup", "register":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
	return nil
}

func dispatchAccount(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpAccount)
	case "ls", "influencers":
		return a.Influencers(ctx)
	case "create":
		return a.CreateInfluencer(ctx)
	case "open":
		if len(args) == 0 {
			printlnFn("Usage: open <id>")
			return nil
		}
		return a.Open(ctx, args[0])
	case "remove":
		if len(args) == 0 {
			printlnFn("Usage: remove <id>")
			return nil
		}
		return a.DeleteInfluencer(ctx, args[0])
	default:
		return dispatchSession(ctx, a, cmd)
	}
	return nil
}

func dispatchWorkspace(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpWorkspace)
	case "persona":
		return a.ShowPersona(ctx)
	case "editpersona":
		return a.EditPersona(ctx)
	case "identity":
		return a.InitIdentity(ctx)
	case "list", "l":
		if len(args) == 0 {
			printlnFn("Usage: list <category>")
			return nil
		}
		return a.List(ctx, args[0])
	case "add":
		if len(args) == 0 {
			printlnFn("Usage: add <category>")
			return nil
		}
		return a.Add(ctx, args[0])
	case "delete":
		if len(args) < 2 {
			printlnFn("Usage: delete <category> <id>")
			return nil
		}
		return a.Delete(ctx, args[0], args[1])
	case "push":
		if len(args) == 0 {
			printlnFn("Usage: push <card-id> [YYYY-MM-DD]")
			return nil
		}
		date := ""
		if len(args) > 1 {
			date = args[1]
		}
		return a.Push(ctx, args[0], date)
	case "status":
		if len(args) < 2 {
			printlnFn("Usage: status <post-id> <STATUS> [note]")
			return nil
		}
		return a.SetStatus(ctx, args[0], args[1], strings.Join(args[2:], " "))
	case "reel":
		return a.Reel(ctx)
	case "close", "switch":
		return a.CloseWorkspace(ctx)
	default:
		return dispatchSession(ctx, a, cmd)
	}
	return nil
}

// dispatchSession handles the account commands valid in every logged-in
// state.
func dispatchSession(ctx context.Context, a execIface, cmd string) error {
	switch cmd {
	case "passwd":
		return a.Passwd(ctx)
	case "deleteaccount":
		return a.DeleteAccount(ctx)
	case "logout":
		return a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
	return nil
}
