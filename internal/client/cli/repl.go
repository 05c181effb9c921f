package cli

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/router"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// command is one REPL verb. route is the page the command lives on; the
// guard runs before the command when it is set.
type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	route   string
	run     func(ctx context.Context, args []string) error
}

func (c command) matches(name string) bool {
	return c.name == name || slices.Contains(c.aliases, name)
}

// execIface is what the REPL needs from the App.
type execIface interface {
	isLoggedIn() bool
	commands() []command
	enter(ctx context.Context, route string) bool
	afterCommand(ctx context.Context, err error)
}

// runREPL reads commands until EOF, "exit" or a cancelled ctx.
//
// Each line is split into fields; the first selects the command. Commands
// bound to a route pass the route guard first, so a protected command
// issued without a session lands on the login route instead of running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("docmind (%s) > ", statusFn()))
		line, err := readLine(r)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(a.commands(), a.isLoggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		i := slices.IndexFunc(a.commands(), func(c command) bool { return c.matches(name) })
		if i < 0 {
			printlnFn("Unknown command:", name)
			continue
		}
		cmd := a.commands()[i]
		if !a.enter(ctx, cmd.route) {
			a.afterCommand(ctx, nil)
			continue
		}
		a.afterCommand(ctx, cmd.run(ctx, args))
	}
}

// helpText lists the commands usable in the current state. Protected
// commands are listed only with a session.
func helpText(cmds []command, loggedIn bool) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range cmds {
		if !loggedIn && c.route != "" && router.IsProtected(c.route) {
			continue
		}
		fmt.Fprintf(&b, "  %-28s %s\n", c.usage, c.help)
	}
	b.WriteString("  help                         show this list\n")
	b.WriteString("  exit | quit                  leave the program")
	return b.String()
}
