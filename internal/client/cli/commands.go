package cli

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/docmind/internal/client/router"
)

func (a *App) commandTable() []command {
	return []command{
		{name: "register", usage: "register", help: "create an account", route: router.PathRegister, run: a.Register},
		{name: "login", usage: "login", help: "sign in", route: router.PathLogin, run: a.Login},
		{name: "logout", usage: "logout", help: "sign out", run: a.Logout},
		{name: "whoami", usage: "whoami", help: "show the current session", run: a.WhoAmI},

		{name: "dashboard", aliases: []string{"stats"}, usage: "dashboard", help: "usage analytics", route: router.PathAnalytics, run: a.Dashboard},

		{name: "docs", aliases: []string{"ls"}, usage: "docs", help: "list documents", route: router.PathDocuments, run: a.ListDocuments},
		{name: "upload", usage: "upload <path> [title]", help: "upload a document", route: router.PathDocuments, run: a.Upload},
		{name: "view", usage: "view <id>", help: "show a document", route: router.PathDocuments, run: a.ViewDocument},
		{name: "rm", usage: "rm <id>", help: "delete a document", route: router.PathDocuments, run: a.DeleteDocument},
		{name: "search", usage: "search [-mode m] [-k n] <query>", help: "search documents", route: router.PathDocuments, run: a.Search},
		{name: "cite", usage: "cite <id> [format]", help: "extract citations", route: router.PathDocuments, run: a.Citations},
		{name: "bib", usage: "bib <id> [format] [sort]", help: "format a bibliography", route: router.PathDocuments, run: a.Bibliography},
		{name: "compare", usage: "compare <id> <id>...", help: "compare documents", route: router.PathDocuments, run: a.Compare},

		{name: "chat", usage: "chat [-docs a,b] [-model m] <message>", help: "ask the assistant", route: router.PathChat, run: a.Chat},
		{name: "history", usage: "history", help: "show the conversation", route: router.PathChat, run: a.History},
		{name: "chat-rm", usage: "chat-rm <id>", help: "delete a message", route: router.PathChat, run: a.DeleteMessage},
		{name: "summarize", usage: "summarize [-type t] <id>...", help: "summarize documents", route: router.PathChat, run: a.Summarize},
		{name: "pick-model", usage: "pick-model <query>", help: "let the server pick a model", route: router.PathChat, run: a.SelectModel},

		{name: "notes", usage: "notes [-doc id] [-tag t] [query]", help: "list notes", route: router.PathNotes, run: a.ListNotes},
		{name: "note-add", usage: "note-add [-doc id]", help: "write a note", route: router.PathNotes, run: a.AddNote},
		{name: "note-edit", usage: "note-edit <id>", help: "edit a note", route: router.PathNotes, run: a.EditNote},
		{name: "pin", usage: "pin <id>", help: "pin or unpin a note", route: router.PathNotes, run: a.PinNote},
		{name: "note-rm", usage: "note-rm <id>", help: "delete a note", route: router.PathNotes, run: a.DeleteNote},
		{name: "tags", usage: "tags", help: "list note tags", route: router.PathNotes, run: a.Tags},

		{name: "plan", usage: "plan", help: "show the subscription", route: router.PathSettings, run: a.Plan},
		{name: "upgrade", usage: "upgrade <plan>", help: "change plan", route: router.PathSettings, run: a.Upgrade},
		{name: "theme", usage: "theme <light|dark|system>", help: "set the theme", route: router.PathSettings, run: a.Theme},
		{name: "sidebar", usage: "sidebar", help: "toggle the sidebar", route: router.PathSettings, run: a.Sidebar},
		{name: "prefs", usage: "prefs", help: "edit preferences", route: router.PathSettings, run: a.Preferences},

		{name: "open", aliases: []string{"go"}, usage: "open <path>", help: "navigate to a route", run: a.Open},
		{name: "back", usage: "back", help: "previous route", run: a.Back},
		{name: "where", aliases: []string{"pwd"}, usage: "where", help: "show the current route", run: a.Where},
	}
}

// newFlags returns a FlagSet for command arguments that reports errors
// instead of exiting.
func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
