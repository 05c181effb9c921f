package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/stores"
	"github.com/dmitrijs2005/docmind/internal/common"
)

// ListNotes fetches notes and prints those passing the filter, pinned
// first.
func (a *App) ListNotes(ctx context.Context, args []string) error {
	fs := newFlags("notes")
	doc := fs.String("doc", "", "only notes attached to this document")
	tag := fs.String("tag", "", "only notes with this tag")
	if err := fs.Parse(args); err != nil {
		return client.NewValidationError("arguments", "%v", err)
	}
	if err := a.notes.Fetch(ctx, *doc); err != nil {
		return err
	}
	a.notes.SetFilter(stores.NoteFilter{Query: strings.Join(fs.Args(), " "), Tag: *tag})

	notes := a.notes.Visible()
	if len(notes) == 0 {
		a.printf("No notes\n")
		return nil
	}
	for _, n := range notes {
		pin := " "
		if n.IsPinned {
			pin = "*"
		}
		a.printf("%s %-36s  %s", pin, n.ID, n.Title)
		if len(n.Tags) > 0 {
			a.printf("  [%s]", strings.Join(n.Tags, ", "))
		}
		a.printf("\n")
	}
	return nil
}

// AddNote prompts for a new note.
func (a *App) AddNote(ctx context.Context, args []string) error {
	fs := newFlags("note-add")
	doc := fs.String("doc", "", "attach to this document")
	if err := fs.Parse(args); err != nil {
		return client.NewValidationError("arguments", "%v", err)
	}

	title, err := getText(a.reader, a.out, "Title")
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, a.out, "Content")
	if err != nil {
		return err
	}
	tags, err := getText(a.reader, a.out, "Tags (comma separated)")
	if err != nil {
		return err
	}

	in := models.NoteCreate{Title: title, Content: content, Tags: splitList(tags)}
	if *doc != "" {
		in.DocumentID = doc
	}
	n, err := a.notes.Create(ctx, in)
	if err != nil {
		return err
	}
	a.toasts.Success("Note saved: " + n.Title)
	return nil
}

// EditNote prompts for new values, keeping the old ones on empty answers.
func (a *App) EditNote(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "note-edit <id>"); err != nil {
		return err
	}
	var cur models.Note
	found := false
	for _, n := range a.notes.State().Notes {
		if n.ID == args[0] {
			cur, found = n, true
			break
		}
	}
	if !found {
		return common.ErrorNotFound
	}

	title, err := getTextDefault(a.reader, a.out, "Title", cur.Title)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, a.out, "Content (empty keeps the current text)")
	if err != nil {
		return err
	}
	tags, err := getTextDefault(a.reader, a.out, "Tags", strings.Join(cur.Tags, ", "))
	if err != nil {
		return err
	}

	upd := models.NoteUpdate{Title: &title, Tags: splitList(tags)}
	if content != "" {
		upd.Content = &content
	}
	if _, err := a.notes.Update(ctx, cur.ID, upd); err != nil {
		return err
	}
	a.toasts.Success("Note updated")
	return nil
}

func (a *App) PinNote(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "pin <id>"); err != nil {
		return err
	}
	n, err := a.notes.TogglePin(ctx, args[0])
	if err != nil {
		return err
	}
	if n.IsPinned {
		a.toasts.Success("Pinned " + n.Title)
	} else {
		a.toasts.Success("Unpinned " + n.Title)
	}
	return nil
}

func (a *App) DeleteNote(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "note-rm <id>"); err != nil {
		return err
	}
	if !confirm(a.reader, a.out, "Delete note?") {
		return nil
	}
	if err := a.notes.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.toasts.Success("Note deleted")
	return nil
}

// Tags prints every tag used by the loaded notes.
func (a *App) Tags(_ context.Context, _ []string) error {
	tags := a.notes.Tags()
	if len(tags) == 0 {
		a.printf("No tags\n")
		return nil
	}
	a.printf("%s\n", strings.Join(tags, ", "))
	return nil
}
