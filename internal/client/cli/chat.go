package cli

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
)

// Chat sends a message and prints the reply.
func (a *App) Chat(ctx context.Context, args []string) error {
	fs := newFlags("chat")
	docs := fs.String("docs", "", "comma separated document ids")
	model := fs.String("model", "", "model name")
	mode := fs.String("mode", models.SearchHybrid, "retrieval mode")
	auto := fs.Bool("auto", true, "let the server pick the model")
	if err := fs.Parse(args); err != nil {
		return client.NewValidationError("arguments", "%v", err)
	}
	if *model == "" {
		*model = a.settings.State().Preferences.DefaultModel
	}

	reply, err := a.chat.Send(ctx,
		models.ChatRequest{Message: strings.Join(fs.Args(), " "), DocumentIDs: splitList(*docs), ModelName: *model},
		models.ChatOptions{SearchMode: *mode, AutoSelectModel: *auto},
	)
	if err != nil {
		return err
	}
	a.printf("ai> %s\n", reply.Content)
	return nil
}

// History loads and prints the conversation.
func (a *App) History(ctx context.Context, _ []string) error {
	if err := a.chat.Fetch(ctx); err != nil {
		return err
	}
	msgs := a.chat.State().Messages
	if len(msgs) == 0 {
		a.printf("No messages yet\n")
		return nil
	}
	for _, m := range msgs {
		a.printf("[%s] %s %s> %s\n", m.CreatedAt.Local().Format(time.DateTime), m.ID, m.Sender, m.Content)
	}
	return nil
}

func (a *App) DeleteMessage(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "chat-rm <id>"); err != nil {
		return err
	}
	if err := a.chat.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.toasts.Success("Message deleted")
	return nil
}

// Summarize prints a summary of the given documents.
func (a *App) Summarize(ctx context.Context, args []string) error {
	fs := newFlags("summarize")
	kind := fs.String("type", models.SummaryShort, "short, detailed, bullet or section")
	model := fs.String("model", "", "model name")
	if err := fs.Parse(args); err != nil {
		return client.NewValidationError("arguments", "%v", err)
	}
	resp, err := a.chatService.Summarize(ctx, models.SummarizeRequest{
		DocumentIDs: fs.Args(),
		SummaryType: *kind,
		ModelName:   *model,
	})
	if err != nil {
		return err
	}
	a.printf("%s summary of %d document(s):\n%s\n", resp.SummaryType, resp.DocumentCount, resp.Summary)
	return nil
}

// SelectModel shows which model the server would use for a query.
func (a *App) SelectModel(ctx context.Context, args []string) error {
	sel, err := a.chatService.SelectModel(ctx, strings.Join(args, " "), "")
	if err != nil {
		return err
	}
	a.printf("%s (%s)\n  %s\n", sel.ModelName, sel.SelectedModel, sel.Reason)
	if len(sel.Strengths) > 0 {
		a.printf("  strengths: %s\n", strings.Join(sel.Strengths, ", "))
	}
	return nil
}
