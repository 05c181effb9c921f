package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/client"
	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/common"
	"github.com/dmitrijs2005/docmind/internal/filex"
)

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return client.NewValidationError("arguments", "usage: %s", usage)
	}
	return nil
}

// ListDocuments fetches and prints the document list.
func (a *App) ListDocuments(ctx context.Context, _ []string) error {
	if err := a.docs.Fetch(ctx); err != nil {
		return err
	}
	docs := a.docs.State().Documents
	if len(docs) == 0 {
		a.printf("No documents yet. Use 'upload <path>'.\n")
		return nil
	}
	for _, d := range docs {
		a.printf("%-36s  %-10s  %-8s  %-9s  %s\n", d.ID, d.Status, d.Size, d.Type, d.Name)
	}
	return nil
}

// Upload reads a local file and sends it. Oversized files are not read
// into memory; the service rejects them before any request.
func (a *App) Upload(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "upload <path> [title]"); err != nil {
		return err
	}
	f, err := filex.Load(args[0], a.docService.Limits().MaxSize)
	if err != nil {
		return err
	}
	title := strings.Join(args[1:], " ")

	doc, err := a.docs.Upload(ctx, f, title)
	if err != nil {
		return err
	}
	a.toasts.Success(fmt.Sprintf("Uploaded %s (%s)", doc.Name, doc.Status))
	return nil
}

// ViewDocument prints one document.
func (a *App) ViewDocument(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "view <id>"); err != nil {
		return err
	}
	d, err := a.docs.View(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("%s\n  id:       %s\n  type:     %s\n  size:     %s\n  status:   %s\n", d.Name, d.ID, d.Type, d.Size, d.Status)
	if !d.UploadedDate.IsZero() {
		a.printf("  uploaded: %s\n", d.UploadedDate.Local().Format(time.DateTime))
	}
	return nil
}

// DeleteDocument asks for confirmation and deletes the document.
func (a *App) DeleteDocument(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "rm <id>"); err != nil {
		return err
	}
	name := args[0]
	if d, ok := a.docs.Find(args[0]); ok {
		name = d.Name
	}
	if !confirm(a.reader, a.out, "Delete "+name+"?") {
		return nil
	}
	if err := a.docs.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.toasts.Success("Deleted " + name)
	return nil
}

// Search runs a document search. Flags select the mode and result count.
func (a *App) Search(ctx context.Context, args []string) error {
	fs := newFlags("search")
	mode := fs.String("mode", models.SearchHybrid, "semantic, keyword or hybrid")
	topK := fs.Int("k", 5, "number of results")
	docs := fs.String("docs", "", "comma separated document ids")
	expand := fs.Bool("expand", false, "expand the query")
	if err := fs.Parse(args); err != nil {
		return client.NewValidationError("arguments", "%v", err)
	}
	query := strings.Join(fs.Args(), " ")

	res, err := a.docs.Search(ctx, models.SearchRequest{
		Query:       query,
		DocumentIDs: splitList(*docs),
		SearchMode:  *mode,
		TopK:        *topK,
		ExpandQuery: *expand,
	})
	if err != nil {
		return err
	}
	if res.ExpandedQuery != nil && *res.ExpandedQuery != "" {
		a.printf("Expanded to: %s\n", *res.ExpandedQuery)
	}
	a.printf("%d result(s), %s search\n", res.TotalResults, res.SearchMode)
	for i, h := range res.Results {
		a.printf("%2d. [%.2f] %s\n    %s\n", i+1, h.RelevanceScore, h.DocumentID(), common.Truncate(oneLine(h.Content), 160))
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Citations prints the citations extracted from a document.
func (a *App) Citations(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "cite <id> [format]"); err != nil {
		return err
	}
	var hint string
	if len(args) > 1 {
		hint = args[1]
	}
	resp, err := a.docService.Citations(ctx, args[0], hint)
	if err != nil {
		return err
	}
	a.printf("%d citation(s)\n", resp.TotalCitations)
	for i, c := range resp.Citations {
		a.printf("%2d. %v\n", i+1, citationText(c))
	}
	return nil
}

func citationText(c models.Citation) any {
	for _, k := range []string{"text", "raw_text", "title"} {
		if v, ok := c[k]; ok {
			return v
		}
	}
	return map[string]any(c)
}

// Bibliography prints a formatted bibliography.
func (a *App) Bibliography(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "bib <id> [format] [sort]"); err != nil {
		return err
	}
	format, sortBy := "apa", "author"
	if len(args) > 1 {
		format = args[1]
	}
	if len(args) > 2 {
		sortBy = args[2]
	}
	resp, err := a.docService.Bibliography(ctx, args[0], format, sortBy)
	if err != nil {
		return err
	}
	a.printf("%s, %d citation(s)\n%s\n", resp.Format, resp.TotalCitations, string(resp.Bibliography))
	return nil
}

// Compare compares the given documents.
func (a *App) Compare(ctx context.Context, args []string) error {
	fs := newFlags("compare")
	aspects := fs.String("aspects", "", "comma separated comparison aspects")
	contradictions := fs.Bool("contradictions", true, "report contradictions")
	if err := fs.Parse(args); err != nil {
		return client.NewValidationError("arguments", "%v", err)
	}
	resp, err := a.docService.Compare(ctx, fs.Args(), splitList(*aspects), *contradictions)
	if err != nil {
		return err
	}
	a.printf("%s\n", string(resp.Data))
	return nil
}
