package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docmind/internal/client/models"
	"github.com/dmitrijs2005/docmind/internal/client/payment"
)

// Dashboard prints the usage aggregate.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	if err := a.analytics.Fetch(ctx); err != nil {
		return err
	}
	st := a.analytics.State()
	s := st.Summary
	a.printf("Documents:    %d\n", s.TotalDocuments)
	a.printf("Queries:      %d (%d successful, %.0f%%)\n", s.TotalQueries, s.SuccessfulQueries, s.QuerySuccessRate)
	a.printf("Productivity: %.1f\n", s.ProductivityScore)
	if st.Analytics != nil && len(st.Analytics.TopDocuments) > 0 {
		a.printf("Top documents:\n")
		for _, d := range st.Analytics.TopDocuments {
			a.printf("  %-40s %4d views %3d%%\n", d.Name, d.Views, d.Percentage)
		}
	}
	return nil
}

// Plan prints the subscription with its usage and billing history.
func (a *App) Plan(ctx context.Context, _ []string) error {
	if err := a.settings.Fetch(ctx); err != nil {
		return err
	}
	st := a.settings.State()
	if sub := st.Subscription; sub != nil {
		a.printf("Plan %s, %.2f %s/%s\n", sub.PlanName, sub.Price, a.currency, sub.Period)
		a.printf("  documents %s  queries %s  storage %.1f/%.1f MB\n",
			usage(sub.DocumentsUsed, sub.DocumentsLimit), usage(sub.QueriesUsed, sub.QueriesLimit),
			sub.StorageUsed, sub.StorageLimit)
	}
	if len(st.Billing) > 0 {
		a.printf("Billing history:\n")
		for _, b := range st.Billing {
			a.printf("  %s  %-14s %10.2f  %s\n", b.Date.Local().Format(time.DateOnly), b.InvoiceNumber, b.Amount, b.Status)
		}
	}
	return nil
}

func usage(used, limit int) string {
	if limit <= 0 {
		return fmt.Sprintf("%d/unlimited", used)
	}
	return fmt.Sprintf("%d/%d", used, limit)
}

// Upgrade changes the plan, running checkout when the server asks for a
// payment.
func (a *App) Upgrade(ctx context.Context, args []string) error {
	if err := requireArgs(args, 1, "upgrade <"+strings.Join(models.Plans, "|")+">"); err != nil {
		return err
	}
	resp, err := a.settings.Upgrade(ctx, args[0])
	if err != nil {
		return err
	}
	if !resp.RequiresPayment {
		a.toasts.Success(messageOr(resp.Message, "Plan changed to "+args[0]))
		return nil
	}

	v, err := payment.Complete(ctx, a.gateway, a.settings.State().Payment, a.settings)
	if err != nil {
		return err
	}
	msg := messageOr(v.Message, "Payment verified")
	if v.InvoiceNumber != "" {
		msg += " (invoice " + v.InvoiceNumber + ")"
	}
	a.toasts.Success(msg)
	return nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Theme: %s\n", a.settings.State().UI.Theme)
		return nil
	}
	if err := a.settings.SetTheme(ctx, args[0]); err != nil {
		return err
	}
	a.toasts.Success("Theme set to " + args[0])
	return nil
}

func (a *App) Sidebar(ctx context.Context, _ []string) error {
	if a.settings.ToggleSidebar(ctx) {
		a.printf("Sidebar collapsed\n")
	} else {
		a.printf("Sidebar expanded\n")
	}
	return nil
}

// Preferences walks through the account preferences.
func (a *App) Preferences(ctx context.Context, _ []string) error {
	p := a.settings.State().Preferences
	p.EmailNotifications = confirm(a.reader, a.out, "Email notifications?")
	p.PushNotifications = confirm(a.reader, a.out, "Push notifications?")
	p.WeeklyDigest = confirm(a.reader, a.out, "Weekly digest?")
	model, err := getTextDefault(a.reader, a.out, "Default model", p.DefaultModel)
	if err != nil {
		return err
	}
	p.DefaultModel = model

	a.settings.SetPreferences(ctx, p)
	a.toasts.Success("Preferences saved")
	return nil
}
