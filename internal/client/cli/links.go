package cli

import (
	"context"
	"fmt"
	"os"
)

// List fetches and prints the user's links, replacing the cached
// collection wholesale.
func (a *App) List(ctx context.Context) error {
	if !a.authorize(approvedRoute) {
		return nil
	}

	items, dropped, err := a.links.List(ctx)
	if err != nil {
		return err
	}
	a.linkItems = items

	if len(items) == 0 {
		printlnFn("No links yet. Use 'shorten' to create one.")
		return nil
	}
	for _, link := range items {
		printlnFn(fmt.Sprintf("%-12s %-30s -> %s  (%d clicks, created %s)",
			link.ID, link.ShortURL, link.OriginalURL, link.Clicks, link.CreatedAt))
	}
	if dropped > 0 {
		printlnFn(fmt.Sprintf("(%d malformed records skipped)", dropped))
	}
	return nil
}

// Shorten prompts for a URL and an optional custom code and creates a
// new link.
func (a *App) Shorten(ctx context.Context) error {
	if !a.authorize(approvedRoute) {
		return nil
	}

	originalURL, err := getSimpleText(a.reader, "Enter the URL to shorten", os.Stdout)
	if err != nil {
		return err
	}
	customCode, err := getSimpleText(a.reader, "Custom short code (optional, Enter to skip)", os.Stdout)
	if err != nil {
		return err
	}

	items, err := a.links.Shorten(ctx, a.linkItems, originalURL, customCode)
	if err != nil {
		return err
	}
	a.linkItems = items

	printlnFn("URL shortened successfully!")
	if len(items) > 0 {
		printlnFn(items[0].ShortURL)
	}
	return nil
}

// Delete removes one link by id.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.authorize(approvedRoute) {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: delete <id>")
		return nil
	}

	items, err := a.links.Delete(ctx, a.linkItems, args[0])
	if err != nil {
		return err
	}
	a.linkItems = items

	printlnFn("Link deleted.")
	return nil
}

// Stats prints the analytics snapshot for one short code.
func (a *App) Stats(ctx context.Context, args []string) error {
	if !a.authorize(approvedRoute) {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: stats <shortCode> [7d|30d|90d]")
		return nil
	}

	timeRange := "7d"
	if len(args) > 1 {
		timeRange = args[1]
	}

	snap, err := a.analytics.Fetch(ctx, args[0], timeRange)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Analytics for %s over %s:", snap.ShortCode, snap.TimeRange))
	printlnFn(fmt.Sprintf("  total clicks:    %d", snap.TotalClicks))
	printlnFn(fmt.Sprintf("  unique visitors: %d", snap.UniqueVisitors))
	return nil
}
