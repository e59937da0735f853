package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/amady/vitrine/internal/model"
	"github.com/amterp/ra"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List cards")

	ctx.ListCollection, _ = ra.NewString("collection").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only list one collection (team, features, services, about, home)").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(siteArg, collectionArg string) {
	app, err := NewApp(siteArg, true)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	collections := model.Collections()
	if collectionArg != "" {
		c, ok := model.ParseCollection(collectionArg)
		if !ok {
			Fatal(fmt.Errorf("unknown collection %q", collectionArg))
		}
		collections = []model.Collection{c}
	}

	ctx := context.Background()
	for _, c := range collections {
		cards, err := app.SiteCtx.Docs.FetchAll(ctx, c)
		if err != nil {
			PrintError("Error fetching %s data.", c)
			continue
		}

		fmt.Printf("\n%s\n", CollectionHeader(c.String(), len(cards)))
		for _, card := range cards {
			printCardLine(card)
		}
	}
}

func printCardLine(card *model.Card) {
	// Prefer a human-readable field for the summary line.
	title := card.Fields["Name"]
	if title == "" {
		title = card.Fields["Heading"]
	}
	if title == "" {
		title = firstFieldValue(card)
	}
	line := fmt.Sprintf("  %s  %s", RenderID(card.ID), title)
	if card.ImageURL != "" {
		line += "  " + RenderURL(card.ImageURL)
	}
	fmt.Println(line)
}

func firstFieldValue(card *model.Card) string {
	names := make([]string, 0, len(card.Fields))
	for name := range card.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if card.Fields[name] != "" {
			return card.Fields[name]
		}
	}
	return RenderMuted("(no fields)")
}
