package cli

import (
	"context"
	"fmt"

	"github.com/amady/vitrine/internal/manager"
	"github.com/amady/vitrine/internal/model"
	"github.com/amterp/ra"
)

func registerAdd(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("add")
	cmd.SetDescription("Add a new card")

	ctx.AddCollection, _ = ra.NewString("collection").
		SetOptional(true).
		SetUsage("Target collection (team, features, services, about, home)").
		Register(cmd)

	ctx.AddFields, _ = ra.NewStringSlice("field").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Set a card field (key=value format, repeatable)").
		Register(cmd)

	ctx.AddImage, _ = ra.NewString("image").
		SetShort("i").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Path to an image file to upload with the card").
		Register(cmd)

	ctx.AddUsed, _ = parent.RegisterCmd(cmd)
}

func runAdd(siteArg, collectionArg string, fieldFlags []string, imagePath string, nonInteractive bool) {
	app, err := NewApp(siteArg, !nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	collection, err := resolveCollection(app, collectionArg, nonInteractive)
	if err != nil {
		Fatal(err)
	}

	fields, err := parseFieldFlags(fieldFlags)
	if err != nil {
		Fatal(err)
	}
	if len(fields) == 0 {
		if nonInteractive {
			Fatal(fmt.Errorf("at least one -f key=value field is required in non-interactive mode"))
		}
		fields, err = promptFields(app.Prompter, nil)
		if err != nil {
			Fatal(err)
		}
	}

	var image *manager.PendingImage
	if imagePath != "" {
		image, err = readImageFile(imagePath)
		if err != nil {
			Fatal(err)
		}
	}

	card, err := app.SiteCtx.Manager.CreateCard(context.Background(), collection, fields, image)
	if err != nil {
		Fatal(err)
	}

	PrintSuccess("Created %s card %s", collection, RenderID(card.ID))
	if card.ImageURL != "" {
		PrintInfo("Image at %s", RenderURL(card.ImageURL))
	}
}

// resolveCollection parses the collection argument, prompting for one when
// it's missing and we're interactive.
func resolveCollection(app *App, arg string, nonInteractive bool) (model.Collection, error) {
	if arg != "" {
		c, ok := model.ParseCollection(arg)
		if !ok {
			return "", fmt.Errorf("unknown collection %q", arg)
		}
		return c, nil
	}
	if nonInteractive {
		return "", fmt.Errorf("collection is required in non-interactive mode")
	}

	options := make([]string, 0, len(model.Collections()))
	for _, c := range model.Collections() {
		options = append(options, c.String())
	}
	selected, err := app.Prompter.Select("Select collection", options)
	if err != nil {
		return "", err
	}
	c, _ := model.ParseCollection(selected)
	return c, nil
}
