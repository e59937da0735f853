package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"
)

func registerEdit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("edit")
	cmd.SetDescription("Edit an existing card")

	ctx.EditCollection, _ = ra.NewString("collection").
		SetUsage("Collection the card lives in").
		Register(cmd)

	ctx.EditCard, _ = ra.NewString("card").
		SetUsage("Card ID").
		Register(cmd)

	ctx.EditFields, _ = ra.NewStringSlice("field").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Set a card field (key=value format, repeatable)").
		Register(cmd)

	ctx.EditImage, _ = ra.NewString("image").
		SetShort("i").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Path to a replacement image file").
		Register(cmd)

	ctx.EditUsed, _ = parent.RegisterCmd(cmd)
}

func runEdit(siteArg, collectionArg, cardID string, fieldFlags []string, imagePath string, nonInteractive bool) {
	app, err := NewApp(siteArg, !nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	collection, err := resolveCollection(app, collectionArg, nonInteractive)
	if err != nil {
		Fatal(err)
	}

	ctx := context.Background()
	m := app.SiteCtx.Manager

	if err := m.SelectView(collection); err != nil {
		Fatal(err)
	}
	m.Refresh(ctx, collection)
	if err := m.StartEdit(cardID); err != nil {
		Fatal(err)
	}

	fields, err := parseFieldFlags(fieldFlags)
	if err != nil {
		Fatal(err)
	}
	if len(fields) == 0 && imagePath == "" {
		if nonInteractive {
			Fatal(fmt.Errorf("nothing to change: pass -f key=value or --image"))
		}
		session := m.Session()
		fields, err = promptFields(app.Prompter, session.PendingFields)
		if err != nil {
			m.CancelEdit()
			Fatal(err)
		}
	}

	for name, value := range fields {
		if err := m.UpdateField(name, value); err != nil {
			m.CancelEdit()
			Fatal(err)
		}
	}

	if imagePath != "" {
		image, err := readImageFile(imagePath)
		if err != nil {
			m.CancelEdit()
			Fatal(err)
		}
		if err := m.ChooseImage(image.Name, image.Data); err != nil {
			m.CancelEdit()
			Fatal(err)
		}
	}

	if err := m.SubmitEdit(ctx); err != nil {
		Fatal(err)
	}

	PrintSuccess("Updated %s card %s", collection, RenderID(cardID))
}
