package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"
)

func registerDelete(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("delete")
	cmd.SetDescription("Delete a card")

	ctx.DeleteCollection, _ = ra.NewString("collection").
		SetUsage("Collection the card lives in").
		Register(cmd)

	ctx.DeleteCard, _ = ra.NewString("card").
		SetUsage("Card ID").
		Register(cmd)

	ctx.DeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(cmd)

	ctx.DeleteUsed, _ = parent.RegisterCmd(cmd)
}

func runDelete(siteArg, collectionArg, cardID string, force, nonInteractive bool) {
	app, err := NewApp(siteArg, !nonInteractive)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	collection, err := resolveCollection(app, collectionArg, nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if !force {
		if nonInteractive {
			Fatal(fmt.Errorf("deleting card %s requires --force in non-interactive mode", cardID))
		}

		confirmed, err := app.Prompter.Confirm(
			fmt.Sprintf("Delete card %s from %s?", cardID, collection),
			false,
		)
		if err != nil {
			Fatal(err)
		}
		if !confirmed {
			PrintInfo("Cancelled")
			return
		}
	}

	if err := app.SiteCtx.Manager.DeleteCard(context.Background(), collection, cardID); err != nil {
		Fatal(err)
	}

	PrintSuccess("Deleted card %s from %s", RenderID(cardID), collection)
}
