package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Site           *string

	// init command
	InitUsed     *bool
	InitName     *string
	InitStorage  *string
	InitLocation *string

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// list command
	ListUsed       *bool
	ListCollection *string

	// add command
	AddUsed       *bool
	AddCollection *string
	AddFields     *[]string
	AddImage      *string

	// edit command
	EditUsed       *bool
	EditCollection *string
	EditCard       *string
	EditFields     *[]string
	EditImage      *string

	// delete command
	DeleteUsed       *bool
	DeleteCollection *string
	DeleteCard       *string
	DeleteForce      *bool
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("vitrine")
	cmd.SetDescription("Content manager for small marketing sites")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Site, _ = ra.NewString("site").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Path to the site root (default: search upward for vitrine.toml)").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerServe(cmd, ctx)
	registerList(cmd, ctx)
	registerAdd(cmd, ctx)
	registerEdit(cmd, ctx)
	registerDelete(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx)
}

func executeCommand(ctx *CommandContext) {
	switch {
	case *ctx.InitUsed:
		runInit(*ctx.Site, *ctx.InitName, *ctx.InitStorage, *ctx.InitLocation)

	case *ctx.ServeUsed:
		runServe(*ctx.Site, *ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.ListUsed:
		runList(*ctx.Site, *ctx.ListCollection)

	case *ctx.AddUsed:
		runAdd(*ctx.Site, *ctx.AddCollection, *ctx.AddFields, *ctx.AddImage, *ctx.NonInteractive)

	case *ctx.EditUsed:
		runEdit(*ctx.Site, *ctx.EditCollection, *ctx.EditCard, *ctx.EditFields, *ctx.EditImage, *ctx.NonInteractive)

	case *ctx.DeleteUsed:
		runDelete(*ctx.Site, *ctx.DeleteCollection, *ctx.DeleteCard, *ctx.DeleteForce, *ctx.NonInteractive)
	}
}
