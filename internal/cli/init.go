package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/store"
	"github.com/amterp/ra"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Initialize a Vitrine site in the current directory")

	ctx.InitName, _ = ra.NewString("name").
		SetShort("n").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Site name for the page title (default: directory name)").
		Register(cmd)

	ctx.InitStorage, _ = ra.NewString("storage").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Storage backend: files or sqlite (default: files)").
		Register(cmd)

	ctx.InitLocation, _ = ra.NewString("location").
		SetShort("l").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Custom location for the content directory (relative path)").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(siteArg, name, storage, location string) {
	siteRoot := siteArg
	if siteRoot == "" {
		var err error
		siteRoot, err = os.Getwd()
		if err != nil {
			Fatal(err)
		}
	}
	siteRoot, err := filepath.Abs(siteRoot)
	if err != nil {
		Fatal(err)
	}

	switch storage {
	case "", model.StorageFiles, model.StorageSQLite:
	default:
		Fatal(fmt.Errorf("unknown storage backend %q (expected files or sqlite)", storage))
	}

	paths := config.NewPaths(siteRoot, location)
	siteStore := store.NewSiteStore(paths)
	if siteStore.Exists() {
		Fatal(fmt.Errorf("vitrine.toml already exists at %s", siteRoot))
	}

	if name == "" {
		name = filepath.Base(siteRoot)
	}

	// Scaffold the content tree: one directory per collection, plus the
	// per-collection image directories.
	for _, c := range model.Collections() {
		if err := os.MkdirAll(paths.CollectionDir(c.String()), 0755); err != nil {
			Fatal(err)
		}
		if err := os.MkdirAll(paths.CollectionImagesDir(c.String()), 0755); err != nil {
			Fatal(err)
		}
	}

	cfg := &model.SiteConfig{
		Name:         name,
		Storage:      storage,
		DataLocation: location,
		Nav:          model.DefaultNav(),
	}
	if err := siteStore.Save(cfg); err != nil {
		Fatal(err)
	}

	// Register the site globally, best effort.
	globalStore := store.NewGlobalStore()
	if globalCfg, err := globalStore.Load(); err == nil {
		globalCfg.RegisterSite(name, siteRoot)
		if err := globalStore.Save(globalCfg); err != nil {
			PrintWarning("failed to register site globally: %v", err)
		}
	} else {
		PrintWarning("failed to load global config: %v", err)
	}

	PrintSuccess("Initialized Vitrine site %q in %s", name, siteRoot)
	PrintInfo("Run 'vitrine serve' to open the admin panel")
}
