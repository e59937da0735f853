package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amady/vitrine/internal/api"
	"github.com/amady/vitrine/internal/prompt"
)

// App holds all the dependencies for the CLI.
type App struct {
	SiteCtx  *api.SiteContext
	Prompter prompt.Prompter
	SiteRoot string
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
// siteArg overrides site discovery when non-empty.
func NewApp(siteArg string, interactive bool) (*App, error) {
	siteRoot, err := resolveSiteRoot(siteArg)
	if err != nil {
		return nil, err
	}

	siteCtx, err := api.BuildSiteContext(siteRoot, "")
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return &App{
		SiteCtx:  siteCtx,
		Prompter: prompter,
		SiteRoot: siteRoot,
	}, nil
}

// resolveSiteRoot finds the site root directory. With an explicit argument
// it verifies a vitrine.toml exists there; otherwise it walks upward from
// the working directory until it finds one.
func resolveSiteRoot(siteArg string) (string, error) {
	if siteArg != "" {
		abs, err := filepath.Abs(siteArg)
		if err != nil {
			return "", err
		}
		if !hasSiteConfig(abs) {
			return "", fmt.Errorf("no vitrine.toml found at %s (run 'vitrine init' first)", abs)
		}
		return abs, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if hasSiteConfig(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no vitrine.toml found in this directory or any parent (run 'vitrine init' first)")
		}
		dir = parent
	}
}

func hasSiteConfig(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "vitrine.toml"))
	return err == nil
}

// Close releases the app's backend resources.
func (a *App) Close() {
	if a.SiteCtx != nil {
		_ = a.SiteCtx.Close()
	}
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
