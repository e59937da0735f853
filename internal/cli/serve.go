package cli

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"time"

	"github.com/amady/vitrine/internal/api"
	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/store"
	"github.com/amterp/ra"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the admin panel server")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(3000).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on (will try incrementally if in use)").
		Register(cmd)

	ctx.ServeNoOpen, _ = ra.NewBool("no-open").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't open browser automatically").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(siteArg string, port int, noOpen bool) {
	siteRoot, err := resolveSiteRoot(siteArg)
	if err != nil {
		Fatal(err)
	}

	// The config's port wins when the flag is left at its default, then we
	// try incrementally from there if the port is taken. Blob URLs embed
	// the listen address, so the port must be settled before wiring stores.
	cfg, err := store.NewSiteStore(config.NewPaths(siteRoot, "")).Load()
	if err != nil {
		Fatal(err)
	}
	if port == 3000 && cfg.Port != 0 {
		port = cfg.Port
	}
	actualPort := findAvailablePort(port)
	baseURL := fmt.Sprintf("http://localhost:%d", actualPort)

	siteCtx, err := api.BuildSiteContext(siteRoot, baseURL)
	if err != nil {
		Fatal(err)
	}
	defer siteCtx.Close()

	handler := api.NewHandler(siteCtx)
	server := api.NewServer(handler, actualPort, siteCtx)

	// Warm the collection caches before accepting requests. Failures are
	// per-collection and surfaced as status messages, not fatal.
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	siteCtx.Manager.LoadAll(loadCtx)
	cancel()

	url := baseURL + siteCtx.Config.GetAdminPath()
	fmt.Printf("Vitrine admin panel running at %s\n", url)
	fmt.Println("Press Ctrl+C to stop")

	if !noOpen {
		openBrowser(url)
	}

	if err := server.Start(); err != nil {
		Fatal(err)
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
