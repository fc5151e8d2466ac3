package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robopath/internal/platform/web"
)

var (
	flagHTTPAddr string
	webFlags     boardFlags
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser renderer",
	Long: `Serve a page that draws boards on a canvas and streams each route over
a websocket. Every browser tab plans its own boards.

Query parameters on the page URL:
  seed   - Board seed for the first route
  delay  - Milliseconds between steps

Examples:
  robopath web
  robopath web --http :9000 --density sparse
  open http://localhost:8080/?seed=42&delay=100`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	webFlags.register(webCmd)
}

func runWeb(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd, &webFlags)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(&webFlags)
	if store != nil {
		defer store.Close()
	}

	logger := newLogger("robopath-web")
	p, err := newPlanner(cfg, store, logger)
	if err != nil {
		fail("%v", err)
	}

	server := web.NewServer(web.ServerConfig{
		Address:      flagHTTPAddr,
		StepDelay:    time.Duration(cfg.Display.StepDelayMS) * time.Millisecond,
		ShowExplored: cfg.Display.ShowExplored,
	}, p)
	server.SetLogger(logger)

	fmt.Printf("Open http://localhost:%s/ in a browser\n", portOf(flagHTTPAddr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
