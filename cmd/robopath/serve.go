package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robopath/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	serveFlags      boardFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the robopath SSH server",
	Long: `Start an SSH server that shows the route viewer to every client.

Each SSH connection gets its own viewer with its own boards. Runs are
stored per-server and clients can open the shared history with Ctrl+T.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.robopath/host_key

Examples:
  robopath serve                           # Listen on :23234 with auto-generated key
  robopath serve --ssh :2222               # Listen on port 2222
  robopath serve --host-key ./my_host_key  # Use specific host key
  robopath serve --generator rooms         # Serve room layouts

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveFlags.register(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd, &serveFlags)
	if err != nil {
		fail("%v", err)
	}

	dbPath := flagDBPath
	if serveFlags.noSave {
		dbPath = ""
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.DBPath = dbPath
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.Config = cfg

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting robopath SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
