package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH and HTTP servers",
	Long: `Start an SSH server that lets users connect and play, and optionally
an HTTP server with a read-only JSON leaderboard.

Each SSH connection gets its own game. All players and the HTTP API share
one scores database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

HTTP endpoints:
  GET /health
  GET /variants
  GET /scores/{variant}?limit=n
  GET /recent?limit=n

Examples:
  snake serve                           # SSH on :23234 with auto-generated key
  snake serve --ssh :2222 --http :8080  # SSH and HTTP
  snake serve --ssh "" --http :8080     # HTTP only
  snake serve --wrap --width 20         # Everyone plays wrap-20x10

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "snake-serve")

	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, set --ssh and/or --http")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	engineCfg, err := gameCfg.Engine(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []error
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				logger.Error("server failed", "server", name, "error", err)
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			// One server going down takes the other with it.
			stop()
		}()
	}

	if flagSSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			Game:        engineCfg,
			TickRate:    flagFPS,
		}, store, logger.WithPrefix("snake-ssh"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("SSH: connect with ssh -p <port> <host> (%s)\n", sshServer.Addr())
		run("ssh", sshServer.ListenAndServe)
	}

	if flagHTTPAddr != "" {
		httpServer := web.New(store, logger.WithPrefix("snake-http"))
		fmt.Printf("HTTP: leaderboard API on %s\n", flagHTTPAddr)
		run("http", func(ctx context.Context) error {
			return httpServer.ListenAndServe(ctx, flagHTTPAddr)
		})
	}

	fmt.Printf("Serving %s. Press Ctrl+C to stop\n", engineCfg.Variant())
	wg.Wait()

	if len(failures) > 0 {
		os.Exit(1)
	}
}
