package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/availability"
	"github.com/muurk/tablekit/internal/config"
	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/pasteboard"
	"github.com/muurk/tablekit/internal/screen"
	"github.com/muurk/tablekit/internal/settings"
	"github.com/muurk/tablekit/internal/surface"
	"github.com/muurk/tablekit/internal/theme"
	"github.com/muurk/tablekit/internal/urls"
)

// Global flags
var (
	logLevel   string
	configPath string
)

// Command flags
var (
	dumpWidth       int
	dumpFilter      string
	serveAddr       string
	serveAdvertise  bool
	serveInstance   string
	serveReserved   []string
	discoverTimeout int
	discoverUse     bool
)

var (
	defaultReserved = []string{"admin", "root", "support", "tablekit"}
	errNoUsername   = errors.New("username required")
)

// Loaded by setup before any command runs
var (
	cfg  *config.Config
	deps *settings.Deps
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config and TABLEKIT_LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: OS config dir)")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(availabilityCmd)

	availabilityCmd.AddCommand(serveCmd)
	availabilityCmd.AddCommand(discoverCmd)
	availabilityCmd.AddCommand(checkCmd)
}

// setup loads the config, starts logging and wires the shared collaborators.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := logLevel
	if level == "" {
		level = cfg.Preferences.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Debug("Config loaded", zap.String("path", cfg.Path()))

	board, err := pasteboard.New(cfg.Preferences.Pasteboard)
	if err != nil {
		return fmt.Errorf("invalid pasteboard preference: %w", err)
	}

	deps = &settings.Deps{
		Config:     cfg,
		Theme:      theme.NewPreferences(theme.ParseMode(cfg.Preferences.Theme), cfg.Preferences.TextScale),
		Pasteboard: board,
		Checker:    availability.NewShared(newChecker(cfg)),
		Screens:    screen.NewRegistry(),
	}
	return nil
}

func newChecker(cfg *config.Config) availability.Checker {
	if url := cfg.Preferences.AvailabilityURL; url != "" {
		logging.Debug("Using remote availability checks", zap.String("url", url))
		return availability.NewClient(url)
	}
	local := availability.NewLocal(defaultReserved...)
	local.Delay = 300 * time.Millisecond
	return local
}

func closeChecker() {
	if c, ok := deps.Checker.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logging.Debug("Failed to close availability client", zap.Error(err))
		}
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	defer closeChecker()

	p := tea.NewProgram(settings.NewApp(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("settings app error: %w", err)
	}
	return nil
}

// dumpCmd prints the settings contents once
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the settings screen without interaction",
	Long: `Render every section and row of the settings screen to stdout.

Useful for checking a config file or for terminals where the interactive
app cannot run.`,
	Example: `  # Print using the terminal width
  tablekit dump

  # Fixed width, e.g. for piping
  tablekit dump --width 60

  # Only rows whose titles fuzzy-match "read"
  tablekit dump --filter read`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().IntVar(&dumpWidth, "width", 0, "Output width (default: terminal width)")
	dumpCmd.Flags().StringVar(&dumpFilter, "filter", "", "Only print rows whose titles fuzzy-match this query")
}

func runDump(cmd *cobra.Command, args []string) error {
	contents := surface.Filter(settings.NewSettingsScreen(deps, nil).Build(), dumpFilter)
	if contents.TotalRows() == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No rows match %q.\n", dumpFilter)
		return nil
	}

	printer := surface.NewPrinter(cmd.OutOrStdout(), deps.Theme).SetWidth(dumpWidth)
	if err := printer.PrintContents(contents); err != nil {
		return fmt.Errorf("failed to print settings: %w", err)
	}
	return nil
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Username availability service",
	Long:  `Run, find or query the WebSocket service that answers username availability checks.`,
}

// serveCmd runs the availability server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the availability WebSocket server",
	Example: `  # Listen on the default port
  tablekit availability serve

  # Announce the server over mDNS
  tablekit availability serve --addr :7878 --advertise`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":7878", "Listen address")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Advertise the server over mDNS")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "", "mDNS instance name (default: hostname)")
	serveCmd.Flags().StringSliceVar(&serveReserved, "reserved", defaultReserved, "Usernames that are never available")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instance := serveInstance
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "tablekit"
		}
		instance = host
	}

	var ad *availability.Advertisement
	defer func() { ad.Shutdown() }()

	server := availability.NewServer(availability.NewLocal(serveReserved...))
	return server.ListenAndServe(ctx, serveAddr, func(addr net.Addr) {
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on ws://%s%s\n", addr, availability.Path)
		if !serveAdvertise {
			return
		}
		tcp, ok := addr.(*net.TCPAddr)
		if !ok {
			return
		}
		var err error
		ad, err = availability.Advertise(instance, tcp.Port)
		if err != nil {
			logging.Warn("mDNS advertisement failed", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	})
}

// discoverCmd browses for availability servers
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find availability servers on the local network",
	Example: `  # Browse for 3 seconds (default)
  tablekit availability discover

  # Browse longer and use the first server found
  tablekit availability discover --timeout 10 --use`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 3, "Browse timeout in seconds")
	discoverCmd.Flags().BoolVar(&discoverUse, "use", false, "Save the first server found as the availability URL")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Browsing for availability servers (timeout: %ds)...\n\n", discoverTimeout)

	browser := availability.NewBrowser()
	browser.Timeout = time.Duration(discoverTimeout) * time.Second
	endpoints, err := browser.Browse(cmd.Context())
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(endpoints) == 0 {
		fmt.Fprintln(out, "No servers found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start one with 'tablekit availability serve --advertise'")
		fmt.Fprintln(out, "  - Check that multicast (UDP 5353) is allowed")
		fmt.Fprintln(out, "  - Try increasing --timeout")
		fmt.Fprintf(out, "\nSee %s\n", urls.AvailabilityGuide)
		return nil
	}

	fmt.Fprintf(out, "Found %d server(s):\n\n", len(endpoints))
	for i, ep := range endpoints {
		fmt.Fprintf(out, "%d. %s\n", i+1, ep.Instance)
		fmt.Fprintf(out, "   Host: %s\n", ep.Host)
		fmt.Fprintf(out, "   URL:  %s\n\n", ep.URL())
	}

	if discoverUse {
		cfg.Preferences.AvailabilityURL = endpoints[0].URL()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(out, "Saved %s to %s\n", endpoints[0].URL(), cfg.Path())
	}
	return nil
}

// checkCmd runs one availability check with the configured checker
var checkCmd = &cobra.Command{
	Use:   "check <username>",
	Short: "Check whether a username is available",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return errNoUsername
	}
	defer closeChecker()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	result, err := deps.Checker.Check(ctx, args[0])
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if !result.Available {
		fmt.Fprintf(out, "%s is taken\n", result.Username)
		return nil
	}
	fmt.Fprintf(out, "%s is available as %s.%s\n", result.Username, result.Username, result.Discriminator)
	return nil
}
