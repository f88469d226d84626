package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vgstats/vgstats/config"
	"github.com/vgstats/vgstats/gamelocker"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *gamelocker.Client

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	region string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vgstats",
	Short: "Query the gamelocker game-statistics API",
	Long: `vgstats is a CLI for the gamelocker game-statistics API, covering
match history, player lookup and telemetry retrieval for Vainglory
and Battlerite.`,
}

// SetVersion sets the version information from build flags
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "region shard to query (overrides config)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if region == "" {
		region = cfg.API.Region
	}

	client, err = gamelocker.NewClient(
		cfg.API.Key,
		gamelocker.WithGame(gamelocker.Game(cfg.API.Game)),
		gamelocker.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
		gamelocker.WithUserAgent("vgstats/"+version),
		gamelocker.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when stderr is a terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test connection to the gamelocker API",
	Long:    `Check that the gamelocker API is reachable and display its release information.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection for %s...\n", cfg.API.Game)

	status, err := client.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reach the API: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("- API version: %s\n", status.Version)
	fmt.Printf("- Released at: %s\n", status.ReleasedAt)
	return nil
}
