// Package cmd provides the command-line interface for geoaudit.
// It handles command parsing, configuration loading and audit execution.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fintamas01/geoaudit/internal/audit"
	"github.com/fintamas01/geoaudit/internal/config"
	"github.com/fintamas01/geoaudit/internal/logging"
	"github.com/fintamas01/geoaudit/internal/storage"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd runs one audit against the given URL and prints the result JSON.
var rootCmd = &cobra.Command{
	Use:   "geoaudit [URL]",
	Short: "Audit how discoverable a website is for AI and search systems",
	Long: `geoaudit crawls a website (bounded, same-domain, breadth-first),
extracts discoverability signals from each page and computes a deterministic
GEO score with per-category breakdowns and evidence quotes.

The score is a pure function of the extracted signals: auditing the same
site content twice yields the same number.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context so signal
// cancellation reaches a running crawl or server.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets version information for the CLI.
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./geoaudit.yml)")

	rootCmd.PersistentFlags().IntP("pages", "p", 5, "Page budget per audit (1-10)")
	rootCmd.PersistentFlags().DurationP("timeout", "t", 8*time.Second, "Per-request HTTP timeout")
	rootCmd.PersistentFlags().Duration("deadline", 60*time.Second, "Overall wall-clock budget per crawl")
	rootCmd.PersistentFlags().Duration("delay", 200*time.Millisecond, "Politeness delay between fetches")
	rootCmd.PersistentFlags().StringP("user-agent", "u", "", "HTTP User-Agent header")
	rootCmd.PersistentFlags().StringP("database", "d", "", "SQLite file for audit history (empty disables)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Optional log file path")

	rootCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")
	rootCmd.Flags().Bool("pretty", false, "Indent the result JSON")

	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"max_pages", "pages"},
		{"fetch_timeout", "timeout"},
		{"crawl_deadline", "deadline"},
		{"request_delay", "delay"},
		{"user_agent", "user-agent"},
		{"database_path", "database"},
		{"log_level", "log-level"},
		{"log_file", "log-file"},
	}
	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.PersistentFlags().Lookup(bind.flagName)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("geoaudit")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GEOAUDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file, env vars and flags.
func loadConfig() (*config.AuditConfig, error) {
	cfg := config.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = generateUserAgent()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func generateUserAgent() string {
	if version != "" && version != "dev" {
		return fmt.Sprintf("geoaudit/%s (+https://github.com/fintamas01/geoaudit)", version)
	}
	return "geoaudit/dev (+https://github.com/fintamas01/geoaudit)"
}

func setupLogging(cfg *config.AuditConfig) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.FilePath = cfg.LogFile
	logCfg.JSON = cfg.LogFile != ""
	return logging.SetDefault(logCfg)
}

func runnerOptions(cfg *config.AuditConfig) audit.Options {
	return audit.Options{
		MaxPages:      cfg.MaxPages,
		FetchTimeout:  cfg.FetchTimeout,
		CrawlDeadline: cfg.CrawlDeadline,
		Delay:         cfg.RequestDelay,
		UserAgent:     cfg.UserAgent,
	}
}

func runAudit(cmd *cobra.Command, args []string) error {
	showConfig, _ := cmd.Flags().GetBool("show-config")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if showConfig {
		return showCurrentConfig(cfg)
	}

	if len(args) == 0 {
		return fmt.Errorf("a URL to audit is required\nUsage: %s [URL]", os.Args[0])
	}

	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	runner := audit.NewRunner(runnerOptions(cfg))
	result, err := runner.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cfg.DatabasePath != "" {
		store, err := storage.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open audit history: %w", err)
		}
		defer func() { _ = store.Close() }()
		if _, err := store.SaveAudit(result); err != nil {
			return fmt.Errorf("failed to persist audit: %w", err)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func showCurrentConfig(cfg *config.AuditConfig) error {
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current geoaudit configuration\n")
	fmt.Printf("# Config file search path: ./geoaudit.yml\n")
	fmt.Printf("# Environment variable prefix: GEOAUDIT_\n\n")
	fmt.Print(string(yamlData))
	return nil
}
