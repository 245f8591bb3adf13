// Command vsancheck queries a vCenter's vSAN subsystem and prints
// health and capacity reports for a named cluster.
package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"vsancheck/pkg/config"
)

var (
	configFile string
	verbose    bool
	noColor    bool

	flagHost     string
	flagPort     int
	flagUser     string
	flagPassword string
	flagCluster  string
	flagInsecure bool
	flagTimeout  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vsancheck",
		Short: "vSAN cluster health and capacity reports",
		Long: `vsancheck queries a vCenter's vSAN subsystem and prints colorized
health and capacity reports for a named cluster.

All checks are computed by vCenter; vsancheck invokes the read-only
query operations and renders the results.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.PersistentFlags().StringVarP(&flagHost, "host", "s", "", "vCenter host to connect to")
	rootCmd.PersistentFlags().IntVarP(&flagPort, "port", "o", config.DefaultPort, "vCenter port to connect on")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "username when connecting to the host")
	rootCmd.PersistentFlags().StringVarP(&flagPassword, "password", "p", "", "password when connecting to the host (prompted when omitted)")
	rootCmd.PersistentFlags().StringVar(&flagCluster, "cluster", config.DefaultCluster, "vSAN cluster name")
	rootCmd.PersistentFlags().BoolVarP(&flagInsecure, "insecure", "k", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", config.DefaultTimeoutSeconds, "operation timeout in seconds")

	rootCmd.AddCommand(
		checkCmd(),
		capacityCmd(),
		healthCmd(),
		hclCmd(),
		objectsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("vsancheck v0.1.0")
		},
	}
}

func setupLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		// Reports go to stdout; keep routine logging out of the way.
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, _ := cfg.Build()
	return logger
}

// resolveConfig merges the config sources: flags override the config file,
// the file overrides environment variables, env overrides defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.LoadFromEnv()

	if configFile != "" {
		fileCfg, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("host") || cfg.Host == "" {
		cfg.Host = flagHost
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("user") || cfg.User == "" {
		cfg.User = flagUser
	}
	if flags.Changed("password") {
		cfg.Password = flagPassword
	}
	if flags.Changed("cluster") {
		cfg.Cluster = flagCluster
	}
	if flags.Changed("insecure") {
		cfg.Insecure = flagInsecure
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = flagTimeout
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Password == "" {
		password, err := promptPassword(cfg.Host, cfg.User)
		if err != nil {
			return nil, err
		}
		cfg.Password = password
	}

	return cfg, nil
}

func promptPassword(host, user string) (string, error) {
	fmt.Fprintf(os.Stderr, "Enter password for host %s and user %s: ", host, user)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
