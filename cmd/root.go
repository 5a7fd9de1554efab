package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"xxh/internal/app"
	"xxh/internal/config"
	"xxh/internal/coordinator"
	"xxh/internal/processor"
	"xxh/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg     *config.Config
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xxh [flags] FILE...",
	Short: "xxh - xxHash64 checksums with live progress",
	Long: `xxh computes the xxHash64 checksum of each file given on the command line.

While a file is being hashed, a status line shows throughput, percent
complete and the estimated time remaining. Once hashing finishes, the status
line is replaced by the digest:

  <16 hex digits>  <file>

Files are processed one at a time. The first file that cannot be opened or
read aborts the run.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize viper configuration
		if err := initConfig(); err != nil {
			return err
		}

		c, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		configureLogging(cmd.ErrOrStderr(), cfg.Verbose)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHashApp(cmd, args)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.xxh.yaml)")
	flags.Uint64P("seed", "s", 0, "xxHash64 seed")
	flags.String("chunk-size", "64KB", "read buffer size (accepts KB, MB suffixes)")
	flags.Duration("interval", config.NewDefaultConfig().Progress.Interval, "delay between progress redraws")
	flags.String("style", config.StyleLine, "progress style: line, bar or none")
	flags.BoolP("quiet", "q", false, "print digests only")
	flags.BoolP("verbose", "v", false, "log diagnostics to stderr")

	// Bind flags to viper so they override config file and environment
	cobra.CheckErr(bindFlags(viper.GetViper(), rootCmd, flagBindings))

	// Set up viper environment variable support, e.g. XXH_HASH_SEED
	viper.SetEnvPrefix("XXH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())
}

// flagBindings maps config keys to the persistent flags that override them
var flagBindings = map[string]string{
	config.KeySeed:      "seed",
	config.KeyChunkSize: "chunk-size",
	config.KeyInterval:  "interval",
	config.KeyStyle:     "style",
	config.KeyQuiet:     "quiet",
	config.KeyVerbose:   "verbose",
}

// bindFlags binds each flag in bindings to its config key
func bindFlags(v *viper.Viper, cmd *cobra.Command, bindings map[string]string) error {
	for key, name := range bindings {
		flag := cmd.PersistentFlags().Lookup(name)
		if flag == nil {
			return fmt.Errorf("failed to bind %s: unknown flag --%s", key, name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// initConfig reads in config file and ENV variables. An explicit --config
// file must be readable; the default $HOME/.xxh.yaml may be absent.
func initConfig() error {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		log.Printf("Using config file: %s", viper.ConfigFileUsed())
		return nil
	}

	// Find home directory
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not find home directory: %v", err)
		return nil
	}

	// Search config in home directory with name ".xxh" (without extension)
	viper.AddConfigPath(home)
	viper.SetConfigType("yaml")
	viper.SetConfigName(".xxh")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	log.Printf("Using config file: %s", viper.ConfigFileUsed())
	return nil
}

// configureLogging routes diagnostics to w in verbose mode and discards them otherwise
func configureLogging(w io.Writer, verbose bool) {
	if verbose {
		log.SetOutput(w)
		return
	}
	log.SetOutput(io.Discard)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createContext creates a context that cancels on interrupt signals
func createContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// createRenderer picks the progress display for the configured style.
// Live progress is only drawn on terminals.
func createRenderer(out, errOut io.Writer) ui.ProgressRenderer {
	if cfg.Progress.Quiet || cfg.Progress.Style == config.StyleNone {
		return ui.NewConsoleUI(out, false)
	}
	if cfg.Progress.Style == config.StyleBar && ui.IsTerminal(errOut) {
		return ui.NewProgressUI(out, errOut, cfg.Progress.Interval)
	}
	return ui.NewConsoleUI(out, ui.IsTerminal(out))
}

// runHashApp creates and runs the hashing application
func runHashApp(cmd *cobra.Command, files []string) error {
	ctx, cancel := createContext()
	defer cancel()

	renderer := createRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr())
	hashApp := app.NewHashApp(processor.NewFileService(), coordinator.NewHashCoordinator(cfg, renderer))

	return hashApp.Run(ctx, &app.HashOptions{Files: files})
}
