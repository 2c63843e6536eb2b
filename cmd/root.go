package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"demodoc/api"
	"demodoc/browser"

	"github.com/spf13/cobra"
)

var (
	// These variables are set via ldflags during build
	Version   = "dev"
	GitCommit = "none"
)

// Flags
var (
	noServe     bool
	host        string
	repoRoot    string
	watchState  bool
	openBrowser bool
	printDoc    bool
	verbose     bool
)

// getVersionString returns the full version information
func getVersionString() string {
	return fmt.Sprintf("%s (Commit: %s)", Version, GitCommit)
}

// rootCmd generates the demo workflow and, unless --no-serve is set, previews it.
var rootCmd = &cobra.Command{
	Use:   "demodoc",
	Short: "Generate the Skyforge demo workflow document from terraform outputs.",
	Long: `demodoc reads "terraform output -json", renders docs/demo-workflow.md and serves
a local preview of it until interrupted.

When terraform or its state is unavailable the document is still written, with
placeholders where output values would go.`,
	Version: getVersionString(),
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}

		cfg, err := loadConfig(repoRoot)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = host
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := run(ctx, cfg); err != nil {
			slog.Error("demodoc failed", "error", err)
			stop()
			os.Exit(1)
		}
	},
}

func run(ctx context.Context, cfg Config) error {
	warnUndeclaredOutputs(cfg.RepoRoot)

	gen := newGenerator(cfg)
	content, err := gen.generate(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", cfg.displayPath(cfg.DocPath))

	if printDoc {
		fmt.Print(renderForTerminal(content))
	}

	if noServe {
		return nil
	}

	if watchState {
		statePath := filepath.Join(cfg.RepoRoot, stateFileName)
		watcher, err := api.NewStateWatcher(statePath, api.DefaultDebounce, func() {
			if _, err := gen.generate(ctx); err != nil {
				slog.Error("Failed to regenerate document", "error", err)
				return
			}
			slog.Info("Document regenerated", "path", cfg.displayPath(cfg.DocPath))
		})
		if err != nil {
			return fmt.Errorf("failed to watch terraform state: %w", err)
		}
		defer watcher.Close()
	}

	srv, err := api.NewServer(api.ServerConfig{
		Host:         resolveHost(cfg.Host),
		DocPath:      cfg.DocPath,
		AllowOrigins: cfg.AllowOrigins,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Serving demo workflow at %s (Ctrl+C to stop)\n", srv.URL())
	if openBrowser {
		browser.Open(srv.URL())
	}

	err = srv.Serve(ctx)
	fmt.Println("\nStopping documentation server")
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&noServe, "no-serve", false,
		"Do not launch the local documentation server")
	rootCmd.Flags().StringVar(&host, "host", defaultHost,
		"Host interface for the local server (0.0.0.0 resolves to this machine's address)")
	rootCmd.Flags().StringVar(&repoRoot, "repo-root", ".",
		"Repository root containing bin/terraform, the terraform configuration and docs/")
	rootCmd.Flags().BoolVar(&watchState, "watch", false,
		"Regenerate the document whenever terraform.tfstate changes while serving")
	rootCmd.Flags().BoolVar(&openBrowser, "open", false,
		"Open the preview in the default browser")
	rootCmd.Flags().BoolVar(&printDoc, "print", false,
		"Print the rendered document to the terminal")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Hide the completion command from help
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}
