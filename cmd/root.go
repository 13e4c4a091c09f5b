package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/autocare/autocare/internal/app"
	"github.com/autocare/autocare/internal/config"
	"github.com/autocare/autocare/internal/llm"
	"github.com/autocare/autocare/internal/logging"
	"github.com/autocare/autocare/internal/store"
)

// cfg is loaded before every command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "autocare",
	Short:        "Vehicle symptom diagnosis and repair cost estimates",
	Long:         "AutoCare matches a plain-language description of a vehicle problem to known symptoms and estimates urgency, repair cost and upcoming maintenance.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/autocare/autocare.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides AUTOCARE_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(partsCmd)
	rootCmd.AddCommand(mechanicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagBindings maps config keys to the flags that override them. Flags a
// command does not define are skipped.
var flagBindings = map[string]string{
	"db.path":     "db",
	"log.level":   "log-level",
	"log.format":  "log-format",
	"server.addr": "addr",
}

// initConfig loads configuration with flags taking precedence and installs
// the logger.
func initConfig(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	v := config.New(file)
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	logging.Init(level, c.Log.Format)
	cfg = c
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range flagBindings {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// resolveDBPath returns the configured database path (--db flag, then
// AUTOCARE_DB env var, then db.path) or the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

func openStore(ctx context.Context) (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openApp opens the store and builds the application. The returned cleanup
// waits for pending second opinions before closing the store.
func openApp(ctx context.Context) (*app.App, func(), error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := app.Options{
		Config:        cfg,
		DiagnosisRepo: st.DiagnosisRepo(),
	}
	if cfg.LLM.Enabled {
		provider, llmCfg, err := llm.NewProviderFromEnv(ctx, cfg.LLM.Provider, st.EventRepo())
		if err != nil {
			logging.New("cmd").Warn("LLM provider not configured, second opinions disabled", "error", err)
		} else {
			logging.New("cmd").Debug("LLM provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())
			opts.LLMProvider = provider
		}
	}

	a, err := app.New(opts)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return a, func() {
		a.Close()
		st.Close()
	}, nil
}
