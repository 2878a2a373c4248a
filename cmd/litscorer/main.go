// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litscorer CLI. It searches
// Europe PMC, scores authors by byline position, and renders their names
// in katakana.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/litscorer/internal/export"
	"github.com/pdiddy/litscorer/internal/logger"
	"github.com/pdiddy/litscorer/internal/search"
	"github.com/pdiddy/litscorer/internal/secrets"
	"github.com/pdiddy/litscorer/internal/store"
	"github.com/pdiddy/litscorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// log is built from the log config before any subcommand runs.
	log = zap.NewNop()

	// loadedSecrets holds values loaded from the secrets directory at startup.
	loadedSecrets = secrets.Secrets{}
)

// rootCmd is the base command for the litscorer CLI.
var rootCmd = &cobra.Command{
	Use:   "litscorer",
	Short: "Find and score researchers in Europe PMC literature",
	Long: `litscorer searches Europe PMC for articles matching a disease, keywords,
or department, expands every byline into author rows, and scores each author
(2 points as first author, 1 as co-author) per main affiliation. Author names
are rendered in katakana with a rule-based transliterator backed by override
dictionaries; reviewed renderings can be confirmed and are reused.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var lc types.LogConfig
		if err := viper.UnmarshalKey("log", &lc); err != nil {
			return fmt.Errorf("decoding log config: %w", err)
		}
		l, err := logger.New(lc)
		if err != nil {
			return err
		}
		log = l
		cmd.SetContext(logger.WithLogger(cmd.Context(), log))
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug("using config file", zap.String("path", used))
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			log.Debug("loaded secrets", zap.Strings("keys", lo.Keys(s)))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./litscorer.yaml or ~/.config/litscorer/litscorer.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files (contact-email)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	rootCmd.PersistentFlags().String("db", "", "confirmation store database (default litscorer.db)")

	lo.Must0(viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))
	lo.Must0(viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")))
	lo.Must0(viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db")))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("litscorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "litscorer"))
		}
	}

	// A .env file in the working directory may supply LITSCORER_* and LOG_LEVEL.
	_ = godotenv.Load()

	viper.SetEnvPrefix("LITSCORER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// setDefaults registers every config key so that environment variables
// and Unmarshal see them even without a config file.
func setDefaults() {
	viper.SetDefault("search.timeout", 60*time.Second)
	viper.SetDefault("search.user_agent", "litscorer/"+version)
	viper.SetDefault("search.max_rows", search.DefaultMaxRows)
	viper.SetDefault("search.page_size", search.MaxPageSize)
	viper.SetDefault("search.page_delay", search.DefaultPageDelay)
	viper.SetDefault("search.synonym", false)
	viper.SetDefault("search.relax_if_zero", true)
	viper.SetDefault("search.max_retries", 5)

	viper.SetDefault("kana.long_vowel", true)
	viper.SetDefault("kana.surname_long_o", true)
	viper.SetDefault("kana.overrides_files", []string{})
	viper.SetDefault("kana.workers", 8)

	viper.SetDefault("export.encoding", string(types.EncodingUTF8BOM))
	viper.SetDefault("export.rows_file", "")
	viper.SetDefault("export.scores_file", "")

	viper.SetDefault("store.path", store.DefaultPath)

	viper.SetDefault("log.level", "")
	viper.SetDefault("log.format", logger.FormatConsole)
}

// flagBinding ties a command flag to a config key. Bindings are applied
// when the command runs so that commands sharing a key do not collide.
type flagBinding struct {
	key  string
	flag string
}

// loadConfig binds the command's flags and decodes the merged
// configuration (flags over environment over file over defaults).
func loadConfig(cmd *cobra.Command, bindings ...flagBinding) (types.Config, error) {
	for _, b := range bindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil {
			return types.Config{}, fmt.Errorf("unknown flag %q bound to %s", b.flag, b.key)
		}
		if err := viper.BindPFlag(b.key, f); err != nil {
			return types.Config{}, fmt.Errorf("binding flag %s: %w", b.flag, err)
		}
	}
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Export.Encoding == "" {
		cfg.Export.Encoding = types.EncodingUTF8BOM
	}
	return cfg, nil
}

// openStore opens the confirmation store named by the config.
func openStore(cfg types.Config) (*store.Store, error) {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", cfg.Store.Path, err)
	}
	return s, nil
}

// writeCSVFile writes a CSV export to path, doing nothing when path is
// empty.
func writeCSVFile(path, what string, write func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	if err := export.WriteFile(path, write); err != nil {
		return err
	}
	log.Info("wrote "+what, zap.String("path", path))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
