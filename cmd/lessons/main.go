package main

import (
	"fmt"
	"os"
	"path/filepath"

	lessons "github.com/goliatone/go-lessons"
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "lessons",
	Short:         "Manage lesson content blocks",
	Long:          "Import, list, reorder and delete lesson content blocks stored in a SQLite database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $LESSONS_DB or ./lessons.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("LESSONS_DB"); env != "" {
		return env
	}
	return filepath.Join(".", "lessons.db")
}

func moduleConfig(path string) lessons.Config {
	cfg := lessons.DefaultConfig()
	cfg.Storage.Provider = lessons.StorageBun
	cfg.Storage.Dialect = lessons.DialectSQLite
	cfg.Storage.DSN = "file:" + path + "?_foreign_keys=on"
	cfg.Logging.Level = logLevel
	cfg.Logging.Fields = map[string]any{"service": "lessons-cli"}
	return cfg
}

func openModule() (*lessons.Module, error) {
	return lessons.New(moduleConfig(getDBPath()))
}
