package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Shaoyanting/HT-financial-system/cmd/htfs/internal/output"
	"github.com/Shaoyanting/HT-financial-system/internal/dataaccess"
	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/permission"
	"github.com/Shaoyanting/HT-financial-system/internal/session"
	"github.com/Shaoyanting/HT-financial-system/internal/storage"
	"github.com/Shaoyanting/HT-financial-system/internal/transport"
	"github.com/Shaoyanting/HT-financial-system/pkg/logger"
)

var (
	cfgFile string
	format  string

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
)

var rootCmd = &cobra.Command{
	Use:   "htfs",
	Short: "HT Financial System - portfolio dashboard in your terminal",
	Long: titleStyle.Render(`
╔═══════════════════════════════════════════════════════════╗
║  HT Financial System CLI - Portfolio Dashboard            ║
╚═══════════════════════════════════════════════════════════╝
`) + `
Inspect your portfolio from the terminal. Works against the API when
reachable and falls back to generated demo data when offline.

Get started:
  htfs auth login      Login to your account
  htfs dashboard       Portfolio overview
  htfs assets          Holdings grid
  htfs --help          Show all commands`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.htfs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table, json")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	// Keep the terminal clean; diagnostics only on real problems.
	logger.Init("htfs", "warn", true)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			output.Error(err.Error())
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".htfs")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			output.Error("creating config dir: " + err.Error())
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetDefault("api_url", "http://localhost:8080/api")
	viper.SetDefault("access_timeout", 10*time.Second)
	viper.SetDefault("format", "table")

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func getFormat() string {
	if format != "" && format != "table" {
		return format
	}
	return viper.GetString("format")
}

// clientStore opens the persistent client state under ~/.htfs.
func clientStore() (storage.Store, error) {
	store, err := storage.NewFileStore("")
	if err != nil {
		return nil, fmt.Errorf("failed to open state dir: %w", err)
	}
	return store, nil
}

// newService wires the full client stack: file-backed session, HTTP
// transport against the configured API and generator-backed fallback.
func newService() (*dataaccess.Service, *session.Session, error) {
	store, err := clientStore()
	if err != nil {
		return nil, nil, err
	}
	sess := session.New(store)
	client := transport.New(viper.GetString("api_url"), sess, transport.Hooks{
		Error: output.Error,
	})
	svc := dataaccess.New(client, sess, mockdata.NewRandom(), viper.GetDuration("access_timeout"))
	return svc, sess, nil
}

// newPermissionService opens the page permission rules stored alongside the
// session.
func newPermissionService() (*permission.Service, error) {
	store, err := clientStore()
	if err != nil {
		return nil, err
	}
	return permission.New(store), nil
}
