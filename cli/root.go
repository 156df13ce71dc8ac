package main

import (
	"os"
	"strings"

	statusboard "github.com/castawaylabs/status-board"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "status-board",
	Short: "Status page board: summary, incidents and maintenance as cards",
	Long: `status-board fetches component, incident and scheduled maintenance
feeds from a public status page and renders them as cards, either served
as a web page (serve) or printed once (show).`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "config file or http(s) URL (yaml or json)")
	pf.String("log", "", "log output file (default stdout)")
	pf.String("log-format", "text", "log format [text/json]")
	pf.String("name", "", "system name shown on the board")
	pf.String("url", "", "status page base URL")
	pf.String("listen", "", "listen address for serve (default :8080)")
	pf.BoolP("verbose", "v", false, "debug logging")

	for _, name := range []string{"config", "log", "log-format", "name", "url", "listen", "verbose"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}

	viper.SetEnvPrefix("statusboard")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(getLogger())
	if viper.GetString("log-format") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	return nil
}

func getLogger() *os.File {
	logPath := viper.GetString("log")
	if len(logPath) == 0 {
		return os.Stdout
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.Errorf("Unable to open file '%v' for logging: \n%v", logPath, err)
		os.Exit(1)
	}

	return file
}

// loadConfig reads the config file, applies flag and environment overrides
// and validates the result.
func loadConfig() (*statusboard.StatusBoard, error) {
	cfg, err := statusboard.New(viper.GetString("config"))
	if err != nil {
		return nil, err
	}

	if name := viper.GetString("name"); len(name) > 0 {
		cfg.SystemName = name
	}
	if url := viper.GetString("url"); len(url) > 0 {
		cfg.SetBackendOption("url", url)
	}
	if listen := viper.GetString("listen"); len(listen) > 0 {
		cfg.Listen = listen
	}

	if valid := cfg.Validate(); !valid {
		return nil, errInvalidConfig
	}

	logrus.Debug("Configuration valid")

	return cfg, nil
}
