// internal/cli/root.go
package getllm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/getllm/getllm/internal/appconfig"
	"github.com/getllm/getllm/internal/catalog"
	"github.com/getllm/getllm/internal/envfile"
	"github.com/getllm/getllm/internal/logging"
	"github.com/getllm/getllm/internal/manager"
	"github.com/getllm/getllm/internal/runtime"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	warnText    = color.New(color.FgYellow).SprintFunc()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "getllm",
	Short: "getllm — model manager and runner for local Ollama workflows",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		if !cmd.Flags().Changed("debug") {
			val := viper.GetBool("debug")
			_ = cmd.Flags().Set("debug", strconv.FormatBool(val))
		}
		for _, name := range []string{"envFile", "modelsDir", "catalogUrl", "runtimeBinary", "serverUrl", "logFile"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("timeoutSeconds") {
			_ = cmd.Flags().Set("timeoutSeconds", strconv.Itoa(viper.GetInt("timeoutSeconds")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("envFile", "", "env file holding the default model key")
	rootCmd.PersistentFlags().String("modelsDir", "", "directory for the catalog snapshot")
	rootCmd.PersistentFlags().String("catalogUrl", "", "remote model catalog URL")
	rootCmd.PersistentFlags().String("runtimeBinary", "", "runtime executable name or path")
	rootCmd.PersistentFlags().String("serverUrl", "", "runtime server base URL")
	rootCmd.PersistentFlags().Int("timeoutSeconds", 0, "request timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("envFile", rootCmd.PersistentFlags().Lookup("envFile"))
	_ = viper.BindPFlag("modelsDir", rootCmd.PersistentFlags().Lookup("modelsDir"))
	_ = viper.BindPFlag("catalogUrl", rootCmd.PersistentFlags().Lookup("catalogUrl"))
	_ = viper.BindPFlag("runtimeBinary", rootCmd.PersistentFlags().Lookup("runtimeBinary"))
	_ = viper.BindPFlag("serverUrl", rootCmd.PersistentFlags().Lookup("serverUrl"))
	_ = viper.BindPFlag("timeoutSeconds", rootCmd.PersistentFlags().Lookup("timeoutSeconds"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded resolves which config file exists (flag path, default,
// or legacy fallback) and points viper at it. No file at the default path is
// fine: every setting has a working default.
func ensureConfigLoaded() error {
	cfg, err := appconfig.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.ConfigPath == "" {
		return nil
	}

	viper.SetConfigFile(cfg.ConfigPath)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// activeConfig returns the loaded configuration, or defaults when a command
// runs without the root PersistentPreRunE (tests call RunE directly).
func activeConfig() *appconfig.Config {
	if currentConfig != nil {
		return currentConfig
	}
	return &appconfig.Config{}
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// newManager wires the model manager from the active configuration.
func newManager() *manager.Manager {
	cfg := activeConfig()
	store := envfile.New(cfg.EnvFilePath(), cfg.EnvTemplatePath())
	fetcher := catalog.NewFetcher(cfg.CatalogEndpoint(), cfg.RequestTimeout())
	cat := catalog.New(fetcher, cfg.CachePath(), cfg.CatalogMaxAge())
	return manager.New(store, cat, runtime.NewExec(cfg.Binary()))
}

// newServer wires the runtime server controller from the active configuration.
func newServer() *runtime.Server {
	cfg := activeConfig()
	return runtime.NewServer(cfg.Binary(), cfg.ServerBaseURL(), 0)
}

// function aliases allow tests to substitute collaborators.
var (
	// newManagerFunc proxies newManager so command tests can inject fakes.
	newManagerFunc = newManager
	// newServerFunc proxies newServer so command tests can inject fakes.
	newServerFunc = newServer
)

// tolerateStale downgrades a stale-cache fallback to a printed warning and
// returns any other error unchanged.
func tolerateStale(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	var stale *catalog.StaleFallbackError
	if errors.As(err, &stale) {
		fmt.Fprintln(out, warnText(err.Error()))
		return nil
	}
	return err
}
