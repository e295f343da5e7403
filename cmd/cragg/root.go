package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/adrg/xdg"
	log "github.com/sirupsen/logrus"
	logwriter "github.com/sirupsen/logrus/hooks/writer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kreyling/cragg/internal/config"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/pkg/cmd/adm"
	"github.com/kreyling/cragg/pkg/cmd/exp"
	"github.com/kreyling/cragg/pkg/cmd/report"
	"github.com/kreyling/cragg/pkg/cmd/serve"
	"github.com/kreyling/cragg/pkg/version"
)

const (
	logFile   = "cragg.log"
	envPrefix = "CRAGG"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cragg",
	Short: "Cucumber regression aggregation dashboard",
	Long:  `cragg collects the cucumber reports of the latest builds of a Jenkins job into a feature by build matrix, flagging builds whose failures look like an environment outage`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error

		// Validate logging level
		loglevel := viper.GetString(config.KeyLogLevel)
		logrusLevel, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)

		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})

		log.SetOutput(os.Stdout)
		fdLog, err := os.OpenFile(logFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			log.Errorf("error opening file %s: %v", logFile, err)
		} else {
			log.AddHook(&logwriter.Hook{
				Writer: fdLog,
				LogLevels: []log.Level{
					log.PanicLevel,
					log.FatalLevel,
					log.ErrorLevel,
					log.WarnLevel,
					log.InfoLevel,
					log.DebugLevel,
				},
			})
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Interrupting the process cancels the requests in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initBindFlag(flag string) {
	err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	if err != nil {
		log.Warnf("Unable to bind flag %s\n", flag)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/cragg/config.yaml)")
	flags.String(config.KeyJenkinsURL, "", "Jenkins base URL, e.g. https://jenkins.example.com/")
	flags.String(config.KeyJob, "", "job path below the Jenkins URL, e.g. view/tests/job/acceptance-tests")
	flags.String(config.KeyLogLevel, "info", "logging level")
	flags.Int(config.KeyBuilds, config.DefaultBuilds, "number of most recent builds to collect, 0 for all")
	flags.Int(config.KeyConcurrency, jenkins.DefaultConcurrency, "maximum number of requests in flight to Jenkins")
	flags.Duration(config.KeyTimeout, jenkins.DefaultTimeout, "timeout of each request to Jenkins")
	flags.Int(config.KeyRetries, jenkins.DefaultRetryMax, "retries of a failed request to Jenkins")
	for _, key := range []string{
		config.KeyJenkinsURL,
		config.KeyJob,
		config.KeyLogLevel,
		config.KeyBuilds,
		config.KeyConcurrency,
		config.KeyTimeout,
		config.KeyRetries,
	} {
		initBindFlag(key)
	}

	// Link in child commands
	rootCmd.AddCommand(report.NewCmdReport())
	rootCmd.AddCommand(serve.NewCmdServe())
	rootCmd.AddCommand(adm.NewCmdAdm())
	rootCmd.AddCommand(exp.NewCmdExp())
	rootCmd.AddCommand(version.NewCmdVersion())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "cragg"))
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			log.Warnf("Unable to read config file: %v", err)
		}
		return
	}
	log.Debugf("Using config file %s", viper.ConfigFileUsed())
}
