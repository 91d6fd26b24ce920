package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gcbaptista/go-resume-matcher/config"
)

const app = "resume-matcher"

// rootOptions is shared by every subcommand.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           app,
		Short:         "resume-matcher scores how well a resume fits a job description",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging and match output")

	_ = opts.v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = opts.v.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(
		newServeCmd(opts),
		newMatchCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// initConfig loads .env into the environment and reads the config file.
// Without --config a missing resume-matcher.yaml is not an error.
func (o *rootOptions) initConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		return nil
	}

	o.v.AddConfigPath(".")
	o.v.SetConfigName(app)
	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func (o *rootOptions) loadConfig() (*config.ServerConfig, error) {
	return config.Load(o.v)
}
