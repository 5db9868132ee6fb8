package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "survey_server"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "survey_server collects candidate surveys and reports how similarly candidates answered",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is survey.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	if err := viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Fatalf("binding debug flag: %v", err)
	}
	if err := viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		log.Fatalf("binding json flag: %v", err)
	}
}
