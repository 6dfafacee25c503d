// Package cmd is for command line interactions with the poag application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// logger writes progress and errors to stderr, keeping stdout free for
// the MSA output.
var logger = log.New(os.Stderr, "", 0)

// cfgFile is an optional explicit config path set with --config.
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "poag",
	Short: `Fold FASTA sequences into a partial order alignment graph.
Write the result back out as an MSA or a GFA variation graph`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./poag.yaml)")
}

// initConfig reads the config file into Viper if one exists.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("poag")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()
	viper.ReadInConfig()
}
