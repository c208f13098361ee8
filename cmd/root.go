package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "subdiv",
	Short: "Multi-resolution subdivision surface refiner",
	Long: "Subdiv refines polygonal meshes into multi-resolution subdivision hierarchies,\n" +
		"either uniformly to a fixed depth or adaptively around sharp and irregular features.",
}

var log = logrus.New()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .subdiv.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".subdiv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SUBDIV")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()

	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
}
