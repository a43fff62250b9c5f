/*
Copyright © 2024 Matt Muldowney <matt.muldowney@gmail.com>

*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	palettesFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seasonmatch",
	Short: "Scores garment colors against seasonal color palettes",
	Long: `seasonmatch finds the dominant colors of a garment image and ranks
the seasonal color palettes they sit closest to, by CIE76 distance in
L*a*b* space. Lower scores mean closer matches.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		lvl := slog.LevelInfo
		if verbose {
			lvl = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if e := rootCmd.Execute(); e != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seasonmatch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&palettesFile, "palettes", "p", "", "season palettes file, json or yaml (default is the built-in palettes)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, e := homedir.Dir()
		if e != nil {
			fmt.Println(e)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".seasonmatch")
	}

	viper.SetEnvPrefix("seasonmatch")
	viper.AutomaticEnv()

	if e := viper.ReadInConfig(); e == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults fills flags the user left unset from the config file.
func setDefaults() {
	if palettesFile == "" {
		palettesFile = viper.GetString("palettes")
	}
}

// intDefault prefers an explicitly set flag, then a config value, then the
// flag's own default.
func intDefault(cmd *cobra.Command, name string, val int) int {
	if !cmd.Flags().Changed(name) && viper.IsSet(name) {
		return viper.GetInt(name)
	}
	return val
}

// stringDefault is intDefault for string flags.
func stringDefault(cmd *cobra.Command, name, val string) string {
	if !cmd.Flags().Changed(name) && viper.IsSet(name) {
		return viper.GetString(name)
	}
	return val
}
