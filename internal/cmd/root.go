// Package cmd wires the command line surface. Every validation failure
// surfaces as a single ERROR line on stderr and a non-zero exit; usage
// errors keep cobra's normal reporting.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zerospeech/zrc2021/internal/config"
)

// testGoldEnv is the organizer override: when set, its value replaces the
// gold dataset root and the held-out test split is scored in addition to
// dev.
const testGoldEnv = "ZEROSPEECH2021_TEST_GOLD"

var rootCmd = &cobra.Command{
	Use:   "zrc2021",
	Short: "Evaluate ZeroSpeech 2021 submissions",
	Long: `zrc2021 scores a speech representation submission against a gold
dataset across four tracks: phonetic, lexical, syntactic and semantic.
Submissions may be plain directories or zip archives.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/zrc2021/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ZRC2021")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}
