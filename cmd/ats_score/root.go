package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-score/config"
	"github.com/gcbaptista/go-ats-score/internal/lexicon"
	"github.com/gcbaptista/go-ats-score/internal/scoring"
)

const app = "ats-score"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "ats-score rates how well a resume matches a job description",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
	}
)

func init() {
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-score.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("lexicon", "", "synset file (YAML, or WordNet wn_s.pl) used instead of the embedded lexicon")

	_ = viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("lexicon.path", rootCmd.PersistentFlags().Lookup("lexicon"))
}

// initConfig reads the config file. Without --config a missing
// ats-score.yaml is not an error.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}

// newScorer loads the configured lexicon and builds the scorer.
func newScorer(settings *config.Settings, logger *zap.Logger) (*scoring.Scorer, error) {
	var (
		lex *lexicon.Lexicon
		err error
	)

	if settings.Lexicon.Path != "" {
		lex, err = lexicon.LoadFile(settings.Lexicon.Path)
	} else {
		lex, err = lexicon.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}

	logger.Debug("lexicon loaded",
		zap.String("path", settings.Lexicon.Path),
		zap.Int("synsets", lex.Size()),
	)

	return scoring.NewScorer(lex, settings.Weights), nil
}
