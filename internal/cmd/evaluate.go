package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zerospeech/zrc2021/internal/config"
	"github.com/zerospeech/zrc2021/internal/logging"
	"github.com/zerospeech/zrc2021/internal/pipeline"
	"github.com/zerospeech/zrc2021/internal/report"
	"github.com/zerospeech/zrc2021/internal/tracks"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate DATASET SUBMISSION",
	Short: "Score a submission against a gold dataset",
	Long: `Evaluate scores the submission (a directory or zip archive) against
the gold dataset, writing one CSV score file per track, split and
stratification into the output directory.

The dev split is always scored. Organizers can score the held-out test
split by pointing ` + testGoldEnv + ` at the full gold dataset; its
value replaces the DATASET argument as the gold root.`,
	Args: cobra.ExactArgs(2),
	RunE: runEvaluate,
}

var (
	evaluateOutput      string
	evaluateNoPhonetic  bool
	evaluateNoLexical   bool
	evaluateNoSyntactic bool
	evaluateNoSemantic  bool
)

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "output-directory", "o", "", "directory to write score files into (default from config, else \".\")")
	evaluateCmd.Flags().BoolVar(&evaluateNoPhonetic, "no-phonetic", false, "skip the phonetic track")
	evaluateCmd.Flags().BoolVar(&evaluateNoLexical, "no-lexical", false, "skip the lexical track")
	evaluateCmd.Flags().BoolVar(&evaluateNoSyntactic, "no-syntactic", false, "skip the syntactic track")
	evaluateCmd.Flags().BoolVar(&evaluateNoSemantic, "no-semantic", false, "skip the semantic track")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	output := evaluateOutput
	if output == "" {
		output = cfg.Output.Directory
	}

	skip := map[tracks.Track]bool{
		tracks.Phonetic:  evaluateNoPhonetic || cfg.Tracks.NoPhonetic,
		tracks.Lexical:   evaluateNoLexical || cfg.Tracks.NoLexical,
		tracks.Syntactic: evaluateNoSyntactic || cfg.Tracks.NoSyntactic,
		tracks.Semantic:  evaluateNoSemantic || cfg.Tracks.NoSemantic,
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level)

	result, err := pipeline.Run(cmd.Context(), pipeline.Config{
		Dataset:    args[0],
		Submission: args[1],
		Output:     output,
		TestGold:   os.Getenv(testGoldEnv),
		Skip:       skip,
	}, pipeline.WithLogger(log))
	if err != nil {
		return err
	}

	report.Summary(cmd.OutOrStdout(), result.Written)
	return nil
}
