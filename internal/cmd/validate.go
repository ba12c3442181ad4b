package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zerospeech/zrc2021/internal/dataset"
	"github.com/zerospeech/zrc2021/internal/staging"
	"github.com/zerospeech/zrc2021/internal/tracks"
	"github.com/zerospeech/zrc2021/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate DATASET SUBMISSION",
	Short: "Check a submission's structure without scoring it",
	Long: `Validate checks that the submission (a directory or zip archive)
contains every artifact an evaluation run would read: per-track and
per-split files matching the gold dataset's layout, plus a parseable
meta.yaml. No scores are computed.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

var (
	validateNoPhonetic  bool
	validateNoLexical   bool
	validateNoSyntactic bool
	validateNoSemantic  bool
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateNoPhonetic, "no-phonetic", false, "skip the phonetic track")
	validateCmd.Flags().BoolVar(&validateNoLexical, "no-lexical", false, "skip the lexical track")
	validateCmd.Flags().BoolVar(&validateNoSyntactic, "no-syntactic", false, "skip the syntactic track")
	validateCmd.Flags().BoolVar(&validateNoSemantic, "no-semantic", false, "skip the semantic track")
}

func runValidate(cmd *cobra.Command, args []string) error {
	gold, err := dataset.Resolve(dataset.Options{
		Root:     args[0],
		TestGold: os.Getenv(testGoldEnv),
	})
	if err != nil {
		return err
	}

	staged, err := staging.Stage(args[1])
	if err != nil {
		return err
	}
	defer staged.Release()

	skip := map[tracks.Track]bool{
		tracks.Phonetic:  validateNoPhonetic,
		tracks.Lexical:   validateNoLexical,
		tracks.Syntactic: validateNoSyntactic,
		tracks.Semantic:  validateNoSemantic,
	}
	if err := validate.Submission(gold, staged.Dir, gold.Splits, skip); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "submission is valid")
	return nil
}
