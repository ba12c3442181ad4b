package lexical

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const goldCSV = `filename,id,voice,frequency,word,length,correct
w1_v1,1,v1,oov,blick,5,1
n1_v1,1,v1,oov,blick,5,0
w1_v2,1,v2,oov,blick,5,1
n1_v2,1,v2,oov,blick,5,0
w2_v1,2,v1,1-5,table,5,1
n2_v1,2,v1,1-5,table,5,0
w3_v1,3,v1,oov,cat,3,1
n3_v1,3,v1,oov,cat,3,0
`

const predictions = `w1_v1 -1.0
n1_v1 -2.0
w1_v2 -3.0
n1_v2 -1.0
w2_v1 -1.5
n2_v1 -1.5
w3_v1 -0.5
n3_v1 -4.0
`

func writeInputs(t *testing.T, gold, preds string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	goldFile := filepath.Join(dir, "gold.csv")
	subFile := filepath.Join(dir, "dev.txt")
	require.NoError(t, os.WriteFile(goldFile, []byte(gold), 0o644))
	require.NoError(t, os.WriteFile(subFile, []byte(preds), 0o644))
	return goldFile, subFile
}

func TestEvaluate(t *testing.T) {
	goldFile, subFile := writeInputs(t, goldCSV, predictions)

	byPair, byFrequency, byLength, err := Evaluate(goldFile, subFile)
	require.NoError(t, err)

	// Pair 1: voice v1 wins (1), voice v2 loses (0) -> mean 0.5 over n=2.
	// Pair 2: tie -> 0.5. Pair 3: win -> 1.
	require.Equal(t, []string{"id", "word", "frequency", "length", "n", "score"}, byPair.Columns)
	require.Equal(t, [][]string{
		{"1", "blick", "oov", "5", "2", "0.5000"},
		{"2", "table", "1-5", "5", "1", "0.5000"},
		{"3", "cat", "oov", "3", "1", "1.0000"},
	}, byPair.Rows())

	// Frequency buckets in gold order, averaging (id, voice) pair scores:
	// oov holds 1, 0 and 1; the 1-5 bucket holds the tie.
	require.Equal(t, []string{"frequency", "n", "score"}, byFrequency.Columns)
	require.Equal(t, [][]string{
		{"oov", "3", "0.6667"},
		{"1-5", "1", "0.5000"},
	}, byFrequency.Rows())

	// Lengths ascending: 3 then 5.
	require.Equal(t, [][]string{
		{"3", "1", "1.0000"},
		{"5", "3", "0.5000"},
	}, byLength.Rows())
}

func TestEvaluate_MissingPrediction(t *testing.T) {
	goldFile, subFile := writeInputs(t, goldCSV, "w1_v1 -1.0\n")

	_, _, _, err := Evaluate(goldFile, subFile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no predicted score")
}

func TestEvaluate_MissingGold(t *testing.T) {
	dir := t.TempDir()
	subFile := filepath.Join(dir, "dev.txt")
	require.NoError(t, os.WriteFile(subFile, []byte("a 1\n"), 0o644))

	_, _, _, err := Evaluate(filepath.Join(dir, "gold.csv"), subFile)
	require.Error(t, err)
}

func TestEvaluate_IncompletePair(t *testing.T) {
	gold := "filename,id,voice,frequency,word,length,correct\nw1_v1,1,v1,oov,blick,5,1\n"
	goldFile, subFile := writeInputs(t, gold, "w1_v1 -1.0\n")

	_, _, _, err := Evaluate(goldFile, subFile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "incomplete pair")
}

func TestEvaluate_Deterministic(t *testing.T) {
	goldFile, subFile := writeInputs(t, goldCSV, predictions)

	first, _, _, err := Evaluate(goldFile, subFile)
	require.NoError(t, err)
	second, _, _, err := Evaluate(goldFile, subFile)
	require.NoError(t, err)

	require.Equal(t, first.Rows(), second.Rows())
}
