// Package testutil builds throwaway gold datasets and submissions for
// tests. The canonical fixture is small but internally consistent: every
// track scores cleanly against it and the expected values are stable.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates every entry of files under root, making parent
// directories as needed. Keys ending in a slash create empty directories.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", full, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

// Meta is a minimal valid metadata record declaring cosine/mean semantic
// parameters and a 10ms phonetic frame shift.
const Meta = `author: test author
affiliation: test lab
parameters:
  phonetic:
    metric: cosine
    frame_shift: 0.01
  semantic:
    metric: cosine
    pooling: mean
`

// Dataset creates a gold dataset under a fresh temp directory and returns
// its root. With no arguments it covers the dev split only.
func Dataset(t *testing.T, splits ...string) string {
	t.Helper()
	root := t.TempDir()
	WriteTree(t, root, DatasetFiles(splits...))
	return root
}

// DatasetFiles returns the file map of the canonical gold dataset for the
// given splits (dev when empty).
func DatasetFiles(splits ...string) map[string]string {
	if len(splits) == 0 {
		splits = []string{"dev"}
	}
	files := map[string]string{}
	for _, split := range splits {
		files["lexical/"+split+"/gold.csv"] = `filename,id,voice,frequency,word,length,correct
w1_v1,1,v1,oov,blick,5,1
n1_v1,1,v1,oov,blick,5,0
w2_v1,2,v1,1-5,table,5,1
n2_v1,2,v1,1-5,table,5,0
`
		files["syntactic/"+split+"/gold.csv"] = `filename,id,voice,type,correct
s1_v1,1,v1,anaphora,1
x1_v1,1,v1,anaphora,0
s2_v1,2,v1,agreement,1
x2_v1,2,v1,agreement,0
`
		files["semantic/"+split+"/gold.csv"] = `type,dataset,word_1,word_2,similarity
synthetic,simlex,cat,dog,8.5
synthetic,simlex,cat,car,1.5
synthetic,simlex,dog,car,2.0
`
		files["semantic/"+split+"/pairs.csv"] = `type,word,filename
synthetic,cat,cat_1.txt
synthetic,dog,dog_1.txt
synthetic,car,car_1.txt
`
		for _, subset := range []string{"clean", "other"} {
			files["phonetic/abx_features/"+split+"-"+subset+".item"] = phoneticItems
		}
	}
	return files
}

// Submission creates a submission matching Dataset under a fresh temp
// directory and returns its root.
func Submission(t *testing.T, splits ...string) string {
	t.Helper()
	root := t.TempDir()
	WriteTree(t, root, SubmissionFiles(splits...))
	return root
}

// SubmissionFiles returns the file map of the canonical submission for the
// given splits (dev when empty), for callers that need to zip it or tweak
// individual entries before writing.
func SubmissionFiles(splits ...string) map[string]string {
	if len(splits) == 0 {
		splits = []string{"dev"}
	}
	files := map[string]string{"meta.yaml": Meta}
	for _, split := range splits {
		files["lexical/"+split+".txt"] = `w1_v1 -1.0
n1_v1 -2.0
w2_v1 -1.5
n2_v1 -1.5
`
		files["syntactic/"+split+".txt"] = `s1_v1 3.0
x1_v1 1.0
s2_v1 0.5
x2_v1 0.5
`
		files["semantic/"+split+"/synthetic/cat_1.txt"] = "1 0\n1 0.2\n"
		files["semantic/"+split+"/synthetic/dog_1.txt"] = "0.9 0.1\n"
		files["semantic/"+split+"/synthetic/car_1.txt"] = "0 1\n0 1\n"
		for _, subset := range []string{"clean", "other"} {
			files["phonetic/"+split+"-"+subset+"/utt1.txt"] = "1 0\n0.9 0.1\n1 0.1\n0.9 0\n0 1\n0.1 0.9\n"
			files["phonetic/"+split+"-"+subset+"/utt2.txt"] = "0.95 0.05\n1 0\n0.05 1\n0 0.95\n"
		}
	}
	return files
}

// phoneticItems spans two speakers and two phones; with the canonical
// submission features the representations separate the phones perfectly.
const phoneticItems = `#file onset offset #phone prev-phone next-phone speaker
utt1 0.00 0.02 AA B D s1
utt1 0.02 0.04 AA B D s1
utt1 0.04 0.06 IY B D s1
utt2 0.00 0.02 AA B D s2
utt2 0.02 0.04 IY B D s2
`
