// Package meta reads the submission-wide metadata record (meta.yaml at the
// submission root). The semantic track requires its metric and pooling
// parameters to be present; there are no implicit defaults.
package meta

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// FileName is the metadata record's name at the submission root.
const FileName = "meta.yaml"

// DefaultFrameShift is the phonetic feature frame period assumed when the
// submission does not declare one, in seconds.
const DefaultFrameShift = 0.01

// Meta is the parsed submission metadata.
type Meta struct {
	Author      string     `yaml:"author"`
	Affiliation string     `yaml:"affiliation"`
	Description string     `yaml:"description"`
	OpenSource  bool       `yaml:"open_source"`
	Parameters  Parameters `yaml:"parameters"`
}

// Parameters holds per-track submission parameters.
type Parameters struct {
	Phonetic PhoneticParams `yaml:"phonetic"`
	Semantic SemanticParams `yaml:"semantic"`
}

// PhoneticParams describes how the submitted phonetic features were
// produced. FrameShift is the feature frame period in seconds.
type PhoneticParams struct {
	Metric     string  `yaml:"metric"`
	FrameShift float64 `yaml:"frame_shift"`
}

// SemanticParams describes how to compare the submitted embeddings.
// Both fields are required when the semantic track runs.
type SemanticParams struct {
	Metric  string `yaml:"metric"`
	Pooling string `yaml:"pooling"`
}

// Load parses the metadata record at path. A missing or unparseable file
// is a metadata error; field-level requirements are checked by the
// accessors, not here, so tracks that do not need parameters can still run
// against a minimal record.
func Load(path string) (*Meta, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewMetadataError(FileName, "").WithCause(err)
	}

	var m Meta
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, errors.NewMetadataError(FileName, "").WithCause(err)
	}

	return &m, nil
}

// SemanticMetric returns parameters.semantic.metric, failing when absent.
func (m *Meta) SemanticMetric() (string, error) {
	if m.Parameters.Semantic.Metric == "" {
		return "", errors.NewMetadataError(FileName, "parameters.semantic.metric")
	}
	return m.Parameters.Semantic.Metric, nil
}

// SemanticPooling returns parameters.semantic.pooling, failing when absent.
func (m *Meta) SemanticPooling() (string, error) {
	if m.Parameters.Semantic.Pooling == "" {
		return "", errors.NewMetadataError(FileName, "parameters.semantic.pooling")
	}
	return m.Parameters.Semantic.Pooling, nil
}

// PhoneticFrameShift returns parameters.phonetic.frame_shift, or
// DefaultFrameShift when the submission does not declare one.
func (m *Meta) PhoneticFrameShift() float64 {
	if m.Parameters.Phonetic.FrameShift <= 0 {
		return DefaultFrameShift
	}
	return m.Parameters.Phonetic.FrameShift
}
