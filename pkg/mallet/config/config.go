// Package config loads YAML modeling profiles: reusable import and
// training settings that overlay the built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/mallet/pkg/mallet"
)

// Profile is one named modeling setup.
type Profile struct {
	Executable string        `yaml:"executable"`
	OutputDir  string        `yaml:"output_dir"`
	Import     ImportProfile `yaml:"import"`
	Train      TrainProfile  `yaml:"train"`
}

// ImportProfile mirrors the import options that make sense in a
// reusable profile. Pointer fields distinguish "unset" from an
// explicit false/empty, so a profile can disable a default.
type ImportProfile struct {
	Encoding        string `yaml:"encoding"`
	TokenRegex      string `yaml:"token_regex"`
	PreserveCase    *bool  `yaml:"preserve_case"`
	RemoveStopwords *bool  `yaml:"remove_stopwords"`
	SkipHeader      *bool  `yaml:"skip_header"`
	SkipHTML        *bool  `yaml:"skip_html"`
	KeepSequence    *bool  `yaml:"keep_sequence"`
	StoplistFile    string `yaml:"stoplist_file"`
	ExtraStopwords  string `yaml:"extra_stopwords"`
	GramSizes       string `yaml:"gram_sizes"`
}

// TrainProfile mirrors the training options of a profile.
type TrainProfile struct {
	NumTopics          *int     `yaml:"num_topics"`
	NumTopWords        *int     `yaml:"num_top_words"`
	NumIterations      *int     `yaml:"num_iterations"`
	NumThreads         *int     `yaml:"num_threads"`
	RandomSeed         *int     `yaml:"random_seed"`
	OptimizeInterval   *int     `yaml:"optimize_interval"`
	OptimizeBurnIn     *int     `yaml:"optimize_burn_in"`
	UseSymmetricAlpha  *bool    `yaml:"use_symmetric_alpha"`
	Alpha              *float64 `yaml:"alpha"`
	Beta               *float64 `yaml:"beta"`
	DocTopicsThreshold *float64 `yaml:"doc_topics_threshold"`
	Diagnostics        *bool    `yaml:"diagnostics"`
	OutputState        *bool    `yaml:"output_state"`
	Inferencer         *bool    `yaml:"inferencer"`
}

// LoadProfile loads a profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &p, nil
}

// ImportOptions overlays the profile onto the default import
// options.
func (p *Profile) ImportOptions() mallet.ImportOptions {
	o := mallet.DefaultImportOptions()
	o.Encoding = p.Import.Encoding
	o.TokenRegex = p.Import.TokenRegex
	o.StoplistFile = p.Import.StoplistFile
	o.ExtraStopwords = p.Import.ExtraStopwords
	o.GramSizes = p.Import.GramSizes
	setBool(&o.PreserveCase, p.Import.PreserveCase)
	setBool(&o.RemoveStopwords, p.Import.RemoveStopwords)
	setBool(&o.SkipHeader, p.Import.SkipHeader)
	setBool(&o.SkipHTML, p.Import.SkipHTML)
	setBool(&o.KeepSequence, p.Import.KeepSequence)
	return o
}

// TrainOptions overlays the profile onto the default training
// options.
func (p *Profile) TrainOptions() mallet.TrainOptions {
	o := mallet.DefaultTrainOptions()
	setInt(&o.NumTopics, p.Train.NumTopics)
	setInt(&o.NumTopWords, p.Train.NumTopWords)
	setInt(&o.NumIterations, p.Train.NumIterations)
	setInt(&o.NumThreads, p.Train.NumThreads)
	setInt(&o.RandomSeed, p.Train.RandomSeed)
	setInt(&o.OptimizeInterval, p.Train.OptimizeInterval)
	setInt(&o.OptimizeBurnIn, p.Train.OptimizeBurnIn)
	setBool(&o.UseSymmetricAlpha, p.Train.UseSymmetricAlpha)
	setFloat(&o.Alpha, p.Train.Alpha)
	setFloat(&o.Beta, p.Train.Beta)
	setFloat(&o.DocTopicsThreshold, p.Train.DocTopicsThreshold)
	setBool(&o.Diagnostics, p.Train.Diagnostics)
	setBool(&o.OutputState, p.Train.OutputState)
	setBool(&o.Inferencer, p.Train.Inferencer)
	return o
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
