package mallet

import "github.com/cognicore/mallet/pkg/mallet/command"

// ImportOptions configure MALLET's import-file / import-dir
// subcommands. All fields map one-to-one onto MALLET flags.
type ImportOptions struct {
	Encoding   string
	TokenRegex string

	PreserveCase        bool
	RemoveStopwords     bool
	SkipHeader          bool
	SkipHTML            bool
	KeepSequence        bool
	KeepSequenceBigrams bool
	BinaryFeatures      bool
	SaveTextInSource    bool
	PrintOutput         bool

	StoplistFile     string
	ExtraStopwords   string
	StopPatternFile  string
	ReplacementFiles string
	DeletionFiles    string

	// GramSizes lists n-gram sizes to include, e.g. "1,2".
	GramSizes string
}

// DefaultImportOptions returns the conventional import settings:
// stopwords removed and the document kept as a feature sequence,
// which topic training requires.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		RemoveStopwords: true,
		KeepSequence:    true,
	}
}

func (o ImportOptions) options(inputAlias, input, output string) command.Options {
	opts := command.Options{
		inputAlias: command.Path(input),
		"output":   command.Path(output),

		"encoding":    command.String(o.Encoding),
		"token_regex": command.String(o.TokenRegex),

		"preserve_case":         command.Bool(o.PreserveCase),
		"remove_stopwords":      command.Bool(o.RemoveStopwords),
		"skip_header":           command.Bool(o.SkipHeader),
		"skip_html":             command.Bool(o.SkipHTML),
		"keep_sequence":         command.Bool(o.KeepSequence),
		"keep_sequence_bigrams": command.Bool(o.KeepSequenceBigrams),
		"binary_features":       command.Bool(o.BinaryFeatures),
		"save_text_in_source":   command.Bool(o.SaveTextInSource),
		"print_output":          command.Bool(o.PrintOutput),

		"stoplist_file":     command.Path(o.StoplistFile),
		"extra_stopwords":   command.Path(o.ExtraStopwords),
		"stop_pattern_file": command.Path(o.StopPatternFile),
		"replacement_files": command.Path(o.ReplacementFiles),
		"deletion_files":    command.Path(o.DeletionFiles),

		"gram_sizes": command.String(o.GramSizes),
	}
	return opts
}

// TrainOptions configure MALLET's train-topics subcommand. Output
// booleans select which result files MALLET writes; their file names
// are fixed by convention inside the output directory.
type TrainOptions struct {
	InputModel string
	InputState string

	NumTopics        int
	NumTopWords      int
	NumIterations    int
	NumThreads       int
	NumICMIterations int
	NoInference      bool
	RandomSeed       int

	OptimizeInterval  int
	OptimizeBurnIn    int
	UseSymmetricAlpha bool
	Alpha             float64
	Beta              float64

	OutputTopicKeys      bool
	OutputDocTopics      bool
	DocTopicsThreshold   float64
	TopicWordWeights     bool
	WordTopicCounts      bool
	Diagnostics          bool
	XMLTopicReport       bool
	XMLTopicPhraseReport bool
	OutputTopicDocs      bool

	OutputModel         bool
	OutputModelInterval int
	OutputState         bool
	OutputStateInterval int
	Inferencer          bool
	Evaluator           bool
}

// DefaultTrainOptions returns the conventional training settings:
// 10 topics, 1000 iterations, fixed seed 0, alpha 5.0, beta 0.01,
// with topic keys, doc topics and topic-word weights written out.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		NumTopics:          10,
		NumTopWords:        10,
		NumIterations:      1000,
		NumThreads:         1,
		RandomSeed:         0,
		OptimizeInterval:   0,
		OptimizeBurnIn:     200,
		Alpha:              5.0,
		Beta:               0.01,
		DocTopicsThreshold: 0.0,
		OutputTopicKeys:    true,
		OutputDocTopics:    true,
		TopicWordWeights:   true,
	}
}

func (o TrainOptions) options(binary string) command.Options {
	opts := command.Options{
		"input_state": command.Path(o.InputState),

		"num_topics":         command.Int(o.NumTopics),
		"num_top_words":      command.Int(o.NumTopWords),
		"num_iterations":     command.Int(o.NumIterations),
		"num_threads":        command.Int(o.NumThreads),
		"num_icm_iterations": command.Int(o.NumICMIterations),
		"no_inference":       command.Bool(o.NoInference),
		"random_seed":        command.Int(o.RandomSeed),

		"optimize_interval":   command.Int(o.OptimizeInterval),
		"optimize_burn_in":    command.Int(o.OptimizeBurnIn),
		"use_symmetric_alpha": command.Bool(o.UseSymmetricAlpha),
		"alpha":               command.Float(o.Alpha),
		"beta":                command.Float(o.Beta),

		"output_topic_keys":       command.Bool(o.OutputTopicKeys),
		"output_doc_topics":       command.Bool(o.OutputDocTopics),
		"topic_word_weights_file": command.Bool(o.TopicWordWeights),
		"word_topic_counts_file":  command.Bool(o.WordTopicCounts),
		"diagnostics_file":        command.Bool(o.Diagnostics),
		"xml_topic_report":        command.Bool(o.XMLTopicReport),
		"xml_topic_phrase_report": command.Bool(o.XMLTopicPhraseReport),
		"output_topic_docs":       command.Bool(o.OutputTopicDocs),
		"output_model":            command.Bool(o.OutputModel),
		"output_state":            command.Bool(o.OutputState),
		"inferencer_filename":     command.Bool(o.Inferencer),
		"evaluator_filename":      command.Bool(o.Evaluator),
	}
	// A trained model can be continued instead of a fresh corpus
	// import; the two inputs use distinct flags.
	if o.InputModel != "" {
		opts["input_model"] = command.Path(o.InputModel)
	} else if binary != "" {
		opts["filepath"] = command.Path(binary)
	}
	if o.OutputDocTopics {
		opts["doc_topics_threshold"] = command.Float(o.DocTopicsThreshold)
	}
	if o.OutputModel {
		opts["output_model_interval"] = command.Int(o.OutputModelInterval)
	}
	if o.OutputState {
		opts["output_state_interval"] = command.Int(o.OutputStateInterval)
	}
	return opts
}
