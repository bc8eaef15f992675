// Package mallet drives the external MALLET topic-modeling tool:
// it compiles option sets into MALLET command lines, runs the tool,
// and parses its text output files into labeled tables.
package mallet

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cognicore/mallet/pkg/mallet/command"
	"github.com/cognicore/mallet/pkg/mallet/output"
	"github.com/cognicore/mallet/pkg/mallet/run"
	"github.com/cognicore/mallet/pkg/mallet/table"
)

// BinaryName is the conventional file name for an imported corpus.
const BinaryName = "binary.mallet"

// Mallet is the facade over one MALLET installation and one output
// directory.
type Mallet struct {
	executable string
	outputDir  string
	runner     run.Runner
}

// Options configures a Mallet instance.
type Options struct {
	// OutputDir receives the corpus binary and all training output.
	OutputDir string
	// Runner overrides process invocation, e.g. to redirect the
	// stderr log away from mallet.log in the working directory.
	Runner run.Runner
}

// New creates a Mallet around the given executable path ("mallet" if
// it is on PATH).
func New(executable string, opts Options) *Mallet {
	if opts.OutputDir == "" {
		opts.OutputDir = "mallet_output"
	}
	return &Mallet{
		executable: executable,
		outputDir:  opts.OutputDir,
		runner:     opts.Runner,
	}
}

// Executable returns the configured executable path.
func (m *Mallet) Executable() string { return m.executable }

// OutputDir returns the configured output directory.
func (m *Mallet) OutputDir() string { return m.outputDir }

// ImportFile imports a single text file into MALLET's binary corpus
// format and returns the binary's path.
func (m *Mallet) ImportFile(ctx context.Context, path string, opts ImportOptions) (string, error) {
	return m.runImport(ctx, "import-file", "filepath", path, opts)
}

// ImportDir imports a directory of text files, one document per
// file, and returns the binary's path.
func (m *Mallet) ImportDir(ctx context.Context, dir string, opts ImportOptions) (string, error) {
	return m.runImport(ctx, "import-dir", "directory", dir, opts)
}

func (m *Mallet) runImport(ctx context.Context, subcommand, alias, input string, opts ImportOptions) (string, error) {
	binary := filepath.Join(m.outputDir, BinaryName)
	args, err := command.Compiler{OutputDir: m.outputDir}.Compile(
		m.executable, subcommand, opts.options(alias, input, binary))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return "", err
	}
	if err := m.runner.Run(ctx, args); err != nil {
		return "", err
	}
	return binary, nil
}

// TrainArgs compiles the train-topics command line without running
// anything, e.g. for logging or run records.
func (m *Mallet) TrainArgs(binary string, opts TrainOptions) ([]string, error) {
	return command.Compiler{OutputDir: m.outputDir}.Compile(
		m.executable, "train-topics", opts.options(binary))
}

// TrainTopics trains a topic model on a previously imported corpus
// binary. The selected output files land in the output directory
// under their conventional names.
func (m *Mallet) TrainTopics(ctx context.Context, binary string, opts TrainOptions) error {
	args, err := m.TrainArgs(binary, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return err
	}
	return m.runner.Run(ctx, args)
}

// TopicKeys parses topic_keys.txt from the output directory.
func (m *Mallet) TopicKeys(numTopics, keysPerTopic int) (*table.Strings, error) {
	return output.ReadTopicKeys(filepath.Join(m.outputDir, "topic_keys.txt"), numTopics, keysPerTopic)
}

// DocTopicMatrix parses doc_topics.txt and topic_keys.txt from the
// output directory into a topic-by-document share matrix.
func (m *Mallet) DocTopicMatrix() (*table.Dense, error) {
	return output.DocTopics(m.outputDir)
}
