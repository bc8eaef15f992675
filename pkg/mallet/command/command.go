// Package command compiles named, typed MALLET options into argument
// vectors. Compilation is a pure function from (executable,
// subcommand, option set) to a token slice; nothing here touches the
// process table or the file system.
package command

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/mallet/pkg/mallet/internalerr"
)

// inputAliases are the option names that all compile to MALLET's
// --input flag. At most one should be supplied per option set.
var inputAliases = map[string]bool{
	"corpus":    true,
	"directory": true,
	"filepath":  true,
	"path":      true,
}

// spec describes compilation behavior for one option name beyond the
// derived default (underscores to hyphens, double-dash prefix, falsy
// values omitted).
type spec struct {
	// defaultFile, when set, marks an output-category bool option:
	// true compiles to the flag followed by defaultFile joined onto
	// the compiler's OutputDir.
	defaultFile string
	// alwaysEmit forces the flag and value out even for falsy
	// values, for options the external tool defaults differently
	// when the flag is absent.
	alwaysEmit bool
}

// trainSpecs covers train-topics options that deviate from the
// derived default behavior.
var trainSpecs = map[string]spec{
	"output_topic_keys":       {defaultFile: "topic_keys.txt"},
	"output_doc_topics":       {defaultFile: "doc_topics.txt"},
	"topic_word_weights_file": {defaultFile: "topic_word_weights.txt"},
	"word_topic_counts_file":  {defaultFile: "word_topic_counts.txt"},
	"diagnostics_file":        {defaultFile: "diagnostics.xml"},
	"xml_topic_report":        {defaultFile: "topic_report.xml"},
	"xml_topic_phrase_report": {defaultFile: "topic_phrase_report.xml"},
	"output_topic_docs":       {defaultFile: "topic_docs.txt"},
	"output_model":            {defaultFile: "mallet.model"},
	"output_state":            {defaultFile: "state.gz"},
	"inferencer_filename":     {defaultFile: "inferencer"},
	"evaluator_filename":      {defaultFile: "evaluator"},

	"doc_topics_threshold":  {alwaysEmit: true},
	"optimize_interval":     {alwaysEmit: true},
	"optimize_burn_in":      {alwaysEmit: true},
	"alpha":                 {alwaysEmit: true},
	"beta":                  {alwaysEmit: true},
	"output_model_interval": {alwaysEmit: true},
	"output_state_interval": {alwaysEmit: true},
}

// Compiler holds the per-invocation compilation context.
//
// When several input aliases are supplied, the lexicographically
// smallest one wins; with Strict set the conflict is an error
// instead.
type Compiler struct {
	// OutputDir scopes the default file names of output-category
	// options (topic_keys.txt and friends).
	OutputDir string
	// Strict rejects option sets carrying more than one input alias.
	Strict bool
}

// Compile translates an option set into the token sequence
// [executable, subcommand, flag, value, ...]. Flags appear in sorted
// option-name order.
func (c Compiler) Compile(executable, subcommand string, opts Options) ([]string, error) {
	if err := checkPath("executable", executable); err != nil {
		return nil, err
	}
	if err := checkPath("output directory", c.OutputDir); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	args := []string{executable, subcommand}
	inputSeen := ""
	for _, name := range names {
		v := opts[name]

		if inputAliases[name] {
			if v.falsy() {
				continue
			}
			if inputSeen != "" {
				if c.Strict {
					return nil, fmt.Errorf("%w: conflicting input aliases %q and %q",
						internalerr.ErrConfiguration, inputSeen, name)
				}
				continue
			}
			if err := checkPath(name, v.text()); err != nil {
				return nil, err
			}
			inputSeen = name
			args = append(args, "--input", v.text())
			continue
		}

		sp := specFor(subcommand, name)
		if sp.defaultFile != "" && v.Kind() == KindBool {
			if !v.falsy() {
				args = append(args, flagFor(name), filepath.Join(c.OutputDir, sp.defaultFile))
			}
			continue
		}
		if v.falsy() && !sp.alwaysEmit {
			continue
		}
		if v.Kind() == KindBool {
			args = append(args, flagFor(name))
			continue
		}
		if v.Kind() == KindPath {
			if err := checkPath(name, v.text()); err != nil {
				return nil, err
			}
		}
		args = append(args, flagFor(name), v.text())
	}
	return args, nil
}

// Compile compiles with a zero-valued Compiler: no output directory
// scope, lenient alias resolution.
func Compile(executable, subcommand string, opts Options) ([]string, error) {
	return Compiler{}.Compile(executable, subcommand, opts)
}

func specFor(subcommand, name string) spec {
	if subcommand == "train-topics" {
		return trainSpecs[name]
	}
	return spec{}
}

func flagFor(name string) string {
	return "--" + strings.ReplaceAll(name, "_", "-")
}

// checkPath rejects path-like values containing whitespace. MALLET's
// own argument parser does not reliably support quoting across
// platforms, so these must never reach the command line.
func checkPath(name, value string) error {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: whitespace is not allowed in %s %q",
			internalerr.ErrConfiguration, name, value)
	}
	return nil
}
