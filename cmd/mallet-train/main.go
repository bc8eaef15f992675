package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cognicore/mallet/pkg/mallet"
	"github.com/cognicore/mallet/pkg/mallet/config"
	"github.com/cognicore/mallet/pkg/mallet/registry"
	"github.com/cognicore/mallet/pkg/mallet/run"
)

func main() {
	var (
		executable  = flag.String("mallet", "mallet", "Path to the MALLET executable")
		file        = flag.String("file", "", "Single text file to import")
		corpus      = flag.String("corpus", "", "Directory of text files to import")
		outDir      = flag.String("out", "mallet_output", "Output directory")
		profilePath = flag.String("profile", "", "YAML profile (optional)")
		dbPath      = flag.String("db", "", "Run registry database (optional)")
		topics      = flag.Int("topics", 0, "Number of topics (overrides profile)")
		iterations  = flag.Int("iterations", 0, "Number of sampling iterations (overrides profile)")
		seed        = flag.Int("seed", -1, "Random seed (overrides profile)")
		logPath     = flag.String("log", "", "Where to write MALLET's stderr (default mallet.log)")
	)
	flag.Parse()

	if *file == "" && *corpus == "" {
		log.Fatal("one of --file or --corpus required")
	}
	if *file != "" && *corpus != "" {
		log.Fatal("--file and --corpus are mutually exclusive")
	}

	ctx := context.Background()

	importOpts := mallet.DefaultImportOptions()
	trainOpts := mallet.DefaultTrainOptions()
	if *profilePath != "" {
		profile, err := config.LoadProfile(*profilePath)
		if err != nil {
			log.Fatal(err)
		}
		importOpts = profile.ImportOptions()
		trainOpts = profile.TrainOptions()
		if profile.Executable != "" && *executable == "mallet" {
			*executable = profile.Executable
		}
		if profile.OutputDir != "" && *outDir == "mallet_output" {
			*outDir = profile.OutputDir
		}
	}
	if *topics > 0 {
		trainOpts.NumTopics = *topics
	}
	if *iterations > 0 {
		trainOpts.NumIterations = *iterations
	}
	if *seed >= 0 {
		trainOpts.RandomSeed = *seed
	}

	m := mallet.New(*executable, mallet.Options{
		OutputDir: *outDir,
		Runner:    run.Runner{LogPath: *logPath},
	})

	started := time.Now()
	binary, err := importCorpus(ctx, m, *file, *corpus, importOpts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("imported corpus to %s", binary)

	if err := m.TrainTopics(ctx, binary, trainOpts); err != nil {
		log.Fatal(err)
	}
	finished := time.Now()
	log.Printf("trained %d topics in %s", trainOpts.NumTopics, finished.Sub(started).Round(time.Second))

	if *dbPath != "" {
		trainArgs, err := m.TrainArgs(binary, trainOpts)
		if err != nil {
			log.Fatal(err)
		}
		if err := record(ctx, *dbPath, m, trainOpts, trainArgs, started, finished); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println(m.OutputDir())
}

// importCorpus picks the import subcommand from whichever input flag
// was supplied.
func importCorpus(ctx context.Context, m *mallet.Mallet, file, corpus string, opts mallet.ImportOptions) (string, error) {
	if file != "" {
		return m.ImportFile(ctx, file, opts)
	}
	return m.ImportDir(ctx, corpus, opts)
}

// record stores the run, its compiled argv and its parsed tables in
// the registry.
func record(ctx context.Context, dbPath string, m *mallet.Mallet, opts mallet.TrainOptions, args []string, started, finished time.Time) error {
	reg, err := registry.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer reg.Close()

	runID, err := reg.RecordRun(ctx, "train-topics", args, m.OutputDir(), started, finished, "ok")
	if err != nil {
		return err
	}

	keys, err := m.TopicKeys(opts.NumTopics, opts.NumTopWords)
	if err != nil {
		return err
	}
	if err := reg.SaveTopicKeys(ctx, runID, keys); err != nil {
		return err
	}

	matrix, err := m.DocTopicMatrix()
	if err != nil {
		return err
	}
	if err := reg.SaveDocTopics(ctx, runID, matrix); err != nil {
		return err
	}

	log.Printf("recorded run %s in %s", runID, dbPath)
	return nil
}
