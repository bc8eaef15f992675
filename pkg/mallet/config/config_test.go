package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.yaml")

	content := `executable: /opt/mallet/bin/mallet
output_dir: model_out
import:
  remove_stopwords: false
  stoplist_file: stoplist.txt
  gram_sizes: "1,2"
train:
  num_topics: 30
  num_iterations: 2000
  alpha: 1.0
  doc_topics_threshold: 0.05
  diagnostics: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("Failed to load profile: %v", err)
	}

	if p.Executable != "/opt/mallet/bin/mallet" {
		t.Errorf("executable = %q", p.Executable)
	}
	if p.OutputDir != "model_out" {
		t.Errorf("output_dir = %q", p.OutputDir)
	}

	imp := p.ImportOptions()
	if imp.RemoveStopwords {
		t.Error("profile should have disabled stopword removal")
	}
	if !imp.KeepSequence {
		t.Error("unset fields should keep their defaults")
	}
	if imp.StoplistFile != "stoplist.txt" || imp.GramSizes != "1,2" {
		t.Errorf("import overlay incomplete: %+v", imp)
	}

	tr := p.TrainOptions()
	if tr.NumTopics != 30 || tr.NumIterations != 2000 {
		t.Errorf("train overlay incomplete: %+v", tr)
	}
	if tr.Alpha != 1.0 || tr.DocTopicsThreshold != 0.05 {
		t.Errorf("hyperparameters not overlaid: %+v", tr)
	}
	if !tr.Diagnostics {
		t.Error("diagnostics should be enabled")
	}
	if tr.Beta != 0.01 || tr.OptimizeBurnIn != 200 {
		t.Errorf("unset fields should keep their defaults: %+v", tr)
	}
}

func TestLoadProfileEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}

	// An empty profile is exactly the defaults.
	tr := p.TrainOptions()
	if tr.NumTopics != 10 || tr.NumIterations != 1000 || tr.RandomSeed != 0 {
		t.Errorf("empty profile should yield defaults: %+v", tr)
	}
	if !tr.OutputTopicKeys || !tr.OutputDocTopics {
		t.Error("default output categories should stay enabled")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing profile")
	}
}

func TestLoadProfileBadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.yaml")
	if err := os.WriteFile(path, []byte("train: [not a mapping\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProfile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
