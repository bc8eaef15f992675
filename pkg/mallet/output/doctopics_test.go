package output

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/mallet/pkg/mallet/internalerr"
)

const threeTopicKeys = "0\t1.0\talpha beta gamma\n1\t1.0\tdelta epsilon zeta\n2\t1.0\teta theta iota\n"

func writeOutputDir(t *testing.T, docTopics, topicKeys string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc_topics.txt"), []byte(docTopics), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "topic_keys.txt"), []byte(topicKeys), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDocTopicsLongLayout(t *testing.T) {
	dir := writeOutputDir(t,
		"#doc source topic proportion ...\n0\tdocA.txt\t0\t0.6\t1\t0.4\n",
		"0\t1.0\talpha beta gamma\n1\t1.0\tdelta epsilon zeta\n")

	m, err := DocTopics(dir)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := m.Shape()
	if rows != 2 || cols != 1 {
		t.Fatalf("expected 2 topics x 1 doc, got %dx%d", rows, cols)
	}
	if !reflect.DeepEqual(m.ColLabels(), []string{"docA.txt"}) {
		t.Errorf("doc labels = %v", m.ColLabels())
	}
	if m.At(0, 0) != 0.6 || m.At(1, 0) != 0.4 {
		t.Errorf("expected shares [0.6 0.4], got [%v %v]", m.At(0, 0), m.At(1, 0))
	}
	if !reflect.DeepEqual(m.RowLabels(), []string{"alpha beta gamma", "delta epsilon zeta"}) {
		t.Errorf("topic labels = %v", m.RowLabels())
	}
}

func TestDocTopicsWideLayout(t *testing.T) {
	dir := writeOutputDir(t,
		"0\tdocA.txt\t0.6\t0.4\n1\tdocB.txt\t0.1\t0.9\n",
		"0\t1.0\talpha beta gamma\n1\t1.0\tdelta epsilon zeta\n")

	m, err := DocTopics(dir)
	if err != nil {
		t.Fatal(err)
	}

	rows, cols := m.Shape()
	if rows != 2 || cols != 2 {
		t.Fatalf("expected 2 topics x 2 docs, got %dx%d", rows, cols)
	}
	if m.At(0, 0) != 0.6 || m.At(1, 1) != 0.9 {
		t.Errorf("unexpected shares: %v %v", m.At(0, 0), m.At(1, 1))
	}
}

func TestDocTopicsLayoutEquivalence(t *testing.T) {
	// The same logical data in both layouts must reconstruct to
	// equal matrices.
	long := "#doc source topic proportion\n" +
		"0\tdocA.txt\t0\t0.6\t1\t0.3\t2\t0.1\n" +
		"1\tdocB.txt\t0\t0.2\t1\t0.5\t2\t0.3\n"
	wide := "0\tdocA.txt\t0.6\t0.3\t0.1\n1\tdocB.txt\t0.2\t0.5\t0.3\n"

	longM, err := DocTopics(writeOutputDir(t, long, threeTopicKeys))
	if err != nil {
		t.Fatal(err)
	}
	wideM, err := DocTopics(writeOutputDir(t, wide, threeTopicKeys))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(longM.ColLabels(), wideM.ColLabels()) {
		t.Fatalf("doc labels differ: %v vs %v", longM.ColLabels(), wideM.ColLabels())
	}
	rows, cols := longM.Shape()
	if r, c := wideM.Shape(); r != rows || c != cols {
		t.Fatalf("shapes differ: %dx%d vs %dx%d", rows, cols, r, c)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if longM.At(r, c) != wideM.At(r, c) {
				t.Errorf("[%d,%d]: long %v != wide %v", r, c, longM.At(r, c), wideM.At(r, c))
			}
		}
	}
}

func TestDocTopicsLongLayoutSortsDocuments(t *testing.T) {
	// Document order comes from a lexicographic sort on the name,
	// not from the file.
	dir := writeOutputDir(t,
		"#doc source topic proportion\n"+
			"0\tzulu.txt\t0\t0.7\n"+
			"1\talpha.txt\t0\t0.3\n",
		"0\t1.0\talpha beta gamma\n")

	m, err := DocTopics(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.ColLabels(), []string{"alpha.txt", "zulu.txt"}) {
		t.Errorf("documents not sorted by name: %v", m.ColLabels())
	}
	if m.At(0, 0) != 0.3 || m.At(0, 1) != 0.7 {
		t.Errorf("shares did not follow their documents: %v %v", m.At(0, 0), m.At(0, 1))
	}
}

func TestDocTopicsLongLayoutZeroFill(t *testing.T) {
	// Thresholded-out topics are absent from the file and stay zero.
	dir := writeOutputDir(t,
		"#doc source topic proportion\n"+
			"0\tdocA.txt\t2\t0.9\n"+
			"1\tdocB.txt\t0\t0.8\n",
		threeTopicKeys)

	m, err := DocTopics(dir)
	if err != nil {
		t.Fatal(err)
	}
	rows, _ := m.Shape()
	if rows != 3 {
		t.Fatalf("topic count should be max index + 1 = 3, got %d", rows)
	}
	if m.At(0, 0) != 0 || m.At(1, 0) != 0 || m.At(2, 0) != 0.9 {
		t.Errorf("docA shares = [%v %v %v]", m.At(0, 0), m.At(1, 0), m.At(2, 0))
	}
	if m.At(0, 1) != 0.8 || m.At(2, 1) != 0 {
		t.Errorf("docB shares = [%v ... %v]", m.At(0, 1), m.At(2, 1))
	}
}

func TestDocTopicsBaseNames(t *testing.T) {
	dir := writeOutputDir(t,
		"#doc source topic proportion\n0\tfile:/corpus/sub/docA.txt\t0\t1.0\n",
		"0\t1.0\talpha beta gamma\n")

	m, err := DocTopics(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.ColLabels(), []string{"docA.txt"}) {
		t.Errorf("expected base name only, got %v", m.ColLabels())
	}
}

func TestDocTopicsBlankFirstLineIsWide(t *testing.T) {
	// Only the literal first line decides the layout. A file that
	// starts with a blank line is wide, even though a '#' header
	// appears further down.
	dir := writeOutputDir(t,
		"\n0\tdocA.txt\t0.6\t0.4\n",
		"0\t1.0\talpha beta gamma\n1\t1.0\tdelta epsilon zeta\n")

	m, err := DocTopics(dir)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := m.Shape()
	if rows != 2 || cols != 1 {
		t.Fatalf("expected wide-layout 2 topics x 1 doc, got %dx%d", rows, cols)
	}
	if m.At(0, 0) != 0.6 || m.At(1, 0) != 0.4 {
		t.Errorf("shares = [%v %v]", m.At(0, 0), m.At(1, 0))
	}

	dir = writeOutputDir(t,
		"\n#doc source topic proportion\n0\tdocA.txt\t0\t0.6\n",
		"0\t1.0\talpha beta gamma\n")

	// Read as wide, the would-be header line is malformed data.
	if _, err := DocTopics(dir); !errors.Is(err, internalerr.ErrFormat) {
		t.Errorf("header after a blank line must not switch to long layout, got %v", err)
	}
}

func TestDocTopicsRaggedWideLayout(t *testing.T) {
	dir := writeOutputDir(t,
		"0\tdocA.txt\t0.6\t0.3\t0.1\n1\tdocB.txt\t0.2\t0.8\n",
		threeTopicKeys)

	_, err := DocTopics(dir)
	if !errors.Is(err, internalerr.ErrFormat) {
		t.Errorf("expected ErrFormat for ragged wide rows, got %v", err)
	}
}

func TestDocTopicsUnpairedValue(t *testing.T) {
	dir := writeOutputDir(t,
		"#doc source topic proportion\n0\tdocA.txt\t0\t0.6\t1\n",
		threeTopicKeys)

	_, err := DocTopics(dir)
	if !errors.Is(err, internalerr.ErrFormat) {
		t.Errorf("expected ErrFormat for unpaired topic index, got %v", err)
	}
}

func TestDocTopicsMissingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "topic_keys.txt"), []byte(threeTopicKeys), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := DocTopics(dir)
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing doc topics file, got %v", err)
	}
}

func TestDocTopicsBadShare(t *testing.T) {
	dir := writeOutputDir(t, "0\tdocA.txt\tnot-a-number\t0.4\n", threeTopicKeys)

	_, err := DocTopics(dir)
	if !errors.Is(err, internalerr.ErrFormat) {
		t.Errorf("expected ErrFormat for non-numeric share, got %v", err)
	}
}
