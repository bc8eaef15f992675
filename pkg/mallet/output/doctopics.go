package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cognicore/mallet/pkg/mallet/internalerr"
	"github.com/cognicore/mallet/pkg/mallet/table"
)

// DocTopics reads the conventional doc_topics.txt / topic_keys.txt
// pair from dir and returns the doc-topic matrix with topics as rows
// and documents as columns.
func DocTopics(dir string) (*table.Dense, error) {
	return ReadDocTopics(filepath.Join(dir, "doc_topics.txt"), filepath.Join(dir, "topic_keys.txt"))
}

// ReadDocTopics parses a doc-topics file. MALLET emits it in one of
// two layouts and the only discriminator is the first line: a leading
// '#' means the commented long layout (header line consumed,
// interleaved topic/share pairs per document), anything else means
// the plain wide layout (one share column per topic, no line
// consumed). Only that first line is consulted; if MALLET ever drops
// the header convention the file would be misread as wide layout
// without error.
//
// Columns are the documents (base names, sorted for the long layout)
// and rows are the topics, labeled with the first three keywords from
// the topic-keys file.
func ReadDocTopics(docTopicsPath, topicKeysPath string) (*table.Dense, error) {
	labels, err := TopicLabels(topicKeysPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(docTopicsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: doc topics file %q", internalerr.ErrNotFound, docTopicsPath)
		}
		return nil, err
	}

	lay, err := detect(docTopicsPath, string(data))
	if err != nil {
		return nil, err
	}
	return lay.matrix(labels)
}

// layout is the tagged result of format detection. Each variant
// holds the raw per-line parse and knows how to normalize itself
// into the canonical topic-by-document table.
type layout interface {
	matrix(topicLabels []string) (*table.Dense, error)
}

// detect picks the layout from the literal first line of the file:
// a '#' there (after leading whitespace) means long layout, anything
// else, including a blank line, means wide.
func detect(path, data string) (layout, error) {
	raw := strings.Split(data, "\n")
	var lines []string
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: doc topics file %q is empty", internalerr.ErrFormat, path)
	}
	if strings.HasPrefix(strings.TrimLeft(raw[0], " \t"), "#") {
		return parseLong(path, lines[1:])
	}
	return parseWide(path, lines)
}

// triple is one observed (document, topic, share) cell of the long
// layout.
type triple struct {
	doc   string
	topic int
	share float64
}

type longLayout struct {
	triples []triple
	docs    []string // deduplicated, sorted by name
}

// parseLong collects triples from lines of the form
// docIndex \t docName \t topic \t share \t topic \t share ...
func parseLong(path string, lines []string) (*longLayout, error) {
	lay := &longLayout{}
	seen := map[string]bool{}
	for n, line := range lines {
		fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: doc topics file %q line %d: want docnum, docname and topic/share pairs",
				internalerr.ErrFormat, path, n+2)
		}
		doc := fields[1]
		pairs := fields[2:]
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("%w: doc topics file %q line %d: unpaired topic index %q",
				internalerr.ErrFormat, path, n+2, pairs[len(pairs)-1])
		}
		if !seen[doc] {
			seen[doc] = true
			lay.docs = append(lay.docs, doc)
		}
		for i := 0; i < len(pairs); i += 2 {
			topic, err := strconv.Atoi(pairs[i])
			if err != nil {
				return nil, fmt.Errorf("%w: doc topics file %q line %d: bad topic index %q",
					internalerr.ErrFormat, path, n+2, pairs[i])
			}
			share, err := strconv.ParseFloat(pairs[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: doc topics file %q line %d: bad share %q",
					internalerr.ErrFormat, path, n+2, pairs[i+1])
			}
			lay.triples = append(lay.triples, triple{doc: doc, topic: topic, share: share})
		}
	}
	// MALLET's own document ordering is not considered reliable.
	sort.Strings(lay.docs)
	sort.Slice(lay.triples, func(i, j int) bool {
		if lay.triples[i].doc != lay.triples[j].doc {
			return lay.triples[i].doc < lay.triples[j].doc
		}
		return lay.triples[i].topic < lay.triples[j].topic
	})
	return lay, nil
}

func (l *longLayout) matrix(topicLabels []string) (*table.Dense, error) {
	numTopics := 0
	for _, t := range l.triples {
		if t.topic+1 > numTopics {
			numTopics = t.topic + 1
		}
	}
	if numTopics == 0 || len(l.docs) == 0 {
		return nil, fmt.Errorf("%w: no topic shares observed", internalerr.ErrFormat)
	}

	rowFor := make(map[string]int, len(l.docs))
	rows := make([]string, len(l.docs))
	for i, doc := range l.docs {
		rowFor[doc] = i
		rows[i] = filepath.Base(doc)
	}

	// Unobserved (doc, topic) cells stay zero; thresholded shares
	// are simply absent from the file.
	m := table.NewDense(rows, labelsFor(topicLabels, numTopics))
	for _, t := range l.triples {
		m.Set(rowFor[t.doc], t.topic, t.share)
	}
	return m.Transpose(), nil
}

type wideLayout struct {
	docs   []string
	shares [][]float64
}

// parseWide reads lines of the form
// docIndex \t docName \t share_0 \t ... \t share_(K-1)
// with a fixed number of share columns.
func parseWide(path string, lines []string) (*wideLayout, error) {
	lay := &wideLayout{}
	width := -1
	for n, line := range lines {
		fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: doc topics file %q line %d: want docnum, docname and shares",
				internalerr.ErrFormat, path, n+1)
		}
		if width == -1 {
			width = len(fields) - 2
		} else if len(fields)-2 != width {
			return nil, fmt.Errorf("%w: doc topics file %q line %d: want %d shares, got %d",
				internalerr.ErrFormat, path, n+1, width, len(fields)-2)
		}
		shares := make([]float64, width)
		for i, f := range fields[2:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: doc topics file %q line %d: bad share %q",
					internalerr.ErrFormat, path, n+1, f)
			}
			shares[i] = v
		}
		lay.docs = append(lay.docs, filepath.Base(fields[1]))
		lay.shares = append(lay.shares, shares)
	}
	return lay, nil
}

func (l *wideLayout) matrix(topicLabels []string) (*table.Dense, error) {
	m := table.NewDense(l.docs, labelsFor(topicLabels, len(l.shares[0])))
	for r, shares := range l.shares {
		for c, v := range shares {
			m.Set(r, c, v)
		}
	}
	return m.Transpose(), nil
}

// labelsFor pads or truncates the keyword-derived topic labels to
// the observed topic count.
func labelsFor(topicLabels []string, numTopics int) []string {
	labels := make([]string, numTopics)
	for i := range labels {
		if i < len(topicLabels) {
			labels[i] = topicLabels[i]
		} else {
			labels[i] = "Topic " + strconv.Itoa(i)
		}
	}
	return labels
}
