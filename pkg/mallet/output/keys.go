// Package output parses MALLET's plain-text result files into
// labeled tables.
package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/mallet/pkg/mallet/internalerr"
	"github.com/cognicore/mallet/pkg/mallet/table"
)

// ReadTopicKeys parses a topic-keys file into a Strings table with
// rows "Topic 1".."Topic K" and columns "Key 1".."Key N". Each line
// must carry at least three tab-separated fields; the third holds
// whitespace-separated keywords, of which the first keysPerTopic are
// kept. Topics with fewer keywords leave trailing cells empty.
func ReadTopicKeys(path string, numTopics, keysPerTopic int) (*table.Strings, error) {
	rows, err := readKeyRows(path)
	if err != nil {
		return nil, err
	}

	rowLabels := make([]string, numTopics)
	for i := range rowLabels {
		rowLabels[i] = "Topic " + strconv.Itoa(i+1)
	}
	colLabels := make([]string, keysPerTopic)
	for i := range colLabels {
		colLabels[i] = "Key " + strconv.Itoa(i+1)
	}

	t := table.NewStrings(rowLabels, colLabels)
	for r, words := range rows {
		if r >= numTopics {
			break
		}
		for c, w := range words {
			if c >= keysPerTopic {
				break
			}
			t.Set(r, c, w)
		}
	}
	return t, nil
}

// TopicLabels derives a short human-readable label per topic from a
// topic-keys file: the first three keywords joined by spaces.
func TopicLabels(path string) ([]string, error) {
	rows, err := readKeyRows(path)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(rows))
	for i, words := range rows {
		if len(words) > 3 {
			words = words[:3]
		}
		labels[i] = strings.Join(words, " ")
	}
	return labels, nil
}

// readKeyRows returns the keyword tokens of each topic line.
func readKeyRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: topic keys file %q: %v", internalerr.ErrFormat, path, err)
	}

	var rows [][]string
	for n, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: topic keys file %q line %d: want 3 tab-separated fields, got %d",
				internalerr.ErrFormat, path, n+1, len(fields))
		}
		rows = append(rows, strings.Fields(fields[2]))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: topic keys file %q is empty", internalerr.ErrFormat, path)
	}
	return rows, nil
}
