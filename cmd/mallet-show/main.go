package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/cognicore/mallet/pkg/mallet/output"
	"github.com/cognicore/mallet/pkg/mallet/table"
)

func main() {
	var (
		outDir = flag.String("out", "mallet_output", "MALLET output directory to read")
		topics = flag.Int("topics", 10, "Number of topics in the model")
		keys   = flag.Int("keys", 10, "Keywords to show per topic")
		what   = flag.String("show", "all", "What to print: keys, matrix or all")
	)
	flag.Parse()

	if *what == "keys" || *what == "all" {
		t, err := output.ReadTopicKeys(filepath.Join(*outDir, "topic_keys.txt"), *topics, *keys)
		if err != nil {
			log.Fatal(err)
		}
		printKeys(os.Stdout, t)
	}

	if *what == "matrix" || *what == "all" {
		m, err := output.DocTopics(*outDir)
		if err != nil {
			log.Fatal(err)
		}
		printMatrix(os.Stdout, m)
	}
}

func printKeys(out io.Writer, t *table.Strings) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	rows, cols := t.Shape()
	for r := 0; r < rows; r++ {
		fmt.Fprintf(w, "%s\t", t.RowLabels()[r])
		for c := 0; c < cols; c++ {
			fmt.Fprintf(w, "%s\t", t.At(r, c))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func printMatrix(out io.Writer, m *table.Dense) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "topic")
	for _, doc := range m.ColLabels() {
		fmt.Fprintf(w, "\t%s", doc)
	}
	fmt.Fprintln(w)

	rows, cols := m.Shape()
	labels := m.RowLabels()
	for r := 0; r < rows; r++ {
		fmt.Fprint(w, labels[r])
		for c := 0; c < cols; c++ {
			fmt.Fprintf(w, "\t%.4f", m.At(r, c))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
