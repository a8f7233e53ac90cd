// Package corpus provides adapters for loading and watching the FAQ corpus.
package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datadecoders/shopbot-go/internal/domain/entities"
)

// CSVLoader implements ports.CorpusLoader for CSV files with at least
// question and answer columns. Header names are case-insensitive; an
// intent column is picked up when present.
type CSVLoader struct{}

// NewCSVLoader creates a CSV corpus loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Load reads the corpus from the given path.
func (l *CSVLoader) Load(ctx context.Context, path string) (*entities.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (*entities.Corpus, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, validated per row below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}

	qCol, aCol, iCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "question":
			qCol = i
		case "answer":
			aCol = i
		case "intent":
			iCol = i
		}
	}
	if qCol < 0 || aCol < 0 {
		return nil, fmt.Errorf("corpus header missing question/answer columns: %v", header)
	}

	var entries []entities.FAQEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading corpus row: %w", err)
		}
		if qCol >= len(record) || aCol >= len(record) {
			continue
		}

		entry := entities.FAQEntry{
			Question: strings.TrimSpace(record[qCol]),
			Answer:   strings.TrimSpace(record[aCol]),
		}
		if entry.Question == "" || entry.Answer == "" {
			continue
		}
		if iCol >= 0 && iCol < len(record) {
			entry.Intent = strings.TrimSpace(record[iCol])
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("corpus has no usable rows")
	}
	return &entities.Corpus{Entries: entries}, nil
}
