package library

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ImportFailure describes a CSV row that could not be added. Line is the
// 1-based line of the input the row starts on.
type ImportFailure struct {
	Line int
	ISBN string
	Err  error
}

// ImportReport summarises an ImportBooks run.
type ImportReport struct {
	Added    int
	Failures []ImportFailure
}

const importColumns = 5

// ImportBooks reads rows of isbn,title,author,genre,copies from r and adds
// each one to the catalog. An optional header row starting with "isbn" is
// skipped. Bad rows are reported and do not stop the import; only a
// malformed CSV stream returns an error.
func (s *Service) ImportBooks(r io.Reader) (ImportReport, error) {
	var report ImportReport

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read csv: %w", err)
		}
		if first && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "isbn") {
			continue
		}
		// physical line the record starts on; quoted fields may span lines
		line, _ := cr.FieldPos(0)

		isbn, err := s.importRow(rec)
		if err != nil {
			s.log.Warn().Err(err).Int("line", line).Str("isbn", isbn).Msg("import row skipped")
			report.Failures = append(report.Failures, ImportFailure{Line: line, ISBN: isbn, Err: err})
			continue
		}
		report.Added++
	}

	s.log.Info().Int("added", report.Added).Int("failed", len(report.Failures)).Msg("import finished")
	return report, nil
}

func (s *Service) importRow(rec []string) (string, error) {
	if len(rec) != importColumns {
		isbn := ""
		if len(rec) > 0 {
			isbn = strings.TrimSpace(rec[0])
		}
		return isbn, fmt.Errorf("want %d columns, got %d", importColumns, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	copies, err := strconv.Atoi(rec[4])
	if err != nil {
		return rec[0], fmt.Errorf("%w: %q", ErrInvalidCopies, rec[4])
	}
	genre, err := ParseGenre(rec[3])
	if err != nil {
		return rec[0], err
	}
	return rec[0], s.addBook(rec[0], rec[1], rec[2], genre, copies)
}
