package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"library-catalog/internal/logger"
	"library-catalog/library"
)

func main() {
	if err := newImportCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newImportCmd(out io.Writer) *cobra.Command {
	var (
		logFormat string
		debug     bool
	)
	cmd := &cobra.Command{
		Use:          "import_books <books.csv>",
		Short:        "Check a CSV of books (isbn,title,author,genre,copies) against the catalog rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			log := logger.New(os.Stderr, logFormat, debug)
			svc := library.NewService(library.WithLogger(log))
			return importFile(out, svc, args[0])
		},
	}
	cmd.Flags().StringVar(&logFormat, "log-format", logger.FormatConsole, "log output format (console|json)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func importFile(out io.Writer, svc *library.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintf(out, "Importing books from %s...\n", path)
	report, err := svc.ImportBooks(f)
	if err != nil {
		return err
	}

	for _, fail := range report.Failures {
		fmt.Fprintf(out, "line %d (%s): ERROR - %v\n", fail.Line, fail.ISBN, fail.Err)
	}
	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully imported: %d books\n", report.Added)
	fmt.Fprintf(out, "Errors: %d\n", len(report.Failures))

	if report.Added == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nImported books:")
	fmt.Fprintf(out, "%-15s %-40s %-25s %-20s %s\n", "ISBN", "Title", "Author", "Genre", "Copies")
	fmt.Fprintln(out, strings.Repeat("-", 110))
	for _, b := range svc.GetAllBooks() {
		fmt.Fprintf(out, "%-15s %-40s %-25s %-20s %d\n",
			b.ISBN, truncateString(b.Title, 40), truncateString(b.Author, 25), b.Genre, b.TotalCopies)
	}
	return nil
}

// truncateString shortens s to at most maxLen runes, marking the cut with an
// ellipsis when there is room for one.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
