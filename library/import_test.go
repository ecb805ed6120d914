package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBooks(t *testing.T) {
	csv := `isbn,title,author,genre,copies
978-0553382563,Dune,Frank Herbert,Science Fiction,5
978-0451524935,1984,George Orwell,Classic Literature,4
978-0061120084,The Alchemist,Paulo Coelho,Fiction,4
978-0553382563,Dune again,Frank Herbert,Science Fiction,1
978-0134685991,Effective Java,Joshua Bloch,Technology,three
978-0544003415,"The Lord of the Rings",J.R.R. Tolkien,Fantasy
`
	svc := NewService()
	report, err := svc.ImportBooks(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Added)
	require.Len(t, report.Failures, 4)
	assert.Equal(t, 4, report.Failures[0].Line)
	assert.ErrorIs(t, report.Failures[0].Err, ErrInvalidGenre)
	assert.ErrorIs(t, report.Failures[1].Err, ErrBookExists)
	assert.ErrorIs(t, report.Failures[2].Err, ErrInvalidCopies)
	assert.Equal(t, "978-0544003415", report.Failures[3].ISBN)

	books := svc.GetAllBooks()
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, 5, books[0].AvailableCopies)
}

func TestImportBooksMultilineField(t *testing.T) {
	csv := "isbn,title,author,genre,copies\n" +
		"LIB-1,\"A Title\nOver\nThree Lines\",Anon,Fantasy,1\n" +
		"LIB-2,Misfiled,Anon,Poetry,1\n"
	svc := NewService()
	report, err := svc.ImportBooks(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Added)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 5, report.Failures[0].Line)
	assert.Equal(t, "LIB-2", report.Failures[0].ISBN)
	assert.ErrorIs(t, report.Failures[0].Err, ErrInvalidGenre)
	assert.Contains(t, report.Failures[0].Err.Error(), `"Poetry"`)
}

func TestImportBooksWithoutHeader(t *testing.T) {
	svc := NewService()
	report, err := svc.ImportBooks(strings.NewReader("LIB-1, Art Book, Some Painter, Art & Design, 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, GenreArtAndDesign, svc.GetBookDetails("LIB-1").Genre)
}

func TestImportBooksFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("LIB-1,Hello,Anon,Thriller,1\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	svc := NewService()
	report, err := svc.ImportBooks(f)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Empty(t, report.Failures)
}

func TestImportBooksMalformedCSV(t *testing.T) {
	svc := NewService()
	_, err := svc.ImportBooks(strings.NewReader("LIB-1,\"unterminated,Anon,Thriller,1\n"))
	assert.Error(t, err)
}
