package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/config"
	"library-catalog/library"
)

func runCLI(t *testing.T, input string, args ...string) string {
	t.Helper()
	for _, key := range []string{config.EnvDebug, config.EnvLogFormat, config.EnvSeedFile} {
		t.Setenv(key, "")
	}
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &out)
	// a nil slice makes cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

func TestInteractiveSession(t *testing.T) {
	input := lines(
		"1", "978-1", "Dune", "Herbert", "Science Fiction", "5",
		"2", "Ann", "ann@x.com",
		"8", "MEM001", "978-1",
		"3", "title", "dune",
		"10",
		"11",
		"12",
	)
	out := runCLI(t, input)

	assert.Contains(t, out, "Book 'Dune' added.")
	assert.Contains(t, out, "Member 'Ann' registered with ID MEM001")
	assert.Contains(t, out, "Book 'Dune' borrowed. Ann now has 1 book(s).")
	assert.Contains(t, out, "Found 1 book(s) matching 'dune':")
	assert.Contains(t, out, "Status: 4/5 copies - Available")
	assert.Contains(t, out, "Borrowed Books: 1")
	assert.Contains(t, out, "Thank you for using the Library Management System!")
}

func TestInteractiveRefusals(t *testing.T) {
	input := lines(
		"1", "978-1", "Dune", "Herbert", "Poetry", "5",
		"1", "978-1", "Dune", "Herbert", "Fantasy", "five",
		"3", "genre", "Fantasy",
		"4", "978-1", "total_copies", "many",
		"5", "MEM001", "phone", "123",
		"6", "978-1",
		"7", "MEM001",
		"9", "MEM001", "978-1",
		"99",
		"12",
	)
	out := runCLI(t, input, "interactive")

	assert.Contains(t, out, `Error: invalid genre: "Poetry"`)
	assert.Contains(t, out, "Total copies must be a number!")
	assert.Contains(t, out, "Error: invalid search field")
	assert.Contains(t, out, "Error: invalid number of copies")
	assert.Contains(t, out, "Error: unknown field")
	assert.Contains(t, out, "Could not remove book.")
	assert.Contains(t, out, "Could not remove member.")
	assert.Contains(t, out, "Could not return book.")
	assert.Contains(t, out, "Please enter a valid choice (1-12)!")
}

func TestInteractiveStopsAtEndOfInput(t *testing.T) {
	out := runCLI(t, lines("11"))
	assert.Contains(t, out, "No members registered in the library yet.")
	assert.NotContains(t, out, "Thank you")
}

func TestSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte("isbn,title,author,genre,copies\nS-1,Seeded,Someone,Business,2\n"), 0o644))

	out := runCLI(t, lines("10", "12"), "--seed", path)
	assert.Contains(t, out, "Seeded by Someone")
	assert.Contains(t, out, "Status: 2/2 copies - Available")
}

func TestDemo(t *testing.T) {
	out := runCLI(t, "", "demo")

	assert.Contains(t, out, "Dune - Available: 0/5")
	assert.Contains(t, out, "The Da Vinci Code - Available: 8/8")
	assert.Regexp(t, `MEM001 borrows a fourth book\s+refused`, out)
	assert.Regexp(t, `MEM002 borrows Dune with 0/5 left\s+refused`, out)
	assert.Regexp(t, `MEM001 returns Dune\s+ok`, out)
	assert.Regexp(t, `delete MEM001 \(has borrowed books\)\s+refused`, out)
	assert.Regexp(t, `delete 1984 \(copies on loan\)\s+refused`, out)
	assert.Contains(t, out, "DEMO COMPLETED")
}

func TestDemoIgnoresSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte("S-1,Seeded,Someone,Business,2\n"), 0o644))

	out := runCLI(t, "", "demo", "--seed", path)
	assert.Contains(t, out, "Dune - Available: 0/5")
	assert.Regexp(t, `MEM001 borrows a fourth book\s+refused`, out)
	assert.NotContains(t, out, "Seeded")
}

func TestSeedFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte("S-1,Seeded,Someone,Business,2\n"), 0o644))

	var out bytes.Buffer
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvDebug, "")
	t.Setenv(config.EnvSeedFile, path)
	cmd := newRootCmd(strings.NewReader(lines("10", "12")), &out)
	cmd.SetArgs([]string{"interactive"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Seeded by Someone")
}

func TestRunCLIIgnoresAmbientEnv(t *testing.T) {
	t.Setenv(config.EnvSeedFile, filepath.Join(t.TempDir(), "missing.csv"))
	t.Setenv(config.EnvLogFormat, "xml")

	out := runCLI(t, lines("10", "12"))
	assert.Contains(t, out, "No books in the library collection yet.")
}

func TestDemoKeepsInvariants(t *testing.T) {
	var out bytes.Buffer
	svc := library.NewService()
	runDemo(&out, svc)

	for _, b := range svc.GetAllBooks() {
		assert.GreaterOrEqual(t, b.AvailableCopies, 0)
		assert.LessOrEqual(t, b.AvailableCopies, b.TotalCopies)
	}
	for _, m := range svc.GetAllMembers() {
		assert.LessOrEqual(t, len(m.BorrowedBooks), library.MaxBorrowedBooks)
	}
	assert.Equal(t, "michael.new@email.com", svc.GetMemberDetails("MEM003").Email)
}

func TestPrintMenuWidth(t *testing.T) {
	var out bytes.Buffer
	printMenu(&out, 40)
	assert.Contains(t, out.String(), strings.Repeat("=", 20)+"\n")
	assert.Contains(t, out.String(), "12. Exit System")
}
