package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-catalog/internal/config"
	"library-catalog/internal/logger"
	"library-catalog/library"
)

const defaultWidth = 80

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	svc *library.Service
	in  io.Reader
	out io.Writer
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:          "library",
		Short:        "In-memory library catalog and membership registry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(*cobra.Command, []string) error { return a.runInteractive() },
	}
	a.cfg = config.Bind(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "interactive",
			Short: "Run the numbered menu (default)",
			RunE:  func(*cobra.Command, []string) error { return a.runInteractive() },
		},
		&cobra.Command{
			Use:   "demo",
			Short: "Run a scripted walkthrough of every operation",
			RunE:  func(*cobra.Command, []string) error { return a.runDemo() },
		},
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := a.cfg.Load(cmd.Flags(), os.Getenv); err != nil {
		return err
	}
	a.log = logger.New(os.Stderr, a.cfg.LogFormat, a.cfg.Debug)
	a.svc = library.NewService(library.WithLogger(a.log))
	return nil
}

// seed loads the --seed CSV into the catalog. Only the interactive menu is
// seeded; the demo always starts from an empty catalog.
func (a *app) seed() error {
	if a.cfg.SeedFile == "" {
		return nil
	}
	f, err := os.Open(a.cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	res, err := a.svc.ImportBooks(f)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	a.log.Debug().Str("file", a.cfg.SeedFile).Int("added", res.Added).Msg("catalog seeded")
	return nil
}

// ---------------------------------------------------------------------------
// Interactive menu
// ---------------------------------------------------------------------------

var menuItems = []string{
	"Add New Book",
	"Register New Member",
	"Search Books",
	"Update Book Details",
	"Update Member Information",
	"Remove Book",
	"Remove Member",
	"Borrow Book",
	"Return Book",
	"Display All Books",
	"Display All Members",
	"Exit System",
}

func (a *app) runInteractive() error {
	if err := a.seed(); err != nil {
		return err
	}
	sc := bufio.NewScanner(a.in)
	fmt.Fprintln(a.out, "Welcome to the Library Management System!")

	for {
		printMenu(a.out, terminalWidth())
		choice, ok := prompt(sc, a.out, fmt.Sprintf("Enter your choice (1-%d): ", len(menuItems)))
		if !ok {
			return sc.Err()
		}

		switch choice {
		case "1":
			handleAddBook(sc, a.out, a.svc)
		case "2":
			handleAddMember(sc, a.out, a.svc)
		case "3":
			handleSearchBooks(sc, a.out, a.svc)
		case "4":
			handleUpdateBook(sc, a.out, a.svc)
		case "5":
			handleUpdateMember(sc, a.out, a.svc)
		case "6":
			handleDeleteBook(sc, a.out, a.svc)
		case "7":
			handleDeleteMember(sc, a.out, a.svc)
		case "8":
			handleBorrow(sc, a.out, a.svc)
		case "9":
			handleReturn(sc, a.out, a.svc)
		case "10":
			printBooks(a.out, a.svc.GetAllBooks())
		case "11":
			printMembers(a.out, a.svc.GetAllMembers())
		case "12":
			fmt.Fprintln(a.out, "Thank you for using the Library Management System!")
			return nil
		default:
			fmt.Fprintf(a.out, "Please enter a valid choice (1-%d)!\n", len(menuItems))
		}
	}
}

// terminalWidth falls back to defaultWidth when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func printMenu(w io.Writer, width int) {
	rule := strings.Repeat("=", width/2)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "LIBRARY MANAGEMENT SYSTEM")
	fmt.Fprintln(w, rule)
	for i, item := range menuItems {
		fmt.Fprintf(w, "%2d. %s\n", i+1, item)
	}
	fmt.Fprintln(w, rule)
}

// prompt prints label and returns the trimmed next line. ok is false at end
// of input.
func prompt(sc *bufio.Scanner, w io.Writer, label string) (string, bool) {
	fmt.Fprint(w, label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func report(w io.Writer, ok bool, success, failure string) {
	if ok {
		fmt.Fprintln(w, success)
		return
	}
	fmt.Fprintln(w, failure)
}

func handleAddBook(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	isbn, ok := prompt(sc, w, "ISBN: ")
	if !ok {
		return
	}
	title, ok := prompt(sc, w, "Title: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, w, "Author: ")
	if !ok {
		return
	}
	genre, ok := prompt(sc, w, fmt.Sprintf("Genre %v: ", library.Genres()))
	if !ok {
		return
	}
	copiesStr, ok := prompt(sc, w, "Total copies: ")
	if !ok {
		return
	}
	copies, err := strconv.Atoi(copiesStr)
	if err != nil {
		fmt.Fprintln(w, "Total copies must be a number!")
		return
	}
	g, err := library.ParseGenre(genre)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	report(w, svc.AddBook(isbn, title, author, g, copies),
		fmt.Sprintf("Book '%s' added.", title),
		"Could not add book.")
}

func handleAddMember(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	name, ok := prompt(sc, w, "Name: ")
	if !ok {
		return
	}
	email, ok := prompt(sc, w, "Email: ")
	if !ok {
		return
	}
	if !svc.AddMember(name, email) {
		fmt.Fprintln(w, "Could not register member.")
		return
	}
	members := svc.GetAllMembers()
	fmt.Fprintf(w, "Member '%s' registered with ID %s\n", name, members[len(members)-1].ID)
}

func handleSearchBooks(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	fieldStr, ok := prompt(sc, w, "Search by (title/author): ")
	if !ok {
		return
	}
	query, ok := prompt(sc, w, "Search term: ")
	if !ok {
		return
	}
	field, err := library.ParseSearchField(fieldStr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	found, results := svc.SearchBooks(field, query)
	if !found {
		fmt.Fprintln(w, "Invalid search.")
		return
	}
	if len(results) == 0 {
		fmt.Fprintf(w, "No books found matching '%s'.\n", query)
		return
	}
	fmt.Fprintf(w, "Found %d book(s) matching '%s':\n", len(results), query)
	for _, r := range results {
		printBook(w, r.Book)
	}
}

func handleUpdateBook(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	isbn, ok := prompt(sc, w, "ISBN of book to update: ")
	if !ok {
		return
	}
	field, ok := prompt(sc, w, "Field to update (title/author/genre/total_copies): ")
	if !ok {
		return
	}
	value, ok := prompt(sc, w, "New value: ")
	if !ok {
		return
	}
	upd, err := library.ParseBookUpdate(field, value)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	report(w, svc.UpdateBook(isbn, upd), "Book updated.", "Could not update book.")
}

func handleUpdateMember(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	id, ok := prompt(sc, w, "Member ID to update: ")
	if !ok {
		return
	}
	field, ok := prompt(sc, w, "Field to update (name/email): ")
	if !ok {
		return
	}
	value, ok := prompt(sc, w, "New value: ")
	if !ok {
		return
	}
	upd, err := library.ParseMemberUpdate(field, value)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	report(w, svc.UpdateMember(library.MemberID(id), upd), "Member updated.", "Could not update member.")
}

func handleDeleteBook(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	isbn, ok := prompt(sc, w, "ISBN of book to remove: ")
	if !ok {
		return
	}
	report(w, svc.DeleteBook(isbn), "Book removed.", "Could not remove book.")
}

func handleDeleteMember(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	id, ok := prompt(sc, w, "Member ID to remove: ")
	if !ok {
		return
	}
	report(w, svc.DeleteMember(library.MemberID(id)), "Member removed.", "Could not remove member.")
}

func handleBorrow(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	id, ok := prompt(sc, w, "Member ID: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, w, "ISBN of book to borrow: ")
	if !ok {
		return
	}
	if !svc.BorrowBook(library.MemberID(id), isbn) {
		fmt.Fprintln(w, "Could not borrow book.")
		return
	}
	m := svc.GetMemberDetails(library.MemberID(id))
	fmt.Fprintf(w, "Book '%s' borrowed. %s now has %d book(s).\n",
		svc.GetBookDetails(isbn).Title, m.Name, len(m.BorrowedBooks))
}

func handleReturn(sc *bufio.Scanner, w io.Writer, svc *library.Service) {
	id, ok := prompt(sc, w, "Member ID: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, w, "ISBN of book to return: ")
	if !ok {
		return
	}
	report(w, svc.ReturnBook(library.MemberID(id), isbn), "Book returned.", "Could not return book.")
}

// ---------------------------------------------------------------------------
// Listings
// ---------------------------------------------------------------------------

func printBook(w io.Writer, b *library.Book) {
	status := "Available"
	if !b.InStock() {
		status = "Out of Stock"
	}
	fmt.Fprintf(w, "%s by %s\n", b.Title, b.Author)
	fmt.Fprintf(w, "   ISBN: %s\n", b.ISBN)
	fmt.Fprintf(w, "   Genre: %s\n", b.Genre)
	fmt.Fprintf(w, "   Status: %d/%d copies - %s\n", b.AvailableCopies, b.TotalCopies, status)
}

func printBooks(w io.Writer, books []*library.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books in the library collection yet.")
		return
	}
	for _, b := range books {
		printBook(w, b)
		fmt.Fprintln(w, "   "+strings.Repeat("=", 30))
	}
}

func printMembers(w io.Writer, members []*library.Member) {
	if len(members) == 0 {
		fmt.Fprintln(w, "No members registered in the library yet.")
		return
	}
	for _, m := range members {
		fmt.Fprintln(w, m.Name)
		fmt.Fprintf(w, "   ID: %s\n", m.ID)
		fmt.Fprintf(w, "   Email: %s\n", m.Email)
		fmt.Fprintf(w, "   Borrowed Books: %d\n", len(m.BorrowedBooks))
	}
}
