package main

import (
	"fmt"
	"io"
	"strings"

	"library-catalog/library"
)

const demoWidth = 70

type demoBook struct {
	isbn, title, author string
	genre               library.Genre
	copies              int
}

var demoBooks = []demoBook{
	{"978-0553382563", "Dune", "Frank Herbert", library.GenreScienceFiction, 5},
	{"978-0451524935", "1984", "George Orwell", library.GenreClassicLiterature, 4},
	{"978-0439064873", "The Hobbit", "J.R.R. Tolkien", library.GenreFantasy, 3},
	{"978-0307474278", "The Da Vinci Code", "Dan Brown", library.GenreThriller, 6},
	{"978-0061120084", "The Alchemist", "Paulo Coelho", library.GenreYoungAdult, 4},
	{"978-0140280197", "The Lean Startup", "Eric Ries", library.GenreBusiness, 5},
	{"978-0134685991", "Effective Java", "Joshua Bloch", library.GenreTechnology, 3},
	{"978-1591847786", "Hook Point", "Brendan Kane", library.GenreBusiness, 4},
	{"978-0307887894", "Ready Player One", "Ernest Cline", library.GenreScienceFiction, 3},
	{"978-0544003415", "The Lord of the Rings", "J.R.R. Tolkien", library.GenreFantasy, 4},
}

var demoMembers = [][2]string{
	{"John Smith", "john.smith@email.com"},
	{"Sarah Johnson", "sarah.johnson@email.com"},
	{"Michael Chen", "michael.chen@email.com"},
	{"Emily Davis", "emily.davis@email.com"},
	{"David Wilson", "david.wilson@email.com"},
	{"Lisa Brown", "lisa.brown@email.com"},
	{"Robert Taylor", "robert.taylor@email.com"},
	{"Maria Garcia", "maria.garcia@email.com"},
	{"James Miller", "james.miller@email.com"},
	{"Jennifer Lee", "jennifer.lee@email.com"},
}

func (a *app) runDemo() error {
	if a.cfg.SeedFile != "" {
		a.log.Warn().Str("file", a.cfg.SeedFile).Msg("demo ignores the seed file")
	}
	runDemo(a.out, a.svc)
	return nil
}

// runDemo walks through every service operation against svc, which must be
// empty: the printed counts and member ids depend on it.
func runDemo(w io.Writer, svc *library.Service) {
	section := func(n int, title string) {
		fmt.Fprintf(w, "\n%d. %s\n%s\n", n, title, strings.Repeat("-", demoWidth))
	}
	outcome := func(what string, ok bool) {
		status := "ok"
		if !ok {
			status = "refused"
		}
		fmt.Fprintf(w, "   %-50s %s\n", what, status)
	}

	fmt.Fprintln(w, strings.Repeat("=", demoWidth))
	fmt.Fprintln(w, "LIBRARY MANAGEMENT SYSTEM - DEMO")
	fmt.Fprintln(w, strings.Repeat("=", demoWidth))

	section(1, "ADDING BOOKS TO COLLECTION")
	for _, b := range demoBooks {
		outcome("add "+b.title, svc.AddBook(b.isbn, b.title, b.author, b.genre, b.copies))
	}

	section(2, "REGISTERING MEMBERS")
	for _, m := range demoMembers {
		outcome("register "+m[0], svc.AddMember(m[0], m[1]))
	}

	section(3, "CURRENT LIBRARY STATUS")
	printAvailability(w, svc)

	section(4, "SEARCHING LIBRARY CATALOG")
	for _, q := range []struct {
		field library.SearchField
		term  string
	}{
		{library.SearchByTitle, "Lord"},
		{library.SearchByAuthor, "Tolkien"},
	} {
		fmt.Fprintf(w, "   %s contains '%s':\n", q.field, q.term)
		if ok, results := svc.SearchBooks(q.field, q.term); ok {
			for _, r := range results {
				fmt.Fprintf(w, "      %s by %s\n", r.Book.Title, r.Book.Author)
			}
		}
	}

	members := svc.GetAllMembers()
	john, sarah, michael := members[0].ID, members[1].ID, members[2].ID

	section(5, "BORROWING BOOKS")
	for _, isbn := range []string{"978-0553382563", "978-0451524935", "978-0439064873"} {
		outcome(fmt.Sprintf("%s borrows %s", john, svc.GetBookDetails(isbn).Title), svc.BorrowBook(john, isbn))
	}
	outcome(fmt.Sprintf("%s borrows a fourth book", john), svc.BorrowBook(john, "978-0307474278"))
	outcome(fmt.Sprintf("%s borrows The Alchemist", sarah), svc.BorrowBook(sarah, "978-0061120084"))

	section(6, "TESTING UNAVAILABLE BOOK SCENARIO")
	dune := svc.GetBookDetails("978-0553382563")
	for dune.InStock() {
		if !svc.BorrowBook(pickBorrower(svc, dune.ISBN), dune.ISBN) {
			break
		}
	}
	outcome(fmt.Sprintf("%s borrows Dune with %d/%d left", sarah, dune.AvailableCopies, dune.TotalCopies),
		svc.BorrowBook(sarah, dune.ISBN))

	section(7, "RETURNING BOOKS")
	outcome(fmt.Sprintf("%s returns Dune", john), svc.ReturnBook(john, dune.ISBN))
	outcome(fmt.Sprintf("%s borrows the returned Dune", sarah), svc.BorrowBook(sarah, dune.ISBN))

	section(8, "UPDATING LIBRARY RECORDS")
	outcome("The Da Vinci Code copies -> 8", svc.UpdateBook("978-0307474278", library.SetTotalCopies(8)))
	outcome(fmt.Sprintf("%s email -> michael.new@email.com", michael),
		svc.UpdateMember(michael, library.SetEmail("michael.new@email.com")))

	section(9, "FINAL LIBRARY STATUS")
	printAvailability(w, svc)
	for _, m := range svc.GetAllMembers() {
		titles := make([]string, 0, len(m.BorrowedBooks))
		for _, isbn := range m.BorrowedBooks {
			if b := svc.GetBookDetails(isbn); b != nil {
				titles = append(titles, b.Title)
			}
		}
		fmt.Fprintf(w, "   %s: %d books %v\n", m.Name, len(m.BorrowedBooks), titles)
	}

	section(10, "DELETE OPERATIONS WITH CONSTRAINTS")
	outcome(fmt.Sprintf("delete %s (has borrowed books)", john), svc.DeleteMember(john))
	outcome("delete 1984 (copies on loan)", svc.DeleteBook("978-0451524935"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", demoWidth))
	fmt.Fprintln(w, "DEMO COMPLETED")
	fmt.Fprintln(w, strings.Repeat("=", demoWidth))
}

// pickBorrower returns the first member who may still borrow isbn, skipping
// the first two members so the demo's own borrowers keep their slots.
func pickBorrower(svc *library.Service, isbn string) library.MemberID {
	for _, m := range svc.GetAllMembers()[2:] {
		if len(m.BorrowedBooks) < library.MaxBorrowedBooks && !m.HasBorrowed(isbn) {
			return m.ID
		}
	}
	return ""
}

func printAvailability(w io.Writer, svc *library.Service) {
	for _, b := range svc.GetAllBooks() {
		fmt.Fprintf(w, "   %s - Available: %d/%d\n", b.Title, b.AvailableCopies, b.TotalCopies)
	}
	for _, m := range svc.GetAllMembers() {
		fmt.Fprintf(w, "   %s (ID: %s) - Borrowed: %d\n", m.Name, m.ID, len(m.BorrowedBooks))
	}
}
