package library

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Service owns the catalog, the membership registry and the member id
// sequence. Every write reports success as a bool; the reason for a refusal
// is logged. A Service is not safe for concurrent use.
type Service struct {
	books   *catalog
	members *registry

	nextMemberSeq int
	log           zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to report accepted and refused operations.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService returns an empty library whose first member gets MEM001.
func NewService(opts ...Option) *Service {
	s := &Service{
		books:         newCatalog(),
		members:       &registry{},
		nextMemberSeq: 1,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ------------------ Books ------------------

// AddBook adds a new title with totalCopies copies on the shelf.
func (s *Service) AddBook(isbn, title, author string, genre Genre, totalCopies int) bool {
	if err := s.addBook(isbn, title, author, genre, totalCopies); err != nil {
		s.log.Warn().Err(err).Str("isbn", isbn).Msg("add book refused")
		return false
	}
	s.log.Info().Str("isbn", isbn).Str("title", title).Int("copies", totalCopies).Msg("book added")
	return true
}

func (s *Service) addBook(isbn, title, author string, genre Genre, totalCopies int) error {
	b, err := NewBook(isbn, title, author, genre, totalCopies)
	if err != nil {
		return err
	}
	if _, exists := s.books.get(isbn); exists {
		return fmt.Errorf("%w: %s", ErrBookExists, isbn)
	}
	s.books.insert(b)
	return nil
}

// UpdateBook applies a single change to the book identified by isbn.
func (s *Service) UpdateBook(isbn string, upd BookUpdate) bool {
	if err := s.updateBook(isbn, upd); err != nil {
		s.log.Warn().Err(err).Str("isbn", isbn).Msg("update book refused")
		return false
	}
	s.log.Info().Str("isbn", isbn).Str("change", fmt.Sprintf("%T", upd)).Msg("book updated")
	return true
}

func (s *Service) updateBook(isbn string, upd BookUpdate) error {
	b, ok := s.books.get(isbn)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBookNotFound, isbn)
	}
	if upd == nil {
		return ErrUnknownField
	}
	return upd.apply(b)
}

// DeleteBook removes a title, provided no copy is on loan.
func (s *Service) DeleteBook(isbn string) bool {
	if err := s.deleteBook(isbn); err != nil {
		s.log.Warn().Err(err).Str("isbn", isbn).Msg("delete book refused")
		return false
	}
	s.log.Info().Str("isbn", isbn).Msg("book removed")
	return true
}

func (s *Service) deleteBook(isbn string) error {
	b, ok := s.books.get(isbn)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBookNotFound, isbn)
	}
	if b.AvailableCopies < b.TotalCopies {
		return fmt.Errorf("%w: %d of %d", ErrCopiesOnLoan, b.Borrowed(), b.TotalCopies)
	}
	s.books.remove(isbn)
	return nil
}

// GetBookDetails returns the book for isbn, or nil.
func (s *Service) GetBookDetails(isbn string) *Book {
	b, _ := s.books.get(isbn)
	return b
}

// GetAllBooks returns the live book records in the order they were added.
func (s *Service) GetAllBooks() []*Book { return s.books.all() }

func (s *Service) BookCount() int { return s.books.size() }

// ------------------ Search ------------------

// SearchField selects the book attribute SearchBooks matches against.
type SearchField string

const (
	SearchByTitle  SearchField = "title"
	SearchByAuthor SearchField = "author"
)

// ParseSearchField validates a search field typed by a user.
func ParseSearchField(s string) (SearchField, error) {
	switch f := SearchField(s); f {
	case SearchByTitle, SearchByAuthor:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q: use %s or %s", ErrInvalidSearchField, s, SearchByTitle, SearchByAuthor)
	}
}

// SearchResult pairs a matched book with its catalog key.
type SearchResult struct {
	ISBN string
	Book *Book
}

// SearchBooks does a case-insensitive substring match on the chosen field.
// The bool is false only for an invalid query; no matches is still a
// successful search.
func (s *Service) SearchBooks(field SearchField, term string) (bool, []SearchResult) {
	results, err := s.searchBooks(field, term)
	if err != nil {
		s.log.Warn().Err(err).Str("field", string(field)).Msg("search refused")
		return false, nil
	}
	s.log.Debug().Str("field", string(field)).Str("term", term).Int("matches", len(results)).Msg("search done")
	return true, results
}

func (s *Service) searchBooks(field SearchField, term string) ([]SearchResult, error) {
	if term == "" {
		return nil, fmt.Errorf("search term: %w", ErrEmptyField)
	}
	var pick func(*Book) string
	switch field {
	case SearchByTitle:
		pick = func(b *Book) string { return b.Title }
	case SearchByAuthor:
		pick = func(b *Book) string { return b.Author }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSearchField, field)
	}

	needle := strings.ToLower(term)
	results := []SearchResult{}
	for _, b := range s.books.all() {
		if strings.Contains(strings.ToLower(pick(b)), needle) {
			results = append(results, SearchResult{ISBN: b.ISBN, Book: b})
		}
	}
	return results, nil
}

// ------------------ Members ------------------

// AddMember registers a member under the next id in sequence.
func (s *Service) AddMember(name, email string) bool {
	m, err := s.addMember(name, email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("add member refused")
		return false
	}
	s.log.Info().Str("member_id", m.ID.String()).Str("name", m.Name).Msg("member registered")
	return true
}

func (s *Service) addMember(name, email string) (*Member, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email: %w", ErrEmptyField)
	}
	if s.members.emailTaken(email, "") {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	m, err := NewMember(FormatMemberID(s.nextMemberSeq), name, email)
	if err != nil {
		return nil, err
	}
	s.nextMemberSeq++
	s.members.add(m)
	return m, nil
}

// UpdateMember applies a single change to a member record.
func (s *Service) UpdateMember(id MemberID, upd MemberUpdate) bool {
	if err := s.updateMember(id, upd); err != nil {
		s.log.Warn().Err(err).Str("member_id", id.String()).Msg("update member refused")
		return false
	}
	s.log.Info().Str("member_id", id.String()).Str("change", fmt.Sprintf("%T", upd)).Msg("member updated")
	return true
}

func (s *Service) updateMember(id MemberID, upd MemberUpdate) error {
	m, ok := s.members.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	if upd == nil {
		return ErrUnknownField
	}
	if email, ok := upd.(SetEmail); ok && email != "" && s.members.emailTaken(string(email), id) {
		return fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	return upd.apply(m)
}

// DeleteMember removes a member who holds no books.
func (s *Service) DeleteMember(id MemberID) bool {
	if err := s.deleteMember(id); err != nil {
		s.log.Warn().Err(err).Str("member_id", id.String()).Msg("delete member refused")
		return false
	}
	s.log.Info().Str("member_id", id.String()).Msg("member removed")
	return true
}

func (s *Service) deleteMember(id MemberID) error {
	m, ok := s.members.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	if n := len(m.BorrowedBooks); n > 0 {
		return fmt.Errorf("%w: %d held", ErrHasBorrowedBooks, n)
	}
	s.members.remove(id)
	return nil
}

// GetMemberDetails returns the member for id, or nil.
func (s *Service) GetMemberDetails(id MemberID) *Member {
	m, _ := s.members.find(id)
	return m
}

// GetAllMembers returns the live member records in registration order.
func (s *Service) GetAllMembers() []*Member { return s.members.members }

func (s *Service) MemberCount() int { return len(s.members.members) }

// ------------------ Circulation ------------------

// BorrowBook lends one copy of isbn to the member.
func (s *Service) BorrowBook(id MemberID, isbn string) bool {
	held, err := s.borrowBook(id, isbn)
	if err != nil {
		s.log.Warn().Err(err).Str("member_id", id.String()).Str("isbn", isbn).Msg("borrow refused")
		return false
	}
	s.log.Info().Str("member_id", id.String()).Str("isbn", isbn).Int("held", held).Msg("book borrowed")
	return true
}

// borrowBook runs its checks in a fixed order; the first failure wins.
func (s *Service) borrowBook(id MemberID, isbn string) (int, error) {
	m, ok := s.members.find(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	if len(m.BorrowedBooks) >= MaxBorrowedBooks {
		return 0, fmt.Errorf("%w (%d books)", ErrBorrowLimit, MaxBorrowedBooks)
	}
	b, ok := s.books.get(isbn)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrBookNotFound, isbn)
	}
	if !b.InStock() {
		return 0, fmt.Errorf("%w: %s", ErrNotAvailable, b.Title)
	}
	if m.HasBorrowed(isbn) {
		return 0, fmt.Errorf("%w: %s", ErrAlreadyBorrowed, b.Title)
	}
	b.AvailableCopies--
	m.BorrowedBooks = append(m.BorrowedBooks, isbn)
	return len(m.BorrowedBooks), nil
}

// ReturnBook takes back a copy the member holds. Availability never rises
// above the total, which matters after the total was shrunk below the
// number of copies on loan.
func (s *Service) ReturnBook(id MemberID, isbn string) bool {
	if err := s.returnBook(id, isbn); err != nil {
		s.log.Warn().Err(err).Str("member_id", id.String()).Str("isbn", isbn).Msg("return refused")
		return false
	}
	s.log.Info().Str("member_id", id.String()).Str("isbn", isbn).Msg("book returned")
	return true
}

func (s *Service) returnBook(id MemberID, isbn string) error {
	m, ok := s.members.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	if !m.HasBorrowed(isbn) {
		return fmt.Errorf("%w: %s", ErrNotBorrowed, isbn)
	}
	b, ok := s.books.get(isbn)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBookNotFound, isbn)
	}
	m.removeBorrowed(isbn)
	b.AvailableCopies = min(b.AvailableCopies+1, b.TotalCopies)
	return nil
}
