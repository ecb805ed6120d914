package library

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBorrowedBooks is the number of titles a member may hold at once.
const MaxBorrowedBooks = 3

const memberIDPrefix = "MEM"

// Book represents a catalog entry and its copy counts.
type Book struct {
	ISBN            string `json:"isbn" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	Genre           Genre  `json:"genre" validate:"required,genre"`
	TotalCopies     int    `json:"total_copies" validate:"gt=0"`
	AvailableCopies int    `json:"available_copies"`
}

// Member represents a registered library member.
type Member struct {
	ID            MemberID `json:"member_id"`
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required"`
	BorrowedBooks []string `json:"borrowed_books"`
}

// MemberID identifies a member, e.g. MEM001.
type MemberID string

// FormatMemberID renders the id handed to the seq-th registered member.
func FormatMemberID(seq int) MemberID {
	return MemberID(fmt.Sprintf("%s%03d", memberIDPrefix, seq))
}

func (id MemberID) String() string { return string(id) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return Genre(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// NewBook builds a book with every copy on the shelf.
func NewBook(isbn, title, author string, genre Genre, totalCopies int) (*Book, error) {
	b := &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Genre:           genre,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
	if err := validate.Struct(b); err != nil {
		return nil, validationError(err)
	}
	return b, nil
}

// NewMember builds a member with nothing borrowed.
func NewMember(id MemberID, name, email string) (*Member, error) {
	m := &Member{
		ID:            id,
		Name:          name,
		Email:         email,
		BorrowedBooks: []string{},
	}
	if err := validate.Struct(m); err != nil {
		return nil, validationError(err)
	}
	return m, nil
}

// Borrowed returns the number of copies currently lent out.
func (b *Book) Borrowed() int { return b.TotalCopies - b.AvailableCopies }

// InStock reports whether at least one copy can be borrowed.
func (b *Book) InStock() bool { return b.AvailableCopies > 0 }

// HasBorrowed reports whether the member currently holds isbn.
func (m *Member) HasBorrowed(isbn string) bool {
	return slices.Contains(m.BorrowedBooks, isbn)
}

func (m *Member) removeBorrowed(isbn string) {
	if i := slices.Index(m.BorrowedBooks, isbn); i >= 0 {
		m.BorrowedBooks = slices.Delete(m.BorrowedBooks, i, i+1)
	}
}

// validationError maps the first failed struct tag onto a package error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: %w", field, ErrEmptyField)
	case "genre":
		return fmt.Errorf("%w: %q", ErrInvalidGenre, fe.Value())
	case "gt":
		return fmt.Errorf("%w: %v", ErrInvalidCopies, fe.Value())
	default:
		return fmt.Errorf("%s: %w", field, err)
	}
}
