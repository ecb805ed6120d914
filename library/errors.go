package library

import "errors"

var (
	ErrEmptyField    = errors.New("field cannot be empty")
	ErrInvalidGenre  = errors.New("invalid genre")
	ErrInvalidCopies = errors.New("invalid number of copies")
	ErrUnknownField  = errors.New("unknown field")

	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book with this ISBN already exists")
	ErrCopiesOnLoan = errors.New("some copies are currently borrowed")

	ErrMemberNotFound   = errors.New("member not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrHasBorrowedBooks = errors.New("member still has borrowed books")

	ErrBorrowLimit     = errors.New("borrow limit reached")
	ErrNotAvailable    = errors.New("no copies available")
	ErrAlreadyBorrowed = errors.New("book already borrowed by this member")
	ErrNotBorrowed     = errors.New("book not borrowed by this member")

	ErrInvalidSearchField = errors.New("invalid search field")
)
