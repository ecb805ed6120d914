package library

import (
	"fmt"
	"strconv"
	"strings"
)

// BookUpdate is a single change to a catalog entry. The set of implementations
// is closed: SetTitle, SetAuthor, SetGenre and SetTotalCopies.
type BookUpdate interface {
	apply(b *Book) error
}

// MemberUpdate is a single change to a member record: SetName or SetEmail.
// Email uniqueness is checked by the service before apply is called.
type MemberUpdate interface {
	apply(m *Member) error
}

type (
	SetTitle       string
	SetAuthor      string
	SetGenre       Genre
	SetTotalCopies int

	SetName  string
	SetEmail string
)

func (u SetTitle) apply(b *Book) error {
	if u == "" {
		return fmt.Errorf("title: %w", ErrEmptyField)
	}
	b.Title = string(u)
	return nil
}

func (u SetAuthor) apply(b *Book) error {
	if u == "" {
		return fmt.Errorf("author: %w", ErrEmptyField)
	}
	b.Author = string(u)
	return nil
}

func (u SetGenre) apply(b *Book) error {
	g := Genre(u)
	if !g.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidGenre, string(u))
	}
	b.Genre = g
	return nil
}

// apply keeps the number of copies on loan and floors availability at zero,
// so the total may shrink below what is currently lent out.
func (u SetTotalCopies) apply(b *Book) error {
	n := int(u)
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCopies, n)
	}
	borrowed := b.Borrowed()
	b.TotalCopies = n
	b.AvailableCopies = max(0, n-borrowed)
	return nil
}

func (u SetName) apply(m *Member) error {
	if u == "" {
		return fmt.Errorf("name: %w", ErrEmptyField)
	}
	m.Name = string(u)
	return nil
}

func (u SetEmail) apply(m *Member) error {
	if u == "" {
		return fmt.Errorf("email: %w", ErrEmptyField)
	}
	m.Email = string(u)
	return nil
}

// Field names accepted by ParseBookUpdate and ParseMemberUpdate.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldGenre       = "genre"
	FieldTotalCopies = "total_copies"
	FieldName        = "name"
	FieldEmail       = "email"
)

// ParseBookUpdate turns a field name and raw value, as typed at a prompt,
// into a BookUpdate. Value checks beyond integer parsing happen when the
// update is applied.
func ParseBookUpdate(field, value string) (BookUpdate, error) {
	switch field {
	case FieldTitle:
		return SetTitle(value), nil
	case FieldAuthor:
		return SetAuthor(value), nil
	case FieldGenre:
		return SetGenre(value), nil
	case FieldTotalCopies:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: total copies must be a number", ErrInvalidCopies)
		}
		return SetTotalCopies(n), nil
	default:
		return nil, fmt.Errorf("%w %q: use %s, %s, %s or %s",
			ErrUnknownField, field, FieldTitle, FieldAuthor, FieldGenre, FieldTotalCopies)
	}
}

// ParseMemberUpdate is the member counterpart of ParseBookUpdate.
func ParseMemberUpdate(field, value string) (MemberUpdate, error) {
	switch field {
	case FieldName:
		return SetName(value), nil
	case FieldEmail:
		return SetEmail(value), nil
	default:
		return nil, fmt.Errorf("%w %q: use %s or %s", ErrUnknownField, field, FieldName, FieldEmail)
	}
}
