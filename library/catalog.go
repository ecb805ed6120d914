package library

import "slices"

// catalog holds books keyed by ISBN and remembers insertion order, which
// drives listing and search result order.
type catalog struct {
	order  []string
	byISBN map[string]*Book
}

func newCatalog() *catalog {
	return &catalog{byISBN: make(map[string]*Book)}
}

func (c *catalog) get(isbn string) (*Book, bool) {
	b, ok := c.byISBN[isbn]
	return b, ok
}

func (c *catalog) insert(b *Book) {
	c.order = append(c.order, b.ISBN)
	c.byISBN[b.ISBN] = b
}

func (c *catalog) remove(isbn string) {
	if _, ok := c.byISBN[isbn]; !ok {
		return
	}
	delete(c.byISBN, isbn)
	if i := slices.Index(c.order, isbn); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

func (c *catalog) size() int { return len(c.order) }

// all returns the books in insertion order.
func (c *catalog) all() []*Book {
	books := make([]*Book, 0, len(c.order))
	for _, isbn := range c.order {
		books = append(books, c.byISBN[isbn])
	}
	return books
}

// registry is the ordered list of members.
type registry struct {
	members []*Member
}

func (r *registry) find(id MemberID) (*Member, bool) {
	for _, m := range r.members {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// emailTaken reports whether a member other than except uses email.
func (r *registry) emailTaken(email string, except MemberID) bool {
	for _, m := range r.members {
		if m.Email == email && m.ID != except {
			return true
		}
	}
	return false
}

func (r *registry) add(m *Member) { r.members = append(r.members, m) }

func (r *registry) remove(id MemberID) {
	r.members = slices.DeleteFunc(r.members, func(m *Member) bool { return m.ID == id })
}
