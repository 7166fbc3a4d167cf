package core

// Registry holds the readers and librarians of the library.
type Registry struct {
	users      []*User
	librarians []*Librarian
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		users:      make([]*User, 0),
		librarians: make([]*Librarian, 0),
	}
}

// RegisterUser adds a reader, a reader with the same identifier is replaced.
func (r *Registry) RegisterUser(user *User) {
	if user == nil {
		return
	}

	for i, existing := range r.users {
		if existing.ID() == user.ID() {
			r.users[i] = user
			return
		}
	}

	r.users = append(r.users, user)
}

// ReplaceUsers drops all readers and registers the given ones.
func (r *Registry) ReplaceUsers(users []*User) {
	r.users = make([]*User, 0, len(users))

	for _, user := range users {
		r.RegisterUser(user)
	}
}

// HireLibrarian adds a librarian.
func (r *Registry) HireLibrarian(librarian *Librarian) {
	if librarian == nil {
		return
	}

	r.librarians = append(r.librarians, librarian)
}

// User returns the reader with the given identifier.
func (r *Registry) User(id PersonIDString) (*User, bool) {
	for _, user := range r.users {
		if user.ID() == id {
			return user, true
		}
	}

	return nil, false
}

// Librarian returns the librarian with the given identifier.
func (r *Registry) Librarian(id PersonIDString) (*Librarian, bool) {
	for _, librarian := range r.librarians {
		if librarian.ID() == id {
			return librarian, true
		}
	}

	return nil, false
}

// Users returns all readers in registration order.
func (r *Registry) Users() []*User {
	return append(make([]*User, 0, len(r.users)), r.users...)
}

// Librarians returns all librarians in hiring order.
func (r *Registry) Librarians() []*Librarian {
	return append(make([]*Librarian, 0, len(r.librarians)), r.librarians...)
}
