package storage

// StoredUser is a registered identity as it sits in the local file.
// The password is kept in the clear: the local variant has no server to
// hash against and its file is only as private as the machine it lives
// on. This is the acknowledged weaker scheme of the two backends.
type StoredUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
