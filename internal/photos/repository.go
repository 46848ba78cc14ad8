package photos

// Repository persists whole user graphs, one record per username.
type Repository interface {
	// Save writes the user's full graph. Either the new record is fully
	// written or the previous one is left as it was.
	Save(user *User) error

	// Load reads a user. Errors match ErrNotFound or ErrCorrupt.
	Load(username string) (*User, error)

	// LoadAll reads every stored user. Corrupt records are skipped and
	// logged rather than failing the whole scan.
	LoadAll() (map[string]*User, error)

	// Delete removes a user's record. Deleting a missing user succeeds.
	Delete(username string) error

	// List returns the usernames that have a record, sorted.
	List() ([]string, error)
}
