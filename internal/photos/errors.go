package photos

import (
	"errors"
	"fmt"
)

// Error kinds returned by the library. Callers match them with errors.Is;
// every returned error wraps exactly one kind plus context.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("duplicate")
	ErrFileNotFound    = errors.New("file not found")
	ErrCorrupt         = errors.New("corrupt record")
	ErrIOFailure       = errors.New("i/o failure")
	ErrInvalidRange    = errors.New("invalid range")
	ErrAlbumNotOwned   = errors.New("album not owned by user")
)

// Specialized kinds. Each also matches its family (ErrDuplicate, ErrNotFound).
var (
	ErrDuplicatePhoto         = fmt.Errorf("%w photo", ErrDuplicate)
	ErrDuplicateTag           = fmt.Errorf("%w tag", ErrDuplicate)
	ErrDuplicateAlbumName     = fmt.Errorf("%w album name", ErrDuplicate)
	ErrDuplicateInDestination = fmt.Errorf("%w in destination album", ErrDuplicate)
	ErrDuplicateUser          = fmt.Errorf("%w user", ErrDuplicate)
	ErrTagNotFound            = fmt.Errorf("tag %w", ErrNotFound)
)

// ioFailure wraps a raw backend error so it matches ErrIOFailure while
// keeping the original cause reachable.
type ioFailure struct {
	op    string
	cause error
}

func (e *ioFailure) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrIOFailure, e.op, e.cause)
}

func (e *ioFailure) Unwrap() []error {
	return []error{ErrIOFailure, e.cause}
}

// IOFailure marks err as an IOFailure for operation op. A nil err stays nil.
func IOFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ioFailure{op: op, cause: err}
}
