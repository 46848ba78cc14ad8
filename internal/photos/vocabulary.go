package photos

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultTagNames seed every new vocabulary.
var DefaultTagNames = []string{"location", "person", "activity"}

// TagVocabulary is the append-only registry of tag names offered to the
// user. It is owned by a Session and discarded with it.
type TagVocabulary struct {
	names []string
}

// NewTagVocabulary returns a vocabulary seeded with DefaultTagNames.
func NewTagVocabulary() *TagVocabulary {
	return &TagVocabulary{names: slices.Clone(DefaultTagNames)}
}

// KnownNames returns the registered names in registration order.
func (v *TagVocabulary) KnownNames() []string {
	return slices.Clone(v.names)
}

// Register adds name if it is not already known.
func (v *TagVocabulary) Register(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: tag name is empty", ErrInvalidArgument)
	}
	if !slices.Contains(v.names, name) {
		v.names = append(v.names, name)
	}
	return nil
}

// IsKnown reports whether name has been registered.
func (v *TagVocabulary) IsKnown(name string) bool {
	return slices.Contains(v.names, strings.TrimSpace(name))
}
