package photos

import (
	"fmt"
	"strings"
	"time"
)

// The query functions are pure: they never mutate their input and always
// return matches in input order. A nil result means nothing matched.

// ByDateRange returns photos whose modification time lies in [start, end].
func ByDateRange(photos []*Photo, start, end time.Time) ([]*Photo, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return filter(photos, func(p *Photo) bool {
		return !p.lastModified.Before(start) && !p.lastModified.After(end)
	}), nil
}

// BySingleTag returns photos tagged name=value.
func BySingleTag(photos []*Photo, name, value string) []*Photo {
	return filter(photos, func(p *Photo) bool { return p.HasTag(name, value) })
}

// ByTagsAnd returns photos carrying both tags.
func ByTagsAnd(photos []*Photo, t1, t2 Tag) []*Photo {
	return filter(photos, func(p *Photo) bool {
		return p.HasTag(t1.name, t1.value) && p.HasTag(t2.name, t2.value)
	})
}

// ByTagsOr returns photos carrying at least one of the tags.
func ByTagsOr(photos []*Photo, t1, t2 Tag) []*Photo {
	return filter(photos, func(p *Photo) bool {
		return p.HasTag(t1.name, t1.value) || p.HasTag(t2.name, t2.value)
	})
}

// Materialize stores photos as a new album of user. Unlike User.AddAlbum,
// the name check here ignores case so results cannot land next to a
// near-duplicate album name. The album references the user's existing
// photo instances, never copies.
func Materialize(user *User, name string, photos []*Photo) (*Album, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: no user", ErrInvalidArgument)
	}
	album, err := NewAlbum(name)
	if err != nil {
		return nil, err
	}
	for _, a := range user.albums {
		if strings.EqualFold(a.name, album.name) {
			return nil, fmt.Errorf("%w: %q collides with %q", ErrDuplicateAlbumName, album.name, a.name)
		}
	}
	for _, p := range photos {
		if p == nil || album.Contains(p) {
			continue
		}
		album.photos = append(album.photos, p)
	}
	if err := user.AddAlbum(album); err != nil {
		return nil, err
	}
	return album, nil
}

func filter(photos []*Photo, keep func(*Photo) bool) []*Photo {
	var out []*Photo
	for _, p := range photos {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// TagOp selects how a tag query combines its tags.
type TagOp int

const (
	TagSingle TagOp = iota
	TagAnd
	TagOr
)

// Query describes one search: either a date range or a tag predicate.
// It is the value the CLI builds from user input.
type Query struct {
	Start, End time.Time
	dated      bool

	Op     TagOp
	First  Tag
	Second Tag
}

// DateQuery builds a query over [start, end].
func DateQuery(start, end time.Time) Query {
	return Query{Start: start, End: end, dated: true}
}

// TagQuery builds a single-tag query.
func TagQuery(t Tag) Query {
	return Query{Op: TagSingle, First: t}
}

// CombinedTagQuery builds an AND or OR query over two tags.
func CombinedTagQuery(op TagOp, t1, t2 Tag) (Query, error) {
	if op != TagAnd && op != TagOr {
		return Query{}, fmt.Errorf("%w: combined tag query needs and/or", ErrInvalidArgument)
	}
	return Query{Op: op, First: t1, Second: t2}, nil
}

// Run applies the query to photos.
func (q Query) Run(photos []*Photo) ([]*Photo, error) {
	if q.dated {
		return ByDateRange(photos, q.Start, q.End)
	}
	switch q.Op {
	case TagSingle:
		return BySingleTag(photos, q.First.name, q.First.value), nil
	case TagAnd:
		return ByTagsAnd(photos, q.First, q.Second), nil
	case TagOr:
		return ByTagsOr(photos, q.First, q.Second), nil
	default:
		return nil, fmt.Errorf("%w: unknown tag operator %d", ErrInvalidArgument, q.Op)
	}
}

func (q Query) String() string {
	if q.dated {
		return fmt.Sprintf("date %s..%s", q.Start.Format(time.DateOnly), q.End.Format(time.DateOnly))
	}
	switch q.Op {
	case TagAnd:
		return fmt.Sprintf("%s AND %s", q.First, q.Second)
	case TagOr:
		return fmt.Sprintf("%s OR %s", q.First, q.Second)
	default:
		return q.First.String()
	}
}
