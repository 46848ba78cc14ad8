package app

import (
	"fmt"

	"photos-go/internal/photos"
)

// QueryFlags holds the raw search options given on the command line.
type QueryFlags struct {
	From, To string
	Tag      string
	And, Or  string
}

// BuildQuery turns command-line search options into a query. Exactly one
// of a date range (From and To) or a tag search (Tag, optionally with And
// or Or) must be given.
func BuildQuery(f QueryFlags) (photos.Query, error) {
	dated := f.From != "" || f.To != ""
	tagged := f.Tag != "" || f.And != "" || f.Or != ""

	switch {
	case dated && tagged:
		return photos.Query{}, fmt.Errorf("%w: search by date or by tag, not both", photos.ErrInvalidArgument)
	case dated:
		if f.From == "" || f.To == "" {
			return photos.Query{}, fmt.Errorf("%w: a date search needs both --from and --to", photos.ErrInvalidArgument)
		}
		start, end, err := photos.ParseDateRange(f.From, f.To)
		if err != nil {
			return photos.Query{}, err
		}
		return photos.DateQuery(start, end), nil
	case !tagged:
		return photos.Query{}, fmt.Errorf("%w: give --from/--to or --tag", photos.ErrInvalidArgument)
	}

	if f.Tag == "" {
		return photos.Query{}, fmt.Errorf("%w: --and and --or need --tag", photos.ErrInvalidArgument)
	}
	if f.And != "" && f.Or != "" {
		return photos.Query{}, fmt.Errorf("%w: use either --and or --or", photos.ErrInvalidArgument)
	}
	first, err := photos.ParseTag(f.Tag)
	if err != nil {
		return photos.Query{}, err
	}

	op, other := photos.TagSingle, ""
	switch {
	case f.And != "":
		op, other = photos.TagAnd, f.And
	case f.Or != "":
		op, other = photos.TagOr, f.Or
	default:
		return photos.TagQuery(first), nil
	}
	second, err := photos.ParseTag(other)
	if err != nil {
		return photos.Query{}, err
	}
	return photos.CombinedTagQuery(op, first, second)
}
