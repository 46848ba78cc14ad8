package photos_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"photos-go/internal/photos"
)

func paths(ps []*photos.Photo) string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Path())
	}
	return strings.Join(out, ",")
}

func TestByDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	all := []*photos.Photo{
		newPhoto("before", start.Add(-time.Nanosecond)),
		newPhoto("at-start", start),
		newPhoto("middle", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		newPhoto("at-end", end),
		newPhoto("after", end.Add(time.Nanosecond)),
	}

	got, err := photos.ByDateRange(all, start, end)
	if err != nil {
		t.Fatalf("ByDateRange() error = %v", err)
	}
	if want := "at-start,middle,at-end"; paths(got) != want {
		t.Errorf("ByDateRange() = %s, want %s", paths(got), want)
	}

	got, err = photos.ByDateRange(all, start, start)
	if err != nil || paths(got) != "at-start" {
		t.Errorf("ByDateRange(start, start) = %s, %v; want at-start", paths(got), err)
	}

	if _, err := photos.ByDateRange(all, end, start); !errors.Is(err, photos.ErrInvalidRange) {
		t.Errorf("ByDateRange(reversed) error = %v, want ErrInvalidRange", err)
	}
}

func TestBySingleTag_ParisRome(t *testing.T) {
	p1 := newPhoto("p1", day(2024, 1, 1))
	p2 := newPhoto("p2", day(2024, 1, 2))
	p3 := newPhoto("p3", day(2024, 1, 3))
	p1.AddTag(mustTag(t, "location", "Paris"))
	p2.AddTag(mustTag(t, "location", "Rome"))
	p3.AddTag(mustTag(t, "location", "Paris"))
	all := []*photos.Photo{p1, p2, p3}

	if got := photos.BySingleTag(all, "location", "Paris"); paths(got) != "p1,p3" {
		t.Errorf("BySingleTag(Paris) = %s, want p1,p3", paths(got))
	}
	if got := photos.BySingleTag(all, "location", "Rome"); paths(got) != "p2" {
		t.Errorf("BySingleTag(Rome) = %s, want p2", paths(got))
	}
	if got := photos.BySingleTag(all, "location", "paris"); got != nil {
		t.Errorf("BySingleTag(paris) = %s, want no match", paths(got))
	}
}

func TestByTags_AndSubsetOfOr(t *testing.T) {
	paris := mustTag(t, "location", "Paris")
	ana := mustTag(t, "person", "Ana")

	both := newPhoto("both", day(2024, 1, 1))
	both.AddTag(paris)
	both.AddTag(ana)
	onlyParis := newPhoto("paris", day(2024, 1, 2))
	onlyParis.AddTag(paris)
	onlyAna := newPhoto("ana", day(2024, 1, 3))
	onlyAna.AddTag(ana)
	neither := newPhoto("neither", day(2024, 1, 4))
	all := []*photos.Photo{both, onlyParis, onlyAna, neither}

	and := photos.ByTagsAnd(all, paris, ana)
	or := photos.ByTagsOr(all, paris, ana)

	if paths(and) != "both" {
		t.Errorf("ByTagsAnd() = %s, want both", paths(and))
	}
	if paths(or) != "both,paris,ana" {
		t.Errorf("ByTagsOr() = %s, want both,paris,ana", paths(or))
	}
	for _, p := range and {
		found := false
		for _, q := range or {
			found = found || q == p
		}
		if !found {
			t.Errorf("%s in AND result but not in OR result", p.Path())
		}
	}

	if len(all) != 4 || all[0] != both {
		t.Error("query mutated its input")
	}
}

func TestMaterialize(t *testing.T) {
	alice := mustUser(t, "alice")
	trip := mustAlbum(t, alice, "Trip")
	a := newPhoto("/pics/a.jpg", day(2024, 1, 1))
	b := newPhoto("/pics/b.jpg", day(2024, 1, 2))
	alice.AddPhoto(trip, a)
	alice.AddPhoto(trip, b)

	t.Run("case-insensitive collision", func(t *testing.T) {
		if _, err := photos.Materialize(alice, "TRIP", []*photos.Photo{a}); !errors.Is(err, photos.ErrDuplicateAlbumName) {
			t.Errorf("Materialize(TRIP) error = %v, want ErrDuplicateAlbumName", err)
		}
		if len(alice.Albums()) != 1 {
			t.Errorf("albums = %d after rejected materialize, want 1", len(alice.Albums()))
		}
	})

	t.Run("references existing instances", func(t *testing.T) {
		twin := newPhoto("/pics/a.jpg", day(2024, 1, 1))
		album, err := photos.Materialize(alice, "Results", []*photos.Photo{twin, b, a})
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		got := album.Photos()
		if len(got) != 2 {
			t.Fatalf("album has %d photos, want 2", len(got))
		}
		if got[0] != a || got[1] != b {
			t.Error("materialized album should hold the user's existing photo instances")
		}
		if alice.FindAlbum("Results") != album {
			t.Error("materialized album not added to user")
		}
	})

	t.Run("empty result", func(t *testing.T) {
		album, err := photos.Materialize(alice, "Nothing", nil)
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}
		if album.Len() != 0 {
			t.Errorf("Len() = %d, want 0", album.Len())
		}
	})
}

func TestQuery_Run(t *testing.T) {
	paris := mustTag(t, "location", "Paris")
	rome := mustTag(t, "location", "Rome")
	p1 := newPhoto("p1", day(2024, 1, 1))
	p1.AddTag(paris)
	p2 := newPhoto("p2", day(2024, 2, 1))
	p2.AddTag(rome)
	all := []*photos.Photo{p1, p2}

	orQuery, err := photos.CombinedTagQuery(photos.TagOr, paris, rome)
	if err != nil {
		t.Fatalf("CombinedTagQuery() error = %v", err)
	}
	andQuery, _ := photos.CombinedTagQuery(photos.TagAnd, paris, rome)

	tests := []struct {
		name  string
		query photos.Query
		want  string
		str   string
	}{
		{name: "date", query: photos.DateQuery(day(2024, 1, 1), day(2024, 1, 31)), want: "p1", str: "date 2024-01-01..2024-01-31"},
		{name: "single tag", query: photos.TagQuery(rome), want: "p2", str: "location=Rome"},
		{name: "or", query: orQuery, want: "p1,p2", str: "location=Paris OR location=Rome"},
		{name: "and", query: andQuery, want: "", str: "location=Paris AND location=Rome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.Run(all)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if paths(got) != tt.want {
				t.Errorf("Run() = %s, want %s", paths(got), tt.want)
			}
			if tt.query.String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.query.String(), tt.str)
			}
		})
	}

	if _, err := photos.CombinedTagQuery(photos.TagSingle, paris, rome); !errors.Is(err, photos.ErrInvalidArgument) {
		t.Errorf("CombinedTagQuery(single) error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, err := photos.ParseDateRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("ParseDateRange() error = %v", err)
	}
	if start.Format(time.DateTime) != "2024-01-01 00:00:00" {
		t.Errorf("start = %v", start)
	}
	lastMoment := time.Date(2024, 1, 31, 23, 59, 59, 0, time.Local)
	if end.Before(lastMoment) || !end.Before(lastMoment.Add(time.Second)) {
		t.Errorf("end = %v, want the last instant of 2024-01-31", end)
	}

	if _, _, err := photos.ParseDateRange("2024-02-01", "2024-01-01"); !errors.Is(err, photos.ErrInvalidRange) {
		t.Errorf("ParseDateRange(reversed) error = %v, want ErrInvalidRange", err)
	}
	if _, _, err := photos.ParseDateRange("01/02/2024", "2024-01-01"); !errors.Is(err, photos.ErrInvalidArgument) {
		t.Errorf("ParseDateRange(bad format) error = %v, want ErrInvalidArgument", err)
	}

	single, singleEnd, err := photos.ParseDateRange("2024-03-05", "2024-03-05")
	if err != nil || !singleEnd.After(single) {
		t.Errorf("ParseDateRange(same day) = %v..%v, %v", single, singleEnd, err)
	}
}
