package app

import (
	"errors"
	"testing"

	"photos-go/internal/photos"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		flags   QueryFlags
		want    string
		wantErr error
	}{
		{name: "date range", flags: QueryFlags{From: "2024-01-01", To: "2024-01-31"}, want: "date 2024-01-01..2024-01-31"},
		{name: "single tag", flags: QueryFlags{Tag: "location:Paris"}, want: "location=Paris"},
		{name: "and", flags: QueryFlags{Tag: "location:Paris", And: "person=Ana"}, want: "location=Paris AND person=Ana"},
		{name: "or", flags: QueryFlags{Tag: "location:Paris", Or: "location:Rome"}, want: "location=Paris OR location=Rome"},
		{name: "nothing", flags: QueryFlags{}, wantErr: photos.ErrInvalidArgument},
		{name: "date and tag", flags: QueryFlags{From: "2024-01-01", To: "2024-01-02", Tag: "a:b"}, wantErr: photos.ErrInvalidArgument},
		{name: "open date range", flags: QueryFlags{From: "2024-01-01"}, wantErr: photos.ErrInvalidArgument},
		{name: "reversed dates", flags: QueryFlags{From: "2024-02-01", To: "2024-01-01"}, wantErr: photos.ErrInvalidRange},
		{name: "and without tag", flags: QueryFlags{And: "a:b"}, wantErr: photos.ErrInvalidArgument},
		{name: "and with or", flags: QueryFlags{Tag: "a:b", And: "c:d", Or: "e:f"}, wantErr: photos.ErrInvalidArgument},
		{name: "malformed tag", flags: QueryFlags{Tag: "paris"}, wantErr: photos.ErrInvalidArgument},
		{name: "malformed second tag", flags: QueryFlags{Tag: "a:b", Or: "rome"}, wantErr: photos.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := BuildQuery(tt.flags)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("BuildQuery() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildQuery() error = %v", err)
			}
			if q.String() != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", q.String(), tt.want)
			}
		})
	}
}
