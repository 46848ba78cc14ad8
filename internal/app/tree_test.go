package app

import (
	"strings"
	"testing"
	"time"

	"photos-go/internal/photos"
)

func TestRenderTree(t *testing.T) {
	user, _ := photos.NewUser("alice")
	trip, _ := user.CreateAlbum("Trip")
	user.CreateAlbum("Empty")

	ana, _ := photos.NewTag("person", "Ana")
	p := photos.RestorePhoto("/pics/a.jpg", "Beach day", time.Date(2024, 8, 2, 12, 0, 0, 0, time.UTC), []photos.Tag{ana})
	user.AddPhoto(trip, p)

	got := RenderTree(user)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != "alice" {
		t.Errorf("root = %q, want alice", lines[0])
	}

	for _, want := range []string{
		"Trip (1 photos, 2024-08-02 to 2024-08-02)",
		`/pics/a.jpg "Beach day" [person=Ana]`,
		"Empty (empty)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderTree() missing %q:\n%s", want, got)
		}
	}
}
