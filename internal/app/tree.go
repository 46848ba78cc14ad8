package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/disiqueira/gotree/v3"

	"photos-go/internal/photos"
)

// RenderTree draws user's albums and their photos as an indented tree.
func RenderTree(user *photos.User) string {
	root := gotree.New(user.Username())
	for _, album := range user.Albums() {
		node := root.Add(albumLabel(album))
		for _, p := range album.Photos() {
			node.Add(photoLabel(p))
		}
	}
	return root.Print()
}

func albumLabel(a *photos.Album) string {
	earliest, latest, ok := a.DateRange()
	if !ok {
		return fmt.Sprintf("%s (empty)", a.Name())
	}
	return fmt.Sprintf("%s (%d photos, %s to %s)", a.Name(), a.Len(),
		earliest.Format(time.DateOnly), latest.Format(time.DateOnly))
}

func photoLabel(p *photos.Photo) string {
	var b strings.Builder
	b.WriteString(p.Path())
	if c := p.Caption(); c != "" {
		fmt.Fprintf(&b, " %q", c)
	}
	if tags := p.Tags(); len(tags) > 0 {
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.String()
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(names, ", "))
	}
	return b.String()
}
