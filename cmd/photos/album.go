package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"photos-go/internal/photos"
)

// userFlag returns the --user value every library command requires.
func userFlag(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	return u
}

// updateLibrary opens the app, runs fn in a session for --user and saves on success.
func updateLibrary(cmd *cobra.Command, fn func(*photos.Session) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Update(userFlag(cmd), fn)
}

// album command
var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage albums",
}

var albumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums with photo counts and date ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.View(userFlag(cmd), func(s *photos.Session) error {
			albums := s.User.Albums()
			if len(albums) == 0 {
				fmt.Println("No albums.")
				return nil
			}
			for _, album := range albums {
				earliest, latest, ok := album.DateRange()
				if !ok {
					fmt.Printf("%-24s  %4d\n", album.Name(), 0)
					continue
				}
				fmt.Printf("%-24s  %4d  %s .. %s\n", album.Name(), album.Len(),
					earliest.Format(time.DateOnly), latest.Format(time.DateOnly))
			}
			return nil
		})
	},
}

var albumCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateLibrary(cmd, func(s *photos.Session) error {
			_, err := s.CreateAlbum(args[0])
			return err
		})
	},
}

var albumRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateLibrary(cmd, func(s *photos.Session) error {
			return s.RenameAlbum(args[0], args[1])
		})
	},
}

var albumDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete an album (image files are not touched)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateLibrary(cmd, func(s *photos.Session) error {
			if _, err := s.Album(args[0]); err != nil {
				return err
			}
			s.DeleteAlbum(args[0])
			return nil
		})
	},
}

// photo command
var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage photos inside albums",
}

var photoAddCmd = &cobra.Command{
	Use:   "add ALBUM PATH",
	Short: "Add an image file to an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.AddPhoto(userFlag(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Added %s to %s\n", p.Path(), args[0])
		return nil
	},
}

var photoRemoveCmd = &cobra.Command{
	Use:   "remove ALBUM PATH",
	Short: "Remove a photo from an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateLibrary(cmd, func(s *photos.Session) error {
			return s.RemovePhoto(args[0], args[1])
		})
	},
}

var photoCaptionCmd = &cobra.Command{
	Use:   "caption ALBUM PATH TEXT",
	Short: "Set a photo's caption",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateLibrary(cmd, func(s *photos.Session) error {
			return s.SetCaption(args[0], args[1], args[2])
		})
	},
}

var photoTagCmd = &cobra.Command{
	Use:   "tag ALBUM PATH NAME:VALUE",
	Short: "Tag a photo",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := photos.ParseTag(args[2])
		if err != nil {
			return err
		}
		return updateLibrary(cmd, func(s *photos.Session) error {
			if !s.Vocabulary.IsKnown(tag.Name()) {
				fmt.Printf("New tag name %q\n", tag.Name())
			}
			return s.AddTag(args[0], args[1], tag)
		})
	},
}

var photoUntagCmd = &cobra.Command{
	Use:   "untag ALBUM PATH NAME:VALUE",
	Short: "Remove a tag from a photo",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := photos.ParseTag(args[2])
		if err != nil {
			return err
		}
		return updateLibrary(cmd, func(s *photos.Session) error {
			return s.RemoveTag(args[0], args[1], tag)
		})
	},
}

var photoCopyCmd = &cobra.Command{
	Use:   "copy FROM TO PATH",
	Short: "Share a photo with another album",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateLibrary(cmd, func(s *photos.Session) error {
			return s.CopyPhoto(args[0], args[1], args[2])
		})
	},
}

var photoMoveCmd = &cobra.Command{
	Use:   "move FROM TO PATH",
	Short: "Move a photo to another album",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateLibrary(cmd, func(s *photos.Session) error {
			return s.MovePhoto(args[0], args[1], args[2])
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{albumCmd, photoCmd} {
		c.PersistentFlags().StringP("user", "u", "", "User whose library to use")
		c.MarkPersistentFlagRequired("user")
	}

	albumCmd.AddCommand(albumListCmd)
	albumCmd.AddCommand(albumCreateCmd)
	albumCmd.AddCommand(albumRenameCmd)
	albumCmd.AddCommand(albumDeleteCmd)

	photoCmd.AddCommand(photoAddCmd)
	photoCmd.AddCommand(photoRemoveCmd)
	photoCmd.AddCommand(photoCaptionCmd)
	photoCmd.AddCommand(photoTagCmd)
	photoCmd.AddCommand(photoUntagCmd)
	photoCmd.AddCommand(photoCopyCmd)
	photoCmd.AddCommand(photoMoveCmd)

	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(photoCmd)
}
