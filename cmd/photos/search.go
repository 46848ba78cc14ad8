package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"photos-go/internal/app"
	"photos-go/internal/photos"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search photos by date range or tags",
	Example: `  photos search -u alice --from 2024-01-01 --to 2024-01-31
  photos search -u alice --tag location:Paris --or location:Rome --save-as Italy-or-France`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var qf app.QueryFlags
		qf.From, _ = cmd.Flags().GetString("from")
		qf.To, _ = cmd.Flags().GetString("to")
		qf.Tag, _ = cmd.Flags().GetString("tag")
		qf.And, _ = cmd.Flags().GetString("and")
		qf.Or, _ = cmd.Flags().GetString("or")
		query, err := app.BuildQuery(qf)
		if err != nil {
			return err
		}

		album, _ := cmd.Flags().GetString("album")
		saveAs, _ := cmd.Flags().GetString("save-as")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		found, err := a.Search(userFlag(cmd), app.SearchRequest{Album: album, Query: query, SaveAs: saveAs})
		if err != nil {
			return err
		}

		if len(found) == 0 {
			fmt.Printf("No photos match %s.\n", query)
		}
		for _, p := range found {
			fmt.Printf("%s  %s  %s\n", p.LastModified().Format(time.DateTime), p.Path(), p.Caption())
		}
		if saveAs != "" {
			fmt.Printf("Saved %d photo(s) as album %s\n", len(found), saveAs)
		}
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show a user's albums and photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Tree(userFlag(cmd))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag names known to a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.View(userFlag(cmd), func(s *photos.Session) error {
			for _, name := range s.Vocabulary.KnownNames() {
				fmt.Println(name)
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, treeCmd, tagsCmd} {
		c.Flags().StringP("user", "u", "", "User whose library to use")
		c.MarkFlagRequired("user")
	}

	searchCmd.Flags().String("album", "", "Search only this album")
	searchCmd.Flags().String("from", "", "Start date, YYYY-MM-DD (inclusive)")
	searchCmd.Flags().String("to", "", "End date, YYYY-MM-DD (inclusive)")
	searchCmd.Flags().String("tag", "", "Tag to match, name:value")
	searchCmd.Flags().String("and", "", "Second tag that must also match")
	searchCmd.Flags().String("or", "", "Alternative tag that may match instead")
	searchCmd.Flags().String("save-as", "", "Save the results as a new album")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(tagsCmd)
}
