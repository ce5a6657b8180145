package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adilkhann/dayrep/internal/models"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the available tags",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		tags, err := a.client.Tags(context.Background())
		if err != nil {
			return err
		}

		if len(tags) == 0 {
			fmt.Println("No tags defined.")
			return nil
		}

		fmt.Printf("%-6s %s\n", "ID", "NAME")
		fmt.Println(strings.Repeat("-", 30))
		for _, tag := range tags {
			fmt.Printf("%-6d %s\n", tag.ID, tag.Name)
		}
		return nil
	}),
}

var tagsAddCmd = &cobra.Command{
	Use:    "add <name>",
	Short:  "Create a new tag",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.requireUser(); err != nil {
			return err
		}

		tag, err := a.client.CreateTag(context.Background(), models.Tag{Name: args[0]})
		if err != nil {
			return err
		}
		fmt.Printf("Created tag #%d: %s\n", tag.ID, tag.Name)
		return nil
	}),
}

func init() {
	tagsCmd.AddCommand(tagsAddCmd)
}
