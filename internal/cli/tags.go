package cli

import (
	"errors"
	"net/url"

	"github.com/spf13/cobra"
)

func newTagsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags",
	}

	cmd.AddCommand(
		newTagsListCommand(app),
		newTagsCreateCommand(app),
		newTagsUpdateCommand(app),
		newTagsDeleteCommand(app),
		newTagsAssignCommand(app),
	)

	return cmd
}

func newTagsListCommand(app *App) *cobra.Command {
	var table bool
	var inodeID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			query := url.Values{}
			if inodeID != "" {
				query.Set("inodeId", inodeID)
			}

			result, err := client.Get(cmd.Context(), "/v2/tags", query)
			if err != nil {
				return err
			}

			app.printListing(result, table, []string{"tagId", "name", "color"}, "Tags")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&table, "table", "t", false, "Display results as a table")
	cmd.Flags().StringVar(&inodeID, "inode-id", "", "Only tags assigned to this file")
	return cmd
}

func newTagsCreateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			data, err := body.read()
			if err != nil {
				return err
			}
			if len(data) == 0 {
				return errors.New("no data provided: use --json, --file, or pipe JSON to stdin")
			}

			result, err := client.Post(cmd.Context(), "/v2/tags", nil, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("tag created")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newTagsUpdateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "update TAG_ID",
		Short: "Update a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			data, err := body.read()
			if err != nil {
				return err
			}
			if len(data) == 0 {
				return errors.New("no data provided")
			}

			result, err := client.Patch(cmd.Context(), "/v2/tags/"+args[0], data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("tag updated")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newTagsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TAG_ID",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			if _, err := client.Delete(cmd.Context(), "/v2/tags/"+args[0]); err != nil {
				return err
			}

			app.Printer.Success("tag %s deleted", args[0])
			return nil
		},
	}
}

func newTagsAssignCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign TAG_ID INODE_ID",
		Short: "Assign a tag to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			if _, err := client.Put(cmd.Context(), "/v2/tags/"+args[0]+"/files/"+args[1], nil); err != nil {
				return err
			}

			app.Printer.Success("tag %s assigned to %s", args[0], args[1])
			return nil
		},
	}
}
