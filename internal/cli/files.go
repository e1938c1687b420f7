package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newFilesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage files and folders",
	}

	cmd.AddCommand(
		newFilesListCommand(app),
		newFilesGetCommand(app),
		newFilesCreateCommand(app),
		newFilesUpdateCommand(app),
		newFilesDeleteCommand(app),
	)

	return cmd
}

func newFilesListCommand(app *App) *cobra.Command {
	var list listFlags
	var path string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			query := list.query()
			if path != "" {
				query.Set("path", path)
			}

			result, err := client.Get(cmd.Context(), "/v2/files", query)
			if err != nil {
				return err
			}

			columns := []string{"inodeId", "name", "type", "path", "createdBy"}
			app.printListing(result, list.table, columns, "Files")
			return nil
		},
	}

	list.register(cmd)
	cmd.Flags().StringVar(&path, "path", "", "Filter by folder path")
	return cmd
}

func newFilesGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get INODE_ID",
		Short: "Get a file by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/files/"+args[0], nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}

func newFilesCreateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a file or folder",
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

			result, err := client.Post(cmd.Context(), "/v2/files", nil, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("file created")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newFilesUpdateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "update INODE_ID",
		Short: "Update a file",
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

			result, err := client.Patch(cmd.Context(), "/v2/files/"+args[0], data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("file updated")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newFilesDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete INODE_ID",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			if _, err := client.Delete(cmd.Context(), "/v2/files/"+args[0]); err != nil {
				return err
			}

			app.Printer.Success("file %s deleted", args[0])
			return nil
		},
	}
}
