package cli

import (
	"github.com/spf13/cobra"
)

func newWorkspacesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "Manage workspaces",
	}

	cmd.AddCommand(
		newWorkspacesListCommand(app),
		newWorkspacesGetCommand(app),
	)

	return cmd
}

func newWorkspacesListCommand(app *App) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/workspaces", list.query())
			if err != nil {
				return err
			}

			columns := []string{"workspaceId", "name", "createdBy"}
			app.printListing(result, list.table, columns, "Workspaces")
			return nil
		},
	}

	list.register(cmd)
	return cmd
}

func newWorkspacesGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get WORKSPACE",
		Short: "Get a workspace by name or identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			workspaceID, err := app.resolveWorkspaceID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/workspaces/"+workspaceID, nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}
