package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newGrantsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grants",
		Short: "Manage grants and permissions",
	}

	cmd.AddCommand(
		newGrantsListCommand(app),
		newGrantsCreateCommand(app),
		newGrantsDeleteCommand(app),
	)

	return cmd
}

func newGrantsListCommand(app *App) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List grants",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/grants", list.query())
			if err != nil {
				return err
			}

			columns := []string{"grantId", "permission", "grantee.type", "grantee.name"}
			app.printListing(result, list.table, columns, "Grants")
			return nil
		},
	}

	list.register(cmd)
	return cmd
}

func newGrantsCreateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a grant",
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

			result, err := client.Post(cmd.Context(), "/v2/grants", nil, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("grant created")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newGrantsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete GRANT_ID",
		Short: "Delete a grant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			if _, err := client.Delete(cmd.Context(), "/v2/grants/"+args[0]); err != nil {
				return err
			}

			app.Printer.Success("grant %s deleted", args[0])
			return nil
		},
	}
}
