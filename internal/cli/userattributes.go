package cli

import (
	"github.com/spf13/cobra"
)

func newUserAttributesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-attributes",
		Short: "Manage user attributes",
	}

	cmd.AddCommand(
		newUserAttributesListCommand(app),
		newUserAttributesGetCommand(app),
	)

	return cmd
}

func newUserAttributesListCommand(app *App) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/user-attributes", list.query())
			if err != nil {
				return err
			}

			columns := []string{"userAttributeId", "name", "defaultValue"}
			app.printListing(result, list.table, columns, "User attributes")
			return nil
		},
	}

	list.register(cmd)
	return cmd
}

func newUserAttributesGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ATTRIBUTE_ID",
		Short: "Get a user attribute by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/user-attributes/"+args[0], nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}
