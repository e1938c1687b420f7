package cli

import (
	"github.com/spf13/cobra"
)

func newAccountTypesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account-types",
		Short: "Inspect account types",
	}

	cmd.AddCommand(
		newAccountTypesListCommand(app),
		newAccountTypesPermissionsCommand(app),
	)

	return cmd
}

func newAccountTypesListCommand(app *App) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account types",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/accountTypes", list.query())
			if err != nil {
				return err
			}

			columns := []string{"accountTypeId", "name"}
			app.printListing(result, list.table, columns, "Account types")
			return nil
		},
	}

	list.register(cmd)
	return cmd
}

func newAccountTypesPermissionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "permissions ACCOUNT_TYPE_ID",
		Short: "List the permissions of an account type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/accountTypes/"+args[0]+"/permissions", nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}
