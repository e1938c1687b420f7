package cli

import (
	"github.com/spf13/cobra"
)

func newConnectionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Manage data connections",
	}

	cmd.AddCommand(
		newConnectionsListCommand(app),
		newConnectionsGetCommand(app),
		newConnectionsTestCommand(app),
	)

	return cmd
}

func newConnectionsListCommand(app *App) *cobra.Command {
	var list listFlags
	var search string
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List data connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			query := list.query()
			if search != "" {
				query.Set("search", search)
			}
			if includeArchived {
				query.Set("includeArchived", "true")
			}

			result, err := client.Get(cmd.Context(), "/v2/connections", query)
			if err != nil {
				return err
			}

			columns := []string{"connectionId", "name", "type"}
			app.printListing(result, list.table, columns, "Connections")
			return nil
		},
	}

	list.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search query")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived connections")
	return cmd
}

func newConnectionsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get CONNECTION_ID",
		Short: "Get a connection by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/connections/"+args[0], nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}

func newConnectionsTestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test CONNECTION_ID",
		Short: "Test a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Post(cmd.Context(), "/v2/connections/"+args[0]+"/test", nil, nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}
