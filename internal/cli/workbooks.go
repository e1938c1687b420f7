package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newWorkbooksCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workbooks",
		Short: "Manage workbooks",
	}

	cmd.AddCommand(
		newWorkbooksListCommand(app),
		newWorkbooksGetCommand(app),
		newWorkbooksCreateCommand(app),
		newWorkbooksUpdateCommand(app),
		newWorkbooksDeleteCommand(app),
	)

	return cmd
}

func newWorkbooksListCommand(app *App) *cobra.Command {
	var list listFlags
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all workbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			query := list.query()
			if search != "" {
				query.Set("search", search)
			}

			result, err := client.Get(cmd.Context(), "/v2/workbooks", query)
			if err != nil {
				return err
			}

			columns := []string{"workbookId", "name", "createdBy", "updatedAt"}
			app.printListing(result, list.table, columns, "Workbooks")
			return nil
		},
	}

	list.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search query")
	return cmd
}

func newWorkbooksGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get WORKBOOK_ID",
		Short: "Get a workbook by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/workbooks/"+args[0], nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}

func newWorkbooksCreateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workbook",
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

			result, err := client.Post(cmd.Context(), "/v2/workbooks", nil, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("workbook created")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newWorkbooksUpdateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "update WORKBOOK_ID",
		Short: "Update a workbook",
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

			result, err := client.Patch(cmd.Context(), "/v2/workbooks/"+args[0], data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("workbook updated")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newWorkbooksDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete WORKBOOK_ID",
		Short: "Delete a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			if _, err := client.Delete(cmd.Context(), "/v2/workbooks/"+args[0]); err != nil {
				return err
			}

			app.Printer.Success("workbook %s deleted", args[0])
			return nil
		},
	}
}
