package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newDatasetsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Manage datasets and their grants",
	}

	cmd.AddCommand(
		newDatasetsListCommand(app),
		newDatasetsGetCommand(app),
		newDatasetsGrantsCommand(app),
		newDatasetsCreateGrantCommand(app),
		newDatasetsUpdateGrantCommand(app),
		newDatasetsDeleteGrantCommand(app),
	)

	return cmd
}

func newDatasetsListCommand(app *App) *cobra.Command {
	var list listFlags
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			query := list.query()
			if search != "" {
				query.Set("search", search)
			}

			result, err := client.Get(cmd.Context(), "/v2/datasets", query)
			if err != nil {
				return err
			}

			columns := []string{"datasetId", "name", "type", "createdBy"}
			app.printListing(result, list.table, columns, "Datasets")
			return nil
		},
	}

	list.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search query")
	return cmd
}

func newDatasetsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get DATASET_ID",
		Short: "Get a dataset by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/datasets/"+args[0], nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}

func newDatasetsGrantsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grants DATASET_ID",
		Short: "List grants on a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/datasets/"+args[0]+"/grants", nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}

func newDatasetsCreateGrantCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "create-grant DATASET_ID",
		Short: "Create a grant on a dataset",
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
				return errors.New("no data provided: use --json, --file, or pipe JSON to stdin")
			}

			result, err := client.Post(cmd.Context(), "/v2/datasets/"+args[0]+"/grants", nil, data)
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

func newDatasetsUpdateGrantCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "update-grant DATASET_ID GRANT_ID",
		Short: "Update a grant on a dataset",
		Args:  cobra.ExactArgs(2),
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

			result, err := client.Patch(cmd.Context(), "/v2/datasets/"+args[0]+"/grants/"+args[1], data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("grant updated")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newDatasetsDeleteGrantCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-grant DATASET_ID GRANT_ID",
		Short: "Delete a grant from a dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			if _, err := client.Delete(cmd.Context(), "/v2/datasets/"+args[0]+"/grants/"+args[1]); err != nil {
				return err
			}

			app.Printer.Success("grant %s deleted", args[1])
			return nil
		},
	}
}
