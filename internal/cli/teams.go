package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newTeamsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage teams",
	}

	cmd.AddCommand(
		newTeamsListCommand(app),
		newTeamsGetCommand(app),
		newTeamsCreateCommand(app),
		newTeamsUpdateCommand(app),
		newTeamsDeleteCommand(app),
		newTeamsMembersCommand(app),
		newTeamsAddMemberCommand(app),
		newTeamsRemoveMemberCommand(app),
	)

	return cmd
}

func newTeamsListCommand(app *App) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/teams", list.query())
			if err != nil {
				return err
			}

			app.printListing(result, list.table, []string{"teamId", "name", "description"}, "Teams")
			return nil
		},
	}

	list.register(cmd)
	return cmd
}

func newTeamsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get TEAM",
		Short: "Get a team by name or identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			teamID, err := app.resolveTeamID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/teams/"+teamID, nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}

func newTeamsCreateCommand(app *App) *cobra.Command {
	var name string
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new team",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			data, err := body.read()
			if err != nil {
				return err
			}
			if data == nil {
				data = map[string]any{}
			}
			if name != "" {
				data["name"] = name
			}
			if len(data) == 0 {
				return errors.New("no data provided: use --name, --json, --file, or pipe JSON to stdin")
			}

			result, err := client.Post(cmd.Context(), "/v2/teams", nil, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("team created")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name")
	body.register(cmd)
	return cmd
}

func newTeamsUpdateCommand(app *App) *cobra.Command {
	var name string
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "update TEAM",
		Short: "Update a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			teamID, err := app.resolveTeamID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			data, err := body.read()
			if err != nil {
				return err
			}
			if data == nil {
				data = map[string]any{}
			}
			if name != "" {
				data["name"] = name
			}
			if len(data) == 0 {
				return errors.New("no data provided")
			}

			result, err := client.Patch(cmd.Context(), "/v2/teams/"+teamID, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("team updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New team name")
	body.register(cmd)
	return cmd
}

func newTeamsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TEAM",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			teamID, err := app.resolveTeamID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			if _, err := client.Delete(cmd.Context(), "/v2/teams/"+teamID); err != nil {
				return err
			}

			app.Printer.Success("team %q deleted", args[0])
			return nil
		},
	}
}

func newTeamsMembersCommand(app *App) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "members TEAM",
		Short: "List members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			teamID, err := app.resolveTeamID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/teams/"+teamID+"/members", nil)
			if err != nil {
				return err
			}

			columns := []string{"memberId", "email", "firstName", "lastName"}
			app.printListing(result, table, columns, fmt.Sprintf("Members of %q", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&table, "table", "t", false, "Display results as a table")
	return cmd
}

func newTeamsAddMemberCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-member TEAM MEMBER",
		Short: "Add an existing member to a team",
		Long: `Add an existing organization member to a team.

TEAM is a team name or identifier; MEMBER is an email address, full name,
or identifier. To create a new member first, use 'sigma members create'.`,
		Example: `  sigma teams add-member "Sales Team" alice@example.com
  sigma teams add-member northbridge "Alice Smith"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			teamID, err := app.resolveTeamID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			memberID, err := app.resolveMemberID(cmd.Context(), client, args[1])
			if err != nil {
				return err
			}

			body := map[string]any{"add": []string{memberID}}
			if _, err := client.Patch(cmd.Context(), "/v2/teams/"+teamID+"/members", body); err != nil {
				return err
			}

			app.Printer.Success("member %q added to team %q", args[1], args[0])
			return nil
		},
	}

	return cmd
}

func newTeamsRemoveMemberCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member TEAM MEMBER",
		Short: "Remove a member from a team",
		Example: `  sigma teams remove-member "Sales Team" alice@example.com
  sigma teams remove-member northbridge "Alice Smith"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			teamID, err := app.resolveTeamID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			memberID, err := app.resolveMemberID(cmd.Context(), client, args[1])
			if err != nil {
				return err
			}

			body := map[string]any{"remove": []string{memberID}}
			if _, err := client.Patch(cmd.Context(), "/v2/teams/"+teamID+"/members", body); err != nil {
				return err
			}

			app.Printer.Success("member %q removed from team %q", args[1], args[0])
			return nil
		},
	}
}
