package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newMembersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage organization members",
	}

	cmd.AddCommand(
		newMembersListCommand(app),
		newMembersGetCommand(app),
		newMembersCreateCommand(app),
		newMembersUpdateCommand(app),
		newMembersDeleteCommand(app),
		newMembersTeamsCommand(app),
	)

	return cmd
}

func newMembersListCommand(app *App) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all members",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/members", list.query())
			if err != nil {
				return err
			}

			columns := []string{"memberId", "email", "firstName", "lastName", "accountType"}
			app.printListing(result, list.table, columns, "Members")
			return nil
		},
	}

	list.register(cmd)
	return cmd
}

func newMembersGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get MEMBER",
		Short: "Get a member by email, name, or identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			memberID, err := app.resolveMemberID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/members/"+memberID, nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}

func newMembersCreateCommand(app *App) *cobra.Command {
	var (
		email      string
		firstName  string
		lastName   string
		memberType string
		userKind   string
		teams      string
		sendInvite bool
		body       bodyFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new member in the organization",
		Example: `  sigma members create --email alice@example.com --first-name Alice \
      --last-name Smith --member-type Viewer`,
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

			// Flags fill in fields the JSON input did not provide.
			setIfMissing(data, "email", email)
			setIfMissing(data, "firstName", firstName)
			setIfMissing(data, "lastName", lastName)
			setIfMissing(data, "memberType", memberType)
			setIfMissing(data, "userKind", userKind)
			if teams != "" {
				if _, ok := data["addToTeams"]; !ok {
					var addTo []map[string]string
					for _, teamID := range strings.Split(teams, ",") {
						addTo = append(addTo, map[string]string{"teamId": strings.TrimSpace(teamID)})
					}
					data["addToTeams"] = addTo
				}
			}

			var missing []string
			for _, required := range []struct{ field, flag string }{
				{"email", "--email"},
				{"firstName", "--first-name"},
				{"lastName", "--last-name"},
				{"memberType", "--member-type"},
			} {
				if _, ok := data[required.field]; !ok {
					missing = append(missing, required.flag)
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
			}

			// sendInvite travels as a query parameter, not in the body.
			query := url.Values{}
			query.Set("sendInvite", strconv.FormatBool(sendInvite))

			result, err := client.Post(cmd.Context(), "/v2/members", query, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("member created")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Member email (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVarP(&memberType, "member-type", "m", "", "Account type, e.g. 'Viewer' or 'Creator' (required)")
	cmd.Flags().StringVarP(&userKind, "user-kind", "k", "", "User kind: internal, guest, or embed")
	cmd.Flags().StringVarP(&teams, "teams", "t", "", "Comma-separated team IDs to add the member to")
	cmd.Flags().BoolVar(&sendInvite, "send-invite", true, "Send an email invitation")
	body.register(cmd)
	return cmd
}

func setIfMissing(data map[string]any, field, value string) {
	if value == "" {
		return
	}
	if _, ok := data[field]; !ok {
		data[field] = value
	}
}

func newMembersUpdateCommand(app *App) *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "update MEMBER",
		Short: "Update a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			memberID, err := app.resolveMemberID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			data, err := body.read()
			if err != nil {
				return err
			}
			if len(data) == 0 {
				return fmt.Errorf("no data provided: use --json, --file, or pipe JSON to stdin")
			}

			result, err := client.Patch(cmd.Context(), "/v2/members/"+memberID, data)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			app.Printer.Success("member updated")
			return nil
		},
	}

	body.register(cmd)
	return cmd
}

func newMembersDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete MEMBER",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			memberID, err := app.resolveMemberID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			if _, err := client.Delete(cmd.Context(), "/v2/members/"+memberID); err != nil {
				return err
			}

			app.Printer.Success("member %q deleted", args[0])
			return nil
		},
	}
}

func newMembersTeamsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "teams MEMBER",
		Short: "List the teams a member belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}

			memberID, err := app.resolveMemberID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			result, err := client.Get(cmd.Context(), "/v2/members/"+memberID+"/teams", nil)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}
}
