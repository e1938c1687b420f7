package cli

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/sigmaops/sigma-cli/internal/api"
	"github.com/sigmaops/sigma-cli/internal/resolve"
)

var (
	teamSpec = resolve.Spec{
		Kind:         "team",
		IDField:      "teamId",
		PrimaryField: "name",
	}
	memberSpec = resolve.Spec{
		Kind:            "member",
		IDField:         "memberId",
		PrimaryField:    "email",
		CompositeFields: []string{"firstName", "lastName"},
	}
	workspaceSpec = resolve.Spec{
		Kind:         "workspace",
		IDField:      "workspaceId",
		PrimaryField: "name",
	}
)

// listingFetcher adapts a collection endpoint to the resolver.
func listingFetcher(client *api.Client, path string) resolve.Fetcher {
	return func(ctx context.Context) ([]gjson.Result, error) {
		result, err := client.Get(ctx, path, nil)
		if err != nil {
			return nil, err
		}
		return api.Entries(result), nil
	}
}

// resolveID maps a name/email/identifier to the opaque identifier and
// traces the resolution when a lookup happened.
func (a *App) resolveID(ctx context.Context, client *api.Client, spec resolve.Spec, path, candidate string) (string, error) {
	id, err := resolve.Resolve(ctx, listingFetcher(client, path), spec, candidate)
	if err != nil {
		return "", err
	}
	if id != candidate {
		a.Printer.Dim("resolved %s %q -> %s", spec.Kind, candidate, id)
	}
	return id, nil
}

func (a *App) resolveTeamID(ctx context.Context, client *api.Client, candidate string) (string, error) {
	return a.resolveID(ctx, client, teamSpec, "/v2/teams", candidate)
}

func (a *App) resolveMemberID(ctx context.Context, client *api.Client, candidate string) (string, error) {
	return a.resolveID(ctx, client, memberSpec, "/v2/members", candidate)
}

func (a *App) resolveWorkspaceID(ctx context.Context, client *api.Client, candidate string) (string, error) {
	return a.resolveID(ctx, client, workspaceSpec, "/v2/workspaces", candidate)
}

// printListing renders a listing response either as a table of the given
// columns or as JSON.
func (a *App) printListing(result gjson.Result, asTable bool, columns []string, title string) {
	if asTable {
		a.Printer.Table(api.Entries(result), columns, title)
		return
	}
	a.Printer.JSON(result, a.pretty())
}
