package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sigmaops/sigma-cli/internal/auth"
)

func newAuthCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(
		newAuthTokenCommand(app),
		newAuthTestCommand(app),
	)

	return cmd
}

func (a *App) newAuthenticator() (*auth.Authenticator, error) {
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	if !cfg.HasCredentials() {
		return nil, errors.New("missing credentials: set SIGMA_CLIENT_ID and SIGMA_SECRET, " +
			"use --client-id and --secret, or run 'sigma config' to save them")
	}
	return auth.NewAuthenticator(auth.Credentials{
		ClientID: cfg.ClientID,
		Secret:   cfg.Secret,
		BaseURL:  cfg.BaseURL,
	}, a.Logger), nil
}

func newAuthTokenCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Acquire and print a fresh access token",
		Long: `Acquire an access token via the client-credentials flow and print it as
JSON. Useful for handing a bearer token to other tooling.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			authn, err := app.newAuthenticator()
			if err != nil {
				return err
			}

			token, err := authn.AccessToken(cmd.Context())
			if err != nil {
				return err
			}

			payload, err := json.Marshal(map[string]any{
				"access_token": token,
				"token_type":   "Bearer",
			})
			if err != nil {
				return err
			}

			app.Printer.JSON(gjson.ParseBytes(payload), app.pretty())
			return nil
		},
	}
}

func newAuthTestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Verify the configured credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			authn, err := app.newAuthenticator()
			if err != nil {
				return err
			}

			if _, err := authn.AccessToken(cmd.Context()); err != nil {
				return err
			}

			app.Printer.Success("credentials are valid")
			return nil
		},
	}
}
