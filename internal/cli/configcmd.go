package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sigmaops/sigma-cli/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	var (
		clientID string
		secret   string
		baseURL  string
		show     bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Save or show CLI configuration",
		Long: `Persist credentials and the API base URL to ~/.sigma/config.json so they
do not have to be supplied on every invocation. With --show, print the
current effective configuration (secret masked).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if show {
				cfg, err := app.Config()
				if err != nil {
					return err
				}

				display := map[string]string{
					"client_id": orNotSet(cfg.ClientID),
					"secret":    cfg.MaskedSecret(),
					"base_url":  cfg.BaseURL,
				}
				payload, err := json.Marshal(display)
				if err != nil {
					return err
				}

				app.Printer.Info("current configuration:")
				app.Printer.JSON(gjson.ParseBytes(payload), app.pretty())
				return nil
			}

			if clientID == "" && secret == "" && baseURL == "" {
				return errors.New("no configuration provided: use --client-id, --secret, or --base-url")
			}

			overrides := config.Overrides{ClientID: clientID, Secret: secret, BaseURL: baseURL}
			var cfg *config.Config
			var err error
			if app.ConfigPath != "" {
				cfg, err = config.LoadFrom(app.ConfigPath, overrides)
			} else {
				cfg, err = config.Load(overrides)
			}
			if err != nil {
				return err
			}

			if err := cfg.Save(); err != nil {
				return err
			}

			app.Printer.Success("configuration saved to %s", cfg.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "API client ID to save")
	cmd.Flags().StringVar(&secret, "secret", "", "API client secret to save")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL to save")
	cmd.Flags().BoolVar(&show, "show", false, "Show the current configuration")
	return cmd
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
