package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newRawCommand(app *App) *cobra.Command {
	var (
		body   bodyFlags
		params string
	)

	cmd := &cobra.Command{
		Use:   "raw METHOD PATH",
		Short: "Make a raw API request",
		Long:  `Issue an arbitrary request against the platform API. The bearer token is injected automatically.`,
		Example: `  sigma raw GET /v2/workbooks
  sigma raw GET /v2/workbooks --params '{"limit": 10}'
  sigma raw POST /v2/workbooks --json '{"name": "My Workbook"}'
  echo '{"name": "My Workbook"}' | sigma raw POST /v2/workbooks`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			path := args[1]

			client, err := app.APIClient()
			if err != nil {
				return err
			}

			data, err := body.read()
			if err != nil {
				return err
			}

			query, err := parseParams(params)
			if err != nil {
				return err
			}

			var payload any
			if data != nil {
				payload = data
			}

			result, err := client.Do(cmd.Context(), method, path, query, payload)
			if err != nil {
				return err
			}

			app.Printer.JSON(result, app.pretty())
			return nil
		},
	}

	body.register(cmd)
	cmd.Flags().StringVarP(&params, "params", "p", "", "Query parameters as a JSON object")
	return cmd
}

// parseParams turns a JSON object of query parameters into url.Values.
// Non-string values are rendered with their JSON representation.
func parseParams(params string) (url.Values, error) {
	if params == "" {
		return nil, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(params), &parsed); err != nil {
		return nil, fmt.Errorf("invalid --params JSON: %w", err)
	}

	query := url.Values{}
	for key, value := range parsed {
		switch v := value.(type) {
		case string:
			query.Set(key, v)
		case float64:
			// JSON numbers arrive as float64; keep integers undecorated.
			if v == float64(int64(v)) {
				query.Set(key, fmt.Sprintf("%d", int64(v)))
			} else {
				query.Set(key, fmt.Sprintf("%g", v))
			}
		case bool:
			query.Set(key, fmt.Sprintf("%t", v))
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("invalid query parameter %q: %w", key, err)
			}
			query.Set(key, string(encoded))
		}
	}
	return query, nil
}
