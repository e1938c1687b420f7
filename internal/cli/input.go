package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// bodyFlags are the shared request-body inputs: --json, --file, or piped
// stdin, in that priority order.
type bodyFlags struct {
	jsonStr  string
	jsonFile string
}

func (f *bodyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.jsonStr, "json", "j", "", "JSON request body as a string")
	cmd.Flags().StringVarP(&f.jsonFile, "file", "f", "", "Read JSON request body from a file")
}

// read returns the request body as a generic map, or nil when no input was
// provided anywhere.
func (f *bodyFlags) read() (map[string]any, error) {
	return readJSONInput(f.jsonStr, f.jsonFile, os.Stdin, stdinIsPiped())
}

func readJSONInput(jsonStr, jsonFile string, stdin io.Reader, piped bool) (map[string]any, error) {
	var raw []byte

	switch {
	case jsonStr != "":
		raw = []byte(jsonStr)
	case jsonFile != "":
		data, err := os.ReadFile(jsonFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON file: %w", err)
		}
		raw = data
	case piped:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = data
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}
	return body, nil
}

func stdinIsPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// listFlags are the shared listing inputs.
type listFlags struct {
	limit int
	page  string
	table bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "Number of results to return")
	cmd.Flags().StringVarP(&f.page, "page", "p", "", "Page token")
	cmd.Flags().BoolVarP(&f.table, "table", "t", false, "Display results as a table")
}

func (f *listFlags) query() url.Values {
	query := url.Values{}
	if f.limit > 0 {
		query.Set("limit", strconv.Itoa(f.limit))
	}
	if f.page != "" {
		query.Set("page", f.page)
	}
	return query
}
