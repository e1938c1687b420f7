package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONInput_StringWinsOverFileAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"from": "file"}`), 0600))

	body, err := readJSONInput(`{"from": "flag"}`, path, strings.NewReader(`{"from": "stdin"}`), true)

	require.NoError(t, err)
	assert.Equal(t, "flag", body["from"])
}

func TestReadJSONInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "Ops"}`), 0600))

	body, err := readJSONInput("", path, strings.NewReader(""), false)

	require.NoError(t, err)
	assert.Equal(t, "Ops", body["name"])
}

func TestReadJSONInput_PipedStdin(t *testing.T) {
	body, err := readJSONInput("", "", strings.NewReader(`{"name": "Piped"}`), true)

	require.NoError(t, err)
	assert.Equal(t, "Piped", body["name"])
}

func TestReadJSONInput_IgnoresStdinWhenInteractive(t *testing.T) {
	body, err := readJSONInput("", "", strings.NewReader(`{"name": "tty"}`), false)

	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestReadJSONInput_InvalidJSON(t *testing.T) {
	_, err := readJSONInput(`{broken`, "", strings.NewReader(""), false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON input")
}

func TestReadJSONInput_MissingFile(t *testing.T) {
	_, err := readJSONInput("", filepath.Join(t.TempDir(), "nope.json"), strings.NewReader(""), false)

	require.Error(t, err)
}

func TestListFlags_Query(t *testing.T) {
	f := listFlags{limit: 25, page: "tok-3"}

	query := f.query()

	assert.Equal(t, "25", query.Get("limit"))
	assert.Equal(t, "tok-3", query.Get("page"))
}

func TestListFlags_Query_OmitsUnset(t *testing.T) {
	f := listFlags{}

	assert.Empty(t, f.query())
}

func TestParseParams(t *testing.T) {
	query, err := parseParams(`{"limit": 10, "page": "tok", "archived": true, "ratio": 0.5}`)

	require.NoError(t, err)
	assert.Equal(t, "10", query.Get("limit"))
	assert.Equal(t, "tok", query.Get("page"))
	assert.Equal(t, "true", query.Get("archived"))
	assert.Equal(t, "0.5", query.Get("ratio"))
}

func TestParseParams_Empty(t *testing.T) {
	query, err := parseParams("")

	require.NoError(t, err)
	assert.Nil(t, query)
}

func TestParseParams_Invalid(t *testing.T) {
	_, err := parseParams("limit=10")

	require.Error(t, err)
}
