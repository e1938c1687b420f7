package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaops/sigma-cli/internal/output"
)

// platformServer fakes the token endpoint plus a handful of API routes.
type platformServer struct {
	t            *testing.T
	tokenGrants  []string
	requestPaths []string
}

func (s *platformServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/auth/token" {
			body, _ := io.ReadAll(r.Body)
			form, err := url.ParseQuery(string(body))
			require.NoError(s.t, err)
			s.tokenGrants = append(s.tokenGrants, form.Get("grant_type"))

			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "test-access",
				"refresh_token": "test-refresh",
				"expires_in":    3600,
			})
			return
		}

		require.Equal(s.t, "Bearer test-access", r.Header.Get("Authorization"),
			"API calls must carry the acquired bearer token")
		s.requestPaths = append(s.requestPaths, r.Method+" "+r.URL.Path)

		switch r.URL.Path {
		case "/v2/teams":
			io.WriteString(w, `{"entries": [
				{"teamId": "3fa85f64-5717-4562-b3fc-2c963f66afa6", "name": "Sales"},
				{"teamId": "7b2d3c44-1111-4222-8333-944455566677", "name": "Sales East"}
			]}`)
		case "/v2/teams/3fa85f64-5717-4562-b3fc-2c963f66afa6":
			io.WriteString(w, `{"teamId": "3fa85f64-5717-4562-b3fc-2c963f66afa6", "name": "Sales"}`)
		case "/v2/whoami":
			io.WriteString(w, `{"memberId": "m-1", "email": "admin@example.com"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message": "no such route", "code": "not_found", "requestId": "req-0"}`)
		}
	}
}

// clearEnv shields tests from credentials in the host environment.
func clearEnv(t *testing.T) {
	t.Setenv("SIGMA_CLIENT_ID", "")
	t.Setenv("SIGMA_SECRET", "")
	t.Setenv("SIGMA_BASE_URL", "")
}

func runCommand(t *testing.T, srv *platformServer, args ...string) (*App, string, string, error) {
	clearEnv(t)

	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := &App{
		Printer:    &output.Printer{Out: out, Err: errOut},
		Logger:     logger,
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(append([]string{
		"--client-id", "test-client",
		"--secret", "test-secret",
		"--base-url", ts.URL,
	}, args...))
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.Execute()
	return app, out.String(), errOut.String(), err
}

func TestWhoamiCommand(t *testing.T) {
	srv := &platformServer{t: t}

	_, out, _, err := runCommand(t, srv, "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, `"admin@example.com"`)
	assert.Equal(t, []string{"client_credentials"}, srv.tokenGrants)
	assert.Equal(t, []string{"GET /v2/whoami"}, srv.requestPaths)
}

func TestTeamsGet_ResolvesNameBeforeFetching(t *testing.T) {
	srv := &platformServer{t: t}

	_, out, errOut, err := runCommand(t, srv, "teams", "get", "Sales")

	require.NoError(t, err)
	assert.Contains(t, out, `"Sales"`)
	assert.Contains(t, errOut, "resolved team")
	assert.Equal(t, []string{
		"GET /v2/teams",
		"GET /v2/teams/3fa85f64-5717-4562-b3fc-2c963f66afa6",
	}, srv.requestPaths)
}

func TestTeamsGet_IdentifierSkipsListing(t *testing.T) {
	srv := &platformServer{t: t}

	_, _, _, err := runCommand(t, srv, "teams", "get", "3fa85f64-5717-4562-b3fc-2c963f66afa6")

	require.NoError(t, err)
	assert.Equal(t, []string{"GET /v2/teams/3fa85f64-5717-4562-b3fc-2c963f66afa6"}, srv.requestPaths,
		"an identifier argument must not trigger a resolution listing")
}

func TestTeamsGet_AmbiguousName(t *testing.T) {
	srv := &platformServer{t: t}

	_, _, _, err := runCommand(t, srv, "teams", "get", "sale")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
	assert.Contains(t, err.Error(), "Sales East")
}

func TestSingleInvocationReusesToken(t *testing.T) {
	srv := &platformServer{t: t}

	_, _, _, err := runCommand(t, srv, "teams", "get", "Sales")

	require.NoError(t, err)
	assert.Equal(t, []string{"client_credentials"}, srv.tokenGrants,
		"resolution listing and the follow-up GET share one token")
}

func TestMissingCredentials(t *testing.T) {
	clearEnv(t)

	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := &App{
		Printer:    &output.Printer{Out: out, Err: out},
		Logger:     logger,
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs([]string{"whoami"})
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing credentials")
}

func TestVersionCommand(t *testing.T) {
	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := &App{Printer: &output.Printer{Out: out, Err: out}, Logger: logger}
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs([]string{"version"})
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "sigma version dev")
}

func TestConfigCommand_SaveAndShow(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")

	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := &App{
		Printer:    &output.Printer{Out: out, Err: out},
		Logger:     logger,
		ConfigPath: configPath,
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs([]string{"config", "--client-id", "saved-id", "--secret", "saved-secret-value"})
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	require.NoError(t, rootCmd.Execute())

	out.Reset()
	app2 := &App{
		Printer:    &output.Printer{Out: out, Err: out},
		Logger:     logger,
		ConfigPath: configPath,
	}
	rootCmd2 := NewRootCommand(app2)
	rootCmd2.SetArgs([]string{"config", "--show"})
	rootCmd2.SetOut(out)
	rootCmd2.SetErr(out)
	require.NoError(t, rootCmd2.Execute())

	got := out.String()
	assert.Contains(t, got, "saved-id")
	assert.NotContains(t, got, "saved-secret-value", "secret must be masked in --show output")
}
