// Package cli wires the cobra command tree. Each resource gets one file;
// commands are thin: parse flags, build the request, hand the response to
// the output layer. All logic with actual state lives in internal/auth and
// internal/resolve.
package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sigmaops/sigma-cli/internal/api"
	"github.com/sigmaops/sigma-cli/internal/auth"
	"github.com/sigmaops/sigma-cli/internal/config"
	"github.com/sigmaops/sigma-cli/internal/output"
)

// Version is overridden by ldflags at release time.
var Version = "dev"

// App carries the shared dependencies and global flag state for every
// command. One App per invocation; the API client (and with it the token
// cache) is built lazily on first use and shared across resolution and
// request calls within the invocation.
type App struct {
	ClientID string
	Secret   string
	BaseURL  string
	Verbose  bool
	Compact  bool

	Printer *output.Printer
	Logger  *logrus.Logger

	// ConfigPath is overridable for tests; empty means ~/.sigma/config.json.
	ConfigPath string

	client *api.Client
}

// NewApp builds an App with stdout/stderr printing and warn-level logging.
func NewApp() *App {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	return &App{
		Printer: &output.Printer{Out: os.Stdout, Err: os.Stderr},
		Logger:  logger,
	}
}

func (a *App) pretty() bool { return !a.Compact }

// Config loads settings with this invocation's flag overrides applied.
func (a *App) Config() (*config.Config, error) {
	overrides := config.Overrides{ClientID: a.ClientID, Secret: a.Secret, BaseURL: a.BaseURL}
	if a.ConfigPath != "" {
		return config.LoadFrom(a.ConfigPath, overrides)
	}
	return config.Load(overrides)
}

// APIClient returns the authenticated request client, failing fast when
// credentials are missing.
func (a *App) APIClient() (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	if !cfg.HasCredentials() {
		return nil, errors.New("missing credentials: set SIGMA_CLIENT_ID and SIGMA_SECRET, " +
			"use --client-id and --secret, or run 'sigma config' to save them")
	}

	if a.Verbose {
		a.describeConfig(cfg)
	}

	authn := auth.NewAuthenticator(auth.Credentials{
		ClientID: cfg.ClientID,
		Secret:   cfg.Secret,
		BaseURL:  cfg.BaseURL,
	}, a.Logger)

	a.client = api.NewClient(cfg.BaseURL, authn, a.Logger)
	return a.client, nil
}

func (a *App) describeConfig(cfg *config.Config) {
	a.Printer.Dim("configuration sources:")
	a.Printer.Dim("  client_id: %s (%s)", mask(cfg.ClientID), cfg.SourceOf("client_id"))
	a.Printer.Dim("  secret: %s (%s)", cfg.MaskedSecret(), cfg.SourceOf("secret"))
	a.Printer.Dim("  base_url: %s (%s)", cfg.BaseURL, cfg.SourceOf("base_url"))
}

func mask(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 8 {
		return value
	}
	return value[:4] + "..." + value[len(value)-4:]
}

// NewRootCommand assembles the full command tree.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sigma",
		Short:   "Command-line interface for the Sigma analytics REST API",
		Version: Version,
		Long: `sigma drives the analytics platform's REST API from the command line:
workbooks, datasets, members, teams, connections, tags, files, grants,
and workspaces. Authentication uses OAuth2 client credentials; tokens are
acquired, cached, and refreshed transparently within one invocation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.Verbose {
				app.Logger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}} (%s)\n", goVersion()))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.ClientID, "client-id", "", "API client ID (env: SIGMA_CLIENT_ID)")
	flags.StringVar(&app.Secret, "secret", "", "API client secret (env: SIGMA_SECRET)")
	flags.StringVar(&app.BaseURL, "base-url", "", "API base URL (env: SIGMA_BASE_URL)")
	flags.BoolVarP(&app.Verbose, "verbose", "v", false, "Log HTTP requests and configuration sources")
	flags.BoolVar(&app.Compact, "compact", false, "Compact JSON output instead of pretty-printing")

	rootCmd.AddCommand(
		newConfigCommand(app),
		newRawCommand(app),
		newAuthCommand(app),
		newWhoamiCommand(app),
		newTeamsCommand(app),
		newMembersCommand(app),
		newWorkbooksCommand(app),
		newDatasetsCommand(app),
		newFilesCommand(app),
		newTagsCommand(app),
		newConnectionsCommand(app),
		newAccountTypesCommand(app),
		newGrantsCommand(app),
		newWorkspacesCommand(app),
		newUserAttributesCommand(app),
		newVersionCommand(),
	)

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sigma version %s (%s)\n", Version, goVersion())
		},
	}
}

func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the command tree, rendering failures per the error
// taxonomy: authentication and API errors already carry the server's
// diagnostic detail in their message.
func Execute() {
	app := NewApp()
	rootCmd := NewRootCommand(app)

	if err := rootCmd.Execute(); err != nil {
		app.Printer.Errorf("%v", err)
		os.Exit(1)
	}
}
