// Command aigitcommit generates a conventional commit message for the
// staged changes of a Git repository using an OpenAI-compatible endpoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chuckie/aigitcommit/internal/adapters/clipboard"
	"github.com/chuckie/aigitcommit/internal/adapters/git"
	"github.com/chuckie/aigitcommit/internal/adapters/llm/openai"
	"github.com/chuckie/aigitcommit/internal/app"
	"github.com/chuckie/aigitcommit/internal/config"
	"github.com/chuckie/aigitcommit/internal/observability"
	"github.com/chuckie/aigitcommit/internal/security"
	"github.com/chuckie/aigitcommit/internal/sink"
	"github.com/chuckie/aigitcommit/internal/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		verbose    bool
		checkEnv   bool
		checkModel bool
		commit     bool
		signoff    bool
		yes        bool
		copyToClip bool
		asJSON     bool
		noTable    bool
		savePath   string
	)

	cmd := &cobra.Command{
		Use:     version.Name + " [REPO_PATH]",
		Short:   version.Description,
		Version: version.String(),
		Long: version.Description + `

The message is built from the staged diff and the last few commit
subjects of the repository, and printed to stdout. It can also be
copied to the clipboard, used to create the commit directly, or
saved to a file.

Configuration comes from environment variables:
  ` + config.EnvAPIBase + `         endpoint base URL
  ` + config.EnvAPIToken + `        API credential
  ` + config.EnvModelName + `       model name (default ` + config.DefaultModel + `)
  ` + config.EnvAPIProxy + `        HTTP proxy URL
  ` + config.EnvRequestTimeout + `  request timeout in milliseconds
  ` + config.EnvSignoff + `     append a Signed-off-by trailer`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			observability.Init(verbose)

			cfg := config.FromEnv()
			cfg.Verbose = verbose
			cfg.CheckEnv = checkEnv
			cfg.CheckModel = checkModel
			cfg.Commit = commit
			cfg.Yes = yes
			cfg.Copy = copyToClip
			cfg.SavePath = savePath
			if signoff {
				cfg.Signoff = true
			}
			switch {
			case asJSON:
				cfg.Format = config.FormatJSON
			case noTable:
				cfg.Format = config.FormatPlain
			}
			if len(args) == 1 {
				cfg.RepoPath = args[0]
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable trace logging on stderr")
	cmd.Flags().BoolVar(&checkEnv, "check-env", false, "Print the recognized environment variables and exit")
	cmd.Flags().BoolVar(&checkModel, "check-model", false, "Verify the configured model is served by the endpoint and exit")
	cmd.Flags().BoolVar(&commit, "commit", false, "Create the commit with the generated message")
	cmd.Flags().BoolVar(&signoff, "signoff", false, "Append a Signed-off-by trailer to the message")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt before committing")
	cmd.Flags().BoolVar(&copyToClip, "copy", false, "Copy the generated message to the clipboard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the message as JSON")
	cmd.Flags().BoolVar(&noTable, "no-table", false, "Print the message as plain text instead of a table")
	cmd.Flags().StringVar(&savePath, "save", "", "Save the generated message to a file")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.CheckEnv {
		printEnvTable(config.CheckEnv())
		return nil
	}

	client := openai.New(openai.Options{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Proxy:   cfg.Proxy,
		Timeout: cfg.Timeout,
	})

	if cfg.CheckModel {
		if err := client.CheckModel(ctx, cfg.Model); err != nil {
			return err
		}
		fmt.Printf("model %q is available\n", cfg.Model)
		return nil
	}

	info, err := os.Stat(cfg.RepoPath)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", cfg.RepoPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", cfg.RepoPath)
	}

	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		return err
	}

	generator := app.NewGenerator(repo, client, security.NewRedactor(), cfg.Model, cfg.Signoff)

	logger.Tracef("generating commit message with model %q", cfg.Model)
	msg, err := generator.Generate(ctx)
	if err != nil {
		return err
	}

	router := sink.NewRouter(repo, clipboard.New(), os.Stdout, os.Stderr, os.Stdin)
	router.Dispatch(msg, sink.FromConfig(cfg))
	return nil
}

// printEnvTable renders the --check-env report as a two-column table.
func printEnvTable(statuses []config.EnvStatus) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Variable", "Value").
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
		})
	for _, s := range statuses {
		t.Row(s.Name, s.Value)
	}
	fmt.Println(t.Render())
}
