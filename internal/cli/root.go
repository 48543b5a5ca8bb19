package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"safeupload.dev/safeupload/internal/actions"
	"safeupload.dev/safeupload/internal/config"
	uploaderrors "safeupload.dev/safeupload/internal/errors"
	"safeupload.dev/safeupload/internal/filter"
	"safeupload.dev/safeupload/internal/git"
	"safeupload.dev/safeupload/internal/runtime"
	"safeupload.dev/safeupload/internal/tui"
	"safeupload.dev/safeupload/internal/tui/style"
)

// reportedError marks an error that has already been shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

type rootOptions struct {
	source      string
	remote      string
	branch      string
	dryRun      bool
	message     string
	logFile     string
	configPath  string
	confirm     bool
	editMessage bool
	verbose     bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "safeupload --source <dir> --remote <url> --branch <name>",
		Short: "Upload a directory to a git remote without OS junk files",
		Long: `Upload a directory to a git remote without OS junk files.

Every regular file under --source is checked against a fixed set of rules.
Hidden files, AppleDouble files (._*), .DS_Store, Thumbs.db and _MACOSX are
left out. A .gitignore is written if the directory has none, the directory
is initialized as a repository if needed, and the remaining files are
staged, committed and pushed to --remote on --branch.

With --dry-run only the files that would be committed are listed and
nothing is changed.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpload(cmd, opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.source, "source", "", "Directory to upload")
	rootCmd.Flags().StringVar(&opts.remote, "remote", "", "URL of the remote repository")
	rootCmd.Flags().StringVar(&opts.branch, "branch", "", "Branch to create and push")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "List the files that would be committed and exit")
	rootCmd.Flags().StringVarP(&opts.message, "message", "m", "", "Commit message (default \""+git.DefaultCommitMessage+"\")")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "Append log lines to this file (default \""+config.DefaultLogFile+"\")")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "YAML settings file (or set "+config.EnvConfigPath+")")
	rootCmd.Flags().BoolVar(&opts.confirm, "confirm", false, "Ask for confirmation before changing anything")
	rootCmd.Flags().BoolVar(&opts.editMessage, "edit-message", false, "Edit the commit message interactively before committing")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show skipped files and every state change")

	_ = rootCmd.MarkFlagRequired("source")
	_ = rootCmd.MarkFlagRequired("remote")
	_ = rootCmd.MarkFlagRequired("branch")

	return rootCmd
}

func runUpload(cmd *cobra.Command, opts *rootOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = os.Getenv(config.EnvConfigPath)
	}
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return report(cmd, err)
	}

	if opts.message != "" {
		settings.CommitMessage = opts.message
	}
	if cmd.Flags().Changed("confirm") {
		settings.Confirm = opts.confirm
	}
	settings.LogFile = tui.GetLogFilePath(opts.logFile, settings.LogFile)

	cfg, cfgErr := config.NewWorkflowConfig(opts.source, opts.remote, opts.branch, opts.dryRun)
	if errors.Is(cfgErr, uploaderrors.ErrUsage) {
		return cfgErr
	}

	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{
		LogFile: settings.LogFile,
		Verbose: opts.verbose,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return report(cmd, err)
	}
	defer func() { _ = splog.Close() }()

	if cfgErr != nil {
		splog.Error("%v", cfgErr)
		return &reportedError{err: cfgErr}
	}

	runner := git.NewExecRunner(settings.GitBinary)
	runner.Output = cmd.OutOrStdout()
	ctx := runtime.NewContext(cmd.Context(), splog, runner, settings)

	uploadOpts := actions.UploadOptions{Config: cfg}
	if settings.Confirm {
		uploadOpts.Confirm = func(cfg config.WorkflowConfig, candidates []filter.Candidate) (bool, error) {
			splog.Page(tui.CandidateTable(candidates))
			return confirmUpload(cfg, candidates)
		}
	}
	if opts.editMessage {
		uploadOpts.EditMessage = func(defaultMessage string) (string, error) {
			return tui.PromptTextInput("Commit message:", defaultMessage)
		}
	}

	result, err := actions.UploadAction(ctx, uploadOpts)
	if err != nil {
		splog.Error("%v", err)
		return &reportedError{err: err}
	}
	if result.State == actions.StateDone {
		splog.Page(style.Success("✅ Pushed "+style.ColorBranchName(cfg.Branch)+" to "+cfg.RemoteURL) + "\n")
	}
	return nil
}

func confirmUpload(cfg config.WorkflowConfig, candidates []filter.Candidate) (bool, error) {
	msg := fmt.Sprintf("Commit %d files and push them to %s on %s?", len(candidates), cfg.RemoteURL, cfg.Branch)
	return tui.PromptConfirm(msg, false)
}

// report prints err to stderr and marks it as shown
func report(cmd *cobra.Command, err error) error {
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), style.Error("Error: "+err.Error()))
	return &reportedError{err: err}
}

// Execute runs the command and returns the process exit code. Errors not
// already shown are printed with the usage text.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), style.Error("Error: "+err.Error()))
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	}
	return 1
}
