package actions

import (
	"errors"
	"fmt"

	"safeupload.dev/safeupload/internal/config"
	uploaderrors "safeupload.dev/safeupload/internal/errors"
	"safeupload.dev/safeupload/internal/filter"
	"safeupload.dev/safeupload/internal/git"
	"safeupload.dev/safeupload/internal/ignorefile"
	"safeupload.dev/safeupload/internal/runtime"
	"safeupload.dev/safeupload/internal/tui/style"
)

// UploadOptions contains options for the upload workflow
type UploadOptions struct {
	Config config.WorkflowConfig

	// Confirm, when set, runs after filtering and before any mutation.
	// Returning false cancels the upload.
	Confirm func(cfg config.WorkflowConfig, candidates []filter.Candidate) (bool, error)

	// EditMessage, when set, may replace the commit message before any mutation
	EditMessage func(defaultMessage string) (string, error)
}

// UploadResult describes how far an upload got
type UploadResult struct {
	State       State
	Transitions []State
	Candidates  []filter.Candidate
	Drift       []string
	IgnoreFile  bool
}

type uploader struct {
	ctx    *runtime.Context
	opts   UploadOptions
	client *git.Client
	result *UploadResult
}

func (u *uploader) transition(to State) {
	from := u.result.State
	if !from.CanTransition(to) {
		// unreachable unless the step order in UploadAction is broken
		panic(fmt.Sprintf("illegal upload transition %s -> %s", from, to))
	}
	u.result.State = to
	u.result.Transitions = append(u.result.Transitions, to)
	u.ctx.Splog.Debug("%s -> %s", from, to)
}

func (u *uploader) fail(err error) (*UploadResult, error) {
	u.transition(StateFailed)
	return u.result, err
}

// UploadAction filters the source directory and, unless this is a dry run,
// stages, commits and pushes the remaining files. The steps run strictly in
// order and the first failure ends the upload. Nothing is rolled back.
func UploadAction(ctx *runtime.Context, opts UploadOptions) (*UploadResult, error) {
	cfg := opts.Config
	u := &uploader{
		ctx:    ctx,
		opts:   opts,
		client: ctx.GitClient(cfg.SourceDir),
		result: &UploadResult{State: StateParsingArgs, Transitions: []State{StateParsingArgs}},
	}
	splog := ctx.Splog

	if cfg.SourceDir == "" || cfg.RemoteURL == "" || cfg.Branch == "" {
		return u.fail(fmt.Errorf("%w: source, remote and branch are required", uploaderrors.ErrUsage))
	}

	u.transition(StateValidatingTool)
	version, err := u.client.Version(ctx)
	if err != nil {
		return u.fail(err)
	}
	splog.Debug("Using %s", version)

	u.transition(StateFiltering)
	candidates, err := u.filter()
	if err != nil {
		return u.fail(err)
	}
	u.result.Candidates = candidates

	if cfg.DryRun {
		u.transition(StateDryRunExit)
		u.printDryRun()
		return u.result, nil
	}

	message := ctx.Settings.CommitMessage
	if opts.Confirm != nil || opts.EditMessage != nil {
		u.transition(StateConfirming)
		if message, err = u.confirm(message); err != nil {
			return u.fail(err)
		}
	}

	u.transition(StateInitializing)
	if err := u.initialize(); err != nil {
		return u.fail(err)
	}

	u.transition(StateStaging)
	for _, c := range candidates {
		if err := u.client.Stage(ctx, c.RelPath); err != nil {
			return u.fail(err)
		}
	}
	splog.Info("Staged %d files", len(candidates))

	u.transition(StateCommitting)
	if err := u.client.Commit(ctx, message); err != nil {
		return u.fail(err)
	}

	u.transition(StatePushing)
	if err := u.client.PushBranch(ctx, ctx.Settings.RemoteName, cfg.Branch); err != nil {
		return u.fail(err)
	}

	u.transition(StateDone)
	splog.Info("Uploaded %d files to %s (%s)", len(candidates), cfg.RemoteURL, cfg.Branch)
	return u.result, nil
}

func (u *uploader) filter() ([]filter.Candidate, error) {
	splog := u.ctx.Splog
	opts := filter.DefaultOptions()
	opts.OnSkip = func(path string, reason error) {
		if errors.Is(reason, uploaderrors.ErrPathInspection) {
			splog.Warn("%v", reason)
			return
		}
		splog.Debug("Skipped: %s (%v)", path, reason)
	}

	candidates, err := filter.Walk(u.opts.Config.SourceDir, opts)
	if err != nil {
		return nil, err
	}
	splog.Info("Found %d files to upload in %s", len(candidates), u.opts.Config.SourceDir)
	return candidates, nil
}

func (u *uploader) printDryRun() {
	splog := u.ctx.Splog
	splog.Page(style.Heading("[Dry Run] Files to be committed:") + "\n")
	for _, c := range u.result.Candidates {
		splog.Page(style.Path(c.Path) + "\n")
	}
}

func (u *uploader) confirm(message string) (string, error) {
	if u.opts.EditMessage != nil {
		edited, err := u.opts.EditMessage(message)
		if err != nil {
			return "", err
		}
		if edited != "" {
			message = edited
		}
	}

	if u.opts.Confirm != nil {
		ok, err := u.opts.Confirm(u.opts.Config, u.result.Candidates)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", uploaderrors.ErrCancelled
		}
	}
	return message, nil
}

func (u *uploader) initialize() error {
	cfg := u.opts.Config
	settings := u.ctx.Settings
	splog := u.ctx.Splog

	ignoreOpts := settings.IgnoreOptions()
	created, err := ignorefile.Ensure(cfg.SourceDir, ignoreOpts)
	if err != nil {
		return err
	}
	u.result.IgnoreFile = created
	if created {
		splog.Info("Created %s", ignorefile.Path(cfg.SourceDir, ignoreOpts))
	} else {
		splog.Debug("Keeping existing %s", ignorefile.Path(cfg.SourceDir, ignoreOpts))
	}

	res, err := u.client.EnsureRepository(u.ctx, settings.RemoteName, cfg.RemoteURL, cfg.Branch)
	if err != nil {
		return err
	}
	u.result.Drift = res.Drift
	if res.Created {
		splog.Info("Initialized repository on branch %s with remote %s", cfg.Branch, cfg.RemoteURL)
		return nil
	}

	splog.Debug("Repository already initialized; skipping init")
	for _, d := range res.Drift {
		splog.Warn("Existing repository does not match the request: %s", d)
	}
	return nil
}
