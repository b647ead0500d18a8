package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/irahardianto/codereview/internal/engine/chat"
	"github.com/irahardianto/codereview/internal/engine/config"
	"github.com/irahardianto/codereview/internal/engine/formatter"
	"github.com/irahardianto/codereview/internal/engine/git"
	"github.com/irahardianto/codereview/internal/engine/llm"
	"github.com/irahardianto/codereview/internal/engine/review"
	"github.com/irahardianto/codereview/internal/engine/server"
	"github.com/irahardianto/codereview/internal/platform/logger"
)

// ErrReported is returned when the failure was already shown to the user;
// the process exits 1 without printing it again.
var ErrReported = errors.New("failure reported")

// Options holds per-invocation options from the global flags.
type Options struct {
	JSON       bool
	Verbose    bool
	NoColor    bool
	ConfigPath string
	EnvFile    string
}

// Source selects what the review command reads.
type Source struct {
	// Path is a file to review; "" or "-" reads stdin.
	Path string
	// Staged reviews the staged git diff instead of Path.
	Staged bool
}

// App wires configuration, the model gateway and the shells with injected
// dependencies. Every command runs through it.
type App struct {
	// Loader reads the config file, .env and environment.
	Loader *config.Loader

	// Factory creates the provider client.
	Factory llm.ClientFactory

	// Git reads the staged diff for review --staged.
	Git git.Service

	// ReadFile reads review sources from disk.
	ReadFile func(name string) ([]byte, error)

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Terminal reports whether Stdout is an interactive terminal.
	Terminal bool

	// Width is the terminal width used for word wrap; 0 uses the default.
	Width int
}

// invocation is the state built once per invocation before any traffic.
type invocation struct {
	ctx      context.Context
	cfg      *config.Config
	reviewer *review.Reviewer
	initErr  error
}

// setup loads configuration and initializes the gateway. An initialization
// failure is not an error here: it is kept in initErr and the reviewer runs
// without a model.
func (a *App) setup(ctx context.Context, opts Options) (*invocation, error) {
	if opts.EnvFile != "" {
		if err := a.Loader.WithDotEnv(ctx, opts.EnvFile); err != nil {
			return nil, err
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = a.Loader.LoadFrom(ctx, opts.ConfigPath)
	} else {
		cfg, err = a.Loader.Load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.OutputVerbose && !opts.Verbose {
		ctx = logger.WithContext(ctx, logger.New(a.Stderr, true, opts.JSON))
	}
	log := logger.FromContext(ctx)

	gw, initErr := llm.Initialize(ctx, llm.Options{
		APIKey:  cfg.GeminiAPIKey.Reveal(),
		Model:   cfg.Model,
		Timeout: cfg.RequestTimeout,
		Factory: a.Factory,
	})

	// A nil *Gateway must not become a non-nil Generator.
	var gen llm.Generator
	if gw != nil {
		gen = gw
		log.Info("gemini model ready", "model", gw.Model())
	} else {
		log.Warn("gemini model unavailable", "error", initErr)
	}

	return &invocation{ctx: ctx, cfg: cfg, reviewer: review.New(gen), initErr: initErr}, nil
}

func (a *App) cliFormatter(cfg *config.Config, opts Options) *formatter.CLIFormatter {
	color := cfg.OutputColor && !opts.NoColor && a.Terminal
	return formatter.NewCLIFormatter(color, a.Width)
}

func (a *App) reportFormatter(cfg *config.Config, opts Options) formatter.Formatter {
	if opts.JSON {
		return formatter.NewJSONFormatter()
	}
	return a.cliFormatter(cfg, opts)
}

// Chat runs the interactive session shell.
func (a *App) Chat(ctx context.Context, opts Options) error {
	rt, err := a.setup(ctx, opts)
	if err != nil {
		return err
	}

	session := chat.NewSession(rt.reviewer, a.cliFormatter(rt.cfg, opts), a.Stdin, a.Stdout)
	return session.Run(rt.ctx, rt.initErr)
}

// Review runs one review of src and prints the report. It returns
// ErrReported when the review failed.
func (a *App) Review(ctx context.Context, opts Options, src Source) error {
	rt, err := a.setup(ctx, opts)
	if err != nil {
		return err
	}
	ctx = rt.ctx

	snippet, err := a.readSource(ctx, opts, src)
	if err != nil {
		return err
	}

	cli := a.cliFormatter(rt.cfg, opts)
	fmtr := a.reportFormatter(rt.cfg, opts)

	var res *review.Result
	if err = review.Validate(snippet); err == nil {
		progress := chat.NewProgress(a.Stderr, opts.JSON, cli.Render)
		progress.OnStart()
		start := time.Now()
		res, err = rt.reviewer.Review(ctx, snippet)
		progress.OnComplete(err, time.Since(start))
	}

	fmt.Fprintln(a.Stdout, fmtr.Format(formatter.Report{Result: res, Err: err}))
	if err != nil {
		logger.FromContext(ctx).Debug("review failed", "error", err)
		return ErrReported
	}
	return nil
}

// readSource returns the snippet named by src.
func (a *App) readSource(ctx context.Context, opts Options, src Source) (string, error) {
	if src.Staged {
		diffs, err := a.Git.StagedDiff(ctx)
		if err != nil {
			return "", err
		}
		snippet, _, skipped := git.Bundle(diffs, review.MaxLength)
		if len(skipped) > 0 && !opts.JSON {
			fmt.Fprintf(a.Stderr, "⚠️  Skipped %d file(s) (binary or over the size limit): %s\n",
				len(skipped), strings.Join(git.Paths(skipped), ", "))
		}
		return snippet, nil
	}

	if src.Path == "" || src.Path == "-" {
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := a.ReadFile(filepath.Clean(src.Path))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src.Path, err)
	}
	return string(data), nil
}

// checkPayload is the JSON shape of the check command.
type checkPayload struct {
	Ready bool                 `json:"ready"`
	Model string               `json:"model,omitempty"`
	Error *formatter.ErrorBody `json:"error,omitempty"`
}

// Check initializes the gateway and prints the session banner. It returns
// ErrReported when no model is available.
func (a *App) Check(ctx context.Context, opts Options) error {
	rt, err := a.setup(ctx, opts)
	if err != nil {
		return err
	}

	if opts.JSON {
		p := checkPayload{Ready: rt.initErr == nil, Model: rt.reviewer.Model()}
		if rt.initErr != nil {
			ep := formatter.Payload(formatter.Report{Err: rt.initErr}).(formatter.ErrorPayload)
			p.Error = &ep.Error
		}
		writeJSON(a.Stdout, p)
	} else {
		fmt.Fprintln(a.Stdout, a.cliFormatter(rt.cfg, opts).Render(formatter.Banner(rt.initErr)))
	}

	if rt.initErr != nil {
		return ErrReported
	}
	return nil
}

// Serve runs the HTTP shell until ctx is cancelled. An empty addr uses the
// configured server address.
func (a *App) Serve(ctx context.Context, opts Options, addr string) error {
	rt, err := a.setup(ctx, opts)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = rt.cfg.Server.Addr
	}

	if rt.initErr != nil {
		fmt.Fprintln(a.Stderr, formatter.Guidance(rt.initErr))
	}
	fmt.Fprintf(a.Stderr, "🚀 Serving code reviews on %s\n", addr)

	return server.Serve(rt.ctx, addr, server.NewHandler(rt.reviewer, rt.initErr))
}

// Init writes the commented config template unless a config file exists.
func (a *App) Init(ctx context.Context, opts Options) error {
	path := opts.ConfigPath
	if path == "" {
		p, err := a.Loader.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	created, err := a.Loader.WriteTemplate(ctx, path)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(a.Stdout, "✅ Created %s. Add your Gemini API key from %s.\n", path, formatter.KeyURL)
	} else {
		fmt.Fprintf(a.Stdout, "⚡ Config already exists at %s. Skipping generation.\n", path)
	}
	return nil
}

// defaultApp wires production dependencies around the command's streams.
func defaultApp(stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{
		Loader:   config.NewLoader(&config.RealFileSystem{}),
		Factory:  llm.DefaultClientFactory,
		Git:      git.NewExecService(""),
		ReadFile: os.ReadFile,
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Terminal: isTerminal(stdout),
		Width:    terminalWidth(stdout),
	}
}
