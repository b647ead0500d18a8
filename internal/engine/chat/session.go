// Package chat runs the interactive review conversation on a terminal.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/irahardianto/codereview/internal/engine/formatter"
	"github.com/irahardianto/codereview/internal/engine/review"
	"github.com/irahardianto/codereview/internal/platform/logger"
)

// Chat commands. Each must be alone on its line.
const (
	CmdSend  = "/send"
	CmdClear = "/clear"
	CmdQuit  = "/quit"
	CmdExit  = "/exit"
	CmdHelp  = "/help"
)

const maxLineBytes = 1 << 20

const helpText = "**Commands**\n\n" +
	"• `/send` submits the code typed so far\n" +
	"• `/clear` discards the code typed so far\n" +
	"• `/help` shows this message\n" +
	"• `/quit` or `/exit` ends the session\n\n" +
	"Pending code is submitted automatically at end of input (Ctrl-D)."

const promptHint = "Paste your code, then type `/send` on its own line. `/help` lists commands."

// Reviewer reviews one snippet.
type Reviewer interface {
	Review(ctx context.Context, snippet string) (*review.Result, error)
}

// Renderer formats reports and renders status markdown.
type Renderer interface {
	formatter.Formatter
	Render(markdown string) string
}

// Session is one interactive conversation. Messages are handled strictly in
// order; a review finishes before the next message is read.
type Session struct {
	ID       string
	reviewer Reviewer
	renderer Renderer
	in       io.Reader
	out      io.Writer
	progress *Progress
}

// NewSession creates a session reading messages from in and writing replies to out.
func NewSession(reviewer Reviewer, renderer Renderer, in io.Reader, out io.Writer) *Session {
	return &Session{
		ID:       uuid.NewString(),
		reviewer: reviewer,
		renderer: renderer,
		in:       in,
		out:      out,
		progress: NewProgress(out, false, renderer.Render),
	}
}

// Progress returns the session's progress reporter.
func (s *Session) Progress() *Progress {
	return s.progress
}

// Run greets the user and processes messages until a quit command, end of
// input or context cancellation. initErr is the gateway initialization
// outcome shown in the greeting.
func (s *Session) Run(ctx context.Context, initErr error) error {
	ctx = logger.With(ctx, "session_id", s.ID)
	log := logger.FromContext(ctx)
	log.Debug("chat session started", "model_ready", initErr == nil)

	s.println(s.renderer.Render(formatter.Banner(initErr)))
	s.println(s.renderer.Render(promptHint))

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := s.readLines(readCtx)

	var pending []string
	for {
		select {
		case <-ctx.Done():
			s.goodbye()
			return nil
		case line, ok := <-lines:
			if !ok {
				if len(pending) > 0 {
					s.submit(ctx, strings.Join(pending, "\n"))
				}
				s.goodbye()
				return <-readErr
			}

			switch strings.TrimSpace(line) {
			case CmdSend:
				s.submit(ctx, strings.Join(pending, "\n"))
				pending = nil
			case CmdClear:
				pending = nil
				s.println("🧹 Cleared.")
			case CmdHelp:
				s.println(s.renderer.Render(helpText))
			case CmdQuit, CmdExit:
				s.goodbye()
				return nil
			default:
				pending = append(pending, line)
			}
		}
	}
}

func (s *Session) submit(ctx context.Context, snippet string) {
	log := logger.FromContext(ctx)
	snippet = strings.TrimSpace(snippet)

	if err := review.Validate(snippet); err != nil {
		log.Debug("message rejected", "error", err)
		s.println(s.renderer.Format(formatter.Report{Err: err}))
		return
	}

	s.progress.OnStart()
	start := time.Now()
	res, err := s.reviewer.Review(ctx, snippet)
	s.progress.OnComplete(err, time.Since(start))
	if err != nil {
		log.Warn("review failed", "error", err)
	}

	s.println(s.renderer.Format(formatter.Report{Result: res, Err: err}))
}

// readLines scans input on its own goroutine so cancellation is not blocked
// by a pending terminal read.
func (s *Session) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- fmt.Errorf("reading input: %w", err)
			return
		}
		errc <- nil
	}()

	return lines, errc
}

func (s *Session) goodbye() {
	s.println("👋 Goodbye!")
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
	fmt.Fprintln(s.out)
}
