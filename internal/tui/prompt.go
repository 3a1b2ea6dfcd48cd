package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrInterrupted is returned when the user aborts a prompt with ctrl+c
var ErrInterrupted = errors.New("interrupted")

// Prompter asks yes/no questions, one at a time. On a terminal it runs a
// bubbletea dialog; otherwise it reads a line answer from its input.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	reader      *bufio.Reader
	pending     chan lineResult // in-flight line read, if any
	interactive bool
}

type lineResult struct {
	line string
	err  error
}

// NewPrompter creates a prompter on the given streams. The dialog is used
// only when both are terminals.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:          in,
		out:         out,
		interactive: isTerminal(in) && isTerminal(out),
	}
}

// NewLinePrompter creates a prompter that always uses line input
func NewLinePrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Interactive reports whether prompts use the terminal dialog
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Confirm asks message and blocks until an answer is given. Anything but
// an explicit yes, including end of input, is a no.
func (p *Prompter) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.interactive {
		return p.confirmDialog(ctx, message)
	}
	return p.confirmLine(ctx, message)
}

func (p *Prompter) confirmDialog(ctx context.Context, message string) (bool, error) {
	model := NewConfirmModel(message)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	if _, err := prog.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, fmt.Errorf("failed to run prompt: %w", err)
	}
	if model.Aborted() {
		return false, ErrInterrupted
	}
	return model.Answer(), nil
}

func (p *Prompter) confirmLine(ctx context.Context, message string) (bool, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", message)

	// A read abandoned by a cancelled prompt is picked up by the next one
	if p.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := p.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		p.pending = ch
	}

	var res lineResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return false, ctx.Err()
	case res = <-p.pending:
		p.pending = nil
	}

	if res.err != nil && !errors.Is(res.err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", res.err)
	}
	if errors.Is(res.err, io.EOF) && res.line == "" {
		fmt.Fprintln(p.out)
	}

	switch strings.ToLower(strings.TrimSpace(res.line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
