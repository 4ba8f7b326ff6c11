package fuzzy

import (
	"context"
	"io"
	"iter"
	"os"

	"golang.org/x/term"
)

// Picker selects one option from a lazily produced list.
type Picker interface {
	Pick(ctx context.Context, prompt string, src iter.Seq2[Option, error]) (string, error)
}

// Terminal reports whether a stream is attached to a terminal.
type Terminal func(fd int) bool

// IsInteractive reports whether in and out can host a full-screen picker.
func IsInteractive(in io.Reader, out io.Writer, isTerminal Terminal) bool {
	if isTerminal == nil {
		isTerminal = term.IsTerminal
	}

	inFile, ok := in.(*os.File)
	if !ok || !isTerminal(int(inFile.Fd())) {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok || !isTerminal(int(outFile.Fd())) {
		return false
	}

	termType := os.Getenv("TERM")
	return termType != "" && termType != "dumb"
}

// NewPicker returns an fzf picker when in and out are terminals and a
// line-based one otherwise.
func NewPicker(in io.Reader, out io.Writer) Picker {
	if IsInteractive(in, out, nil) {
		return &FzfPicker{Runner: &DefaultFzfRunner{}}
	}
	return &LinePicker{In: in, Out: out}
}

// FzfPicker picks with an embedded fzf.
type FzfPicker struct {
	Runner FzfRunner
}

// Pick implements Picker.
func (p *FzfPicker) Pick(ctx context.Context, prompt string, src iter.Seq2[Option, error]) (string, error) {
	return NewFzfWithRunner(prompt, p.Runner).SelectFrom(ctx, src)
}

// LinePicker reads the whole source, then prompts on plain streams.
type LinePicker struct {
	In  io.Reader
	Out io.Writer
}

// Pick implements Picker.
func (p *LinePicker) Pick(ctx context.Context, prompt string, src iter.Seq2[Option, error]) (string, error) {
	finder := NewWithIO(prompt, p.In, p.Out)
	for option, err := range src {
		if err != nil {
			return "", err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		finder.AddOption(option.Value, option.Description)
	}
	return finder.SelectWithFilter()
}
