package fuzzy

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	fzf "github.com/junegunn/fzf/src"
)

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// FzfFinder streams options into an embedded fzf. Options are handed to fzf
// as soon as the source yields them, so a paginated listing becomes
// selectable before its last page arrives.
type FzfFinder struct {
	prompt string
	runner FzfRunner
}

// NewFzf creates a new fzf-style fuzzy finder
func NewFzf(prompt string) *FzfFinder {
	return NewFzfWithRunner(prompt, &DefaultFzfRunner{})
}

// NewFzfWithRunner creates a new fzf-style fuzzy finder with a custom runner (for testing)
func NewFzfWithRunner(prompt string, runner FzfRunner) *FzfFinder {
	return &FzfFinder{
		prompt: prompt,
		runner: runner,
	}
}

// SetPrompt sets the display prompt
func (f *FzfFinder) SetPrompt(prompt string) {
	f.prompt = prompt
}

func (f *FzfFinder) args() []string {
	return []string{
		"--prompt=" + f.prompt + " ",
		"--height=40%",
		"--layout=reverse",
		"--no-multi",
		"--cycle",
		"--extended",
		"--algo=v2",
		"--tiebreak=length",
		"--no-mouse",
		"--border=none",
	}
}

// Select picks one of a fixed list of options.
func (f *FzfFinder) Select(options []Option) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	return f.SelectFrom(context.Background(), Options(options...))
}

// SelectFrom runs fzf over the options produced by src and returns the value
// of the chosen one. Feeding stops as soon as fzf exits.
func (f *FzfFinder) SelectFrom(ctx context.Context, src iter.Seq2[Option, error]) (string, error) {
	opts, err := fzf.ParseOptions(true, f.args())
	if err != nil {
		return "", fmt.Errorf("failed to parse fzf options: %w", err)
	}

	input := make(chan string)
	output := make(chan string)
	opts.Input = input
	opts.Output = output

	var (
		mu      sync.Mutex
		byLine  = make(map[string]string)
		fed     int
		feedErr error
	)

	stop := make(chan struct{})
	fedDone := make(chan struct{})
	go func() {
		defer close(fedDone)
		defer close(input)
		for option, err := range src {
			if err != nil {
				mu.Lock()
				feedErr = err
				mu.Unlock()
				return
			}
			line := option.Display()
			mu.Lock()
			byLine[line] = option.Value
			fed++
			mu.Unlock()

			select {
			case input <- line:
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var selected []string
	outDone := make(chan struct{})
	go func() {
		defer close(outDone)
		for line := range output {
			selected = append(selected, line)
		}
	}()

	exitCode, runErr := f.runner.Run(opts)

	close(stop)
	<-fedDone
	close(output)
	<-outDone

	mu.Lock()
	defer mu.Unlock()

	if runErr != nil {
		return "", fmt.Errorf("fzf failed: %w", runErr)
	}
	if feedErr != nil {
		return "", feedErr
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch exitCode {
	case fzf.ExitOk:
	case fzf.ExitInterrupt:
		return "", ErrCancelled
	default:
		if fed == 0 {
			return "", ErrNoOptions
		}
		return "", errors.New("no selection made")
	}

	if len(selected) == 0 {
		return "", errors.New("no selection made")
	}

	line := strings.TrimRight(selected[0], "\r\n")
	if value, ok := byLine[line]; ok {
		return value, nil
	}
	value, _, _ := strings.Cut(line, descriptionSeparator)
	return strings.TrimSpace(value), nil
}
