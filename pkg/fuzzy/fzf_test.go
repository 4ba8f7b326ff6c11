package fuzzy

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	fzf "github.com/junegunn/fzf/src"
)

// MockFzfRunner implements FzfRunner for testing. It reads up to Consume
// lines from the input channel (all of them when Consume is 0), then sends
// the line chosen by Choose to the output channel.
type MockFzfRunner struct {
	Consume   int
	Choose    func(lines []string) string
	ExitCode  int
	Err       error
	CallCount int
	LastOpts  *fzf.Options
	Received  []string
}

// Run executes the mock
func (m *MockFzfRunner) Run(opts *fzf.Options) (int, error) {
	m.CallCount++
	m.LastOpts = opts

	for line := range opts.Input {
		m.Received = append(m.Received, line)
		if m.Consume > 0 && len(m.Received) == m.Consume {
			break
		}
	}

	if m.Err != nil {
		return fzf.ExitError, m.Err
	}
	if m.Choose != nil {
		if line := m.Choose(m.Received); line != "" {
			opts.Output <- line
		}
	}
	return m.ExitCode, nil
}

func chooseContaining(s string) func([]string) string {
	return func(lines []string) string {
		for _, line := range lines {
			if strings.Contains(line, s) {
				return line
			}
		}
		return ""
	}
}

var testOptions = []Option{
	{Value: "octocat/Hello-World", Description: "My first repository"},
	{Value: "octocat/Spoon-Knife", Description: "This repo is for demonstration purposes only."},
	{Value: "octocat/linguist"},
}

func TestNewFzf(t *testing.T) {
	finder := NewFzf("Test prompt")
	if finder == nil {
		t.Fatal("NewFzf returned nil")
	}
	if finder.prompt != "Test prompt" {
		t.Errorf("Expected prompt 'Test prompt', got '%s'", finder.prompt)
	}
	if _, ok := finder.runner.(*DefaultFzfRunner); !ok {
		t.Errorf("Expected DefaultFzfRunner, got %T", finder.runner)
	}

	finder.SetPrompt("Other")
	if finder.prompt != "Other" {
		t.Errorf("Expected prompt 'Other', got '%s'", finder.prompt)
	}
}

func TestFzfSelect(t *testing.T) {
	runner := &MockFzfRunner{Choose: chooseContaining("Spoon")}
	finder := NewFzfWithRunner("Repo>", runner)

	got, err := finder.Select(testOptions)
	if err != nil {
		t.Fatalf("Select() unexpected error: %v", err)
	}
	if got != "octocat/Spoon-Knife" {
		t.Errorf("Expected octocat/Spoon-Knife, got %q", got)
	}
	if runner.CallCount != 1 {
		t.Errorf("Expected runner to be called once, got %d", runner.CallCount)
	}
	if len(runner.Received) != 3 {
		t.Errorf("Expected 3 lines fed to fzf, got %d", len(runner.Received))
	}
	if runner.Received[0] != "octocat/Hello-World  │  My first repository" {
		t.Errorf("Unexpected display line %q", runner.Received[0])
	}
}

func TestFzfSelectNoOptions(t *testing.T) {
	runner := &MockFzfRunner{}
	finder := NewFzfWithRunner("Repo>", runner)

	if _, err := finder.Select(nil); !errors.Is(err, ErrNoOptions) {
		t.Errorf("Expected ErrNoOptions, got %v", err)
	}
	if runner.CallCount != 0 {
		t.Errorf("Expected runner not to be called, got %d calls", runner.CallCount)
	}
}

func TestFzfSelectFrom(t *testing.T) {
	t.Run("stops feeding when fzf exits", func(t *testing.T) {
		produced := 0
		src := func(yield func(Option, error) bool) {
			for i := 0; i < 1000; i++ {
				produced++
				if !yield(Option{Value: strings.Repeat("x", i+1)}, nil) {
					return
				}
			}
		}

		runner := &MockFzfRunner{Consume: 2, Choose: func(lines []string) string { return lines[1] }}
		got, err := NewFzfWithRunner(">", runner).SelectFrom(context.Background(), src)
		if err != nil {
			t.Fatalf("SelectFrom() unexpected error: %v", err)
		}
		if got != "xx" {
			t.Errorf("Expected xx, got %q", got)
		}
		if produced > 3 {
			t.Errorf("Expected the source to stop early, produced %d", produced)
		}
	})

	t.Run("source error", func(t *testing.T) {
		boom := errors.New("boom")
		src := func(yield func(Option, error) bool) {
			if !yield(Option{Value: "a"}, nil) {
				return
			}
			yield(Option{}, boom)
		}

		runner := &MockFzfRunner{Choose: chooseContaining("a")}
		_, err := NewFzfWithRunner(">", runner).SelectFrom(context.Background(), src)
		if !errors.Is(err, boom) {
			t.Errorf("Expected source error, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		runner := &MockFzfRunner{ExitCode: fzf.ExitInterrupt}
		_, err := NewFzfWithRunner(">", runner).SelectFrom(context.Background(), Options(testOptions...))
		if !errors.Is(err, ErrCancelled) {
			t.Errorf("Expected ErrCancelled, got %v", err)
		}
	})

	t.Run("empty source", func(t *testing.T) {
		runner := &MockFzfRunner{ExitCode: fzf.ExitNoMatch}
		var empty iter.Seq2[Option, error] = Options()
		_, err := NewFzfWithRunner(">", runner).SelectFrom(context.Background(), empty)
		if !errors.Is(err, ErrNoOptions) {
			t.Errorf("Expected ErrNoOptions, got %v", err)
		}
	})

	t.Run("no selection", func(t *testing.T) {
		runner := &MockFzfRunner{}
		_, err := NewFzfWithRunner(">", runner).SelectFrom(context.Background(), Options(testOptions...))
		if err == nil || !strings.Contains(err.Error(), "no selection made") {
			t.Errorf("Expected no selection error, got %v", err)
		}
	})

	t.Run("runner failure", func(t *testing.T) {
		runner := &MockFzfRunner{Err: errors.New("tty unavailable")}
		_, err := NewFzfWithRunner(">", runner).SelectFrom(context.Background(), Options(testOptions...))
		if err == nil || !strings.Contains(err.Error(), "tty unavailable") {
			t.Errorf("Expected runner error, got %v", err)
		}
	})

	t.Run("unknown line falls back to its value column", func(t *testing.T) {
		runner := &MockFzfRunner{Choose: func([]string) string { return "other/repo  │  typed" }}
		got, err := NewFzfWithRunner(">", runner).SelectFrom(context.Background(), Options(testOptions...))
		if err != nil {
			t.Fatalf("SelectFrom() unexpected error: %v", err)
		}
		if got != "other/repo" {
			t.Errorf("Expected other/repo, got %q", got)
		}
	})
}

func TestFzfArgs(t *testing.T) {
	args := NewFzf("Repo>").args()

	if args[0] != "--prompt=Repo> " {
		t.Errorf("Expected prompt argument first, got %q", args[0])
	}
	found := false
	for _, arg := range args {
		if arg == "--no-multi" {
			found = true
		}
	}
	if !found {
		t.Error("Expected --no-multi")
	}
}
