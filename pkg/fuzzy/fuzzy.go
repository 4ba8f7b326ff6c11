package fuzzy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
)

// ErrNoOptions is returned when there is nothing to pick from.
var ErrNoOptions = errors.New("no options available")

// ErrCancelled is returned when the user aborts a selection.
var ErrCancelled = errors.New("selection cancelled")

// Option represents a selectable option in the fuzzy finder
type Option struct {
	Value       string
	Description string
}

const descriptionSeparator = "  │  "

// Display returns the line shown for the option.
func (o Option) Display() string {
	if o.Description == "" {
		return o.Value
	}
	return o.Value + descriptionSeparator + o.Description
}

// Options adapts a fixed list to the lazy source accepted by pickers.
func Options(options ...Option) iter.Seq2[Option, error] {
	return func(yield func(Option, error) bool) {
		for _, o := range options {
			if !yield(o, nil) {
				return
			}
		}
	}
}

// Finder is a line-based finder for terminals that cannot host fzf.
type Finder struct {
	prompt  string
	options []Option
	in      *bufio.Reader
	out     io.Writer
}

// New creates a new fuzzy finder reading from stdin and writing to stdout
func New(prompt string) *Finder {
	return NewWithIO(prompt, os.Stdin, os.Stdout)
}

// NewWithIO creates a finder bound to the given streams
func NewWithIO(prompt string, in io.Reader, out io.Writer) *Finder {
	return &Finder{
		prompt:  prompt,
		options: make([]Option, 0),
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// AddOption adds an option to the fuzzy finder
func (f *Finder) AddOption(value, description string) {
	f.options = append(f.options, Option{
		Value:       value,
		Description: description,
	})
}

// GetOptions returns all available options
func (f *Finder) GetOptions() []Option {
	return f.options
}

// Clear removes all options from the finder
func (f *Finder) Clear() {
	f.options = make([]Option, 0)
}

// SetPrompt updates the prompt message
func (f *Finder) SetPrompt(prompt string) {
	f.prompt = prompt
}

// Select displays options and allows user to select one by number
func (f *Finder) Select() (string, error) {
	if len(f.options) == 0 {
		return "", ErrNoOptions
	}

	fmt.Fprintln(f.out, f.prompt)
	fmt.Fprintln(f.out, strings.Repeat("-", len(f.prompt)))
	f.list(f.options)

	fmt.Fprintf(f.out, "\nSelect option (1-%d): ", len(f.options))
	input, err := f.readLine()
	if err != nil {
		return "", err
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return "", fmt.Errorf("invalid selection: %s", input)
	}
	if selection < 1 || selection > len(f.options) {
		return "", fmt.Errorf("selection out of range: %d", selection)
	}

	return f.options[selection-1].Value, nil
}

// SelectWithFilter lets the user narrow the options by substring before
// picking one by number. A single match is selected automatically.
func (f *Finder) SelectWithFilter() (string, error) {
	if len(f.options) == 0 {
		return "", ErrNoOptions
	}

	for {
		fmt.Fprintln(f.out, f.prompt)
		fmt.Fprintln(f.out, "Type to filter options, or enter a number to select:")
		fmt.Fprintln(f.out, strings.Repeat("-", 50))
		f.list(f.options)

		fmt.Fprint(f.out, "Filter/Select: ")
		input, err := f.readLine()
		if err != nil {
			return "", err
		}
		if input == "" {
			continue
		}

		if selection, err := strconv.Atoi(input); err == nil {
			if selection >= 1 && selection <= len(f.options) {
				return f.options[selection-1].Value, nil
			}
			fmt.Fprintf(f.out, "Selection %d is out of range (1-%d)\n\n", selection, len(f.options))
			continue
		}

		filtered := f.filterOptions(input)
		if len(filtered) == 0 {
			fmt.Fprintf(f.out, "No options match filter: %s\n\n", input)
			continue
		}
		if len(filtered) == 1 {
			fmt.Fprintf(f.out, "\nAuto-selecting: %s\n", filtered[0].Value)
			return filtered[0].Value, nil
		}

		fmt.Fprintf(f.out, "\nFiltered options (matching '%s'):\n", input)
		f.list(filtered)

		fmt.Fprintf(f.out, "\nSelect from filtered options (1-%d), or press Enter to filter again: ", len(filtered))
		selectionInput, err := f.readLine()
		if err != nil {
			return "", err
		}
		if selectionInput == "" {
			fmt.Fprintln(f.out)
			continue
		}

		selection, err := strconv.Atoi(selectionInput)
		if err != nil {
			fmt.Fprintf(f.out, "Invalid selection: %s\n\n", selectionInput)
			continue
		}
		if selection < 1 || selection > len(filtered) {
			fmt.Fprintf(f.out, "Selection %d is out of range (1-%d)\n\n", selection, len(filtered))
			continue
		}

		return filtered[selection-1].Value, nil
	}
}

func (f *Finder) list(options []Option) {
	for i, option := range options {
		fmt.Fprintf(f.out, "%d. %s", i+1, option.Value)
		if option.Description != "" {
			fmt.Fprintf(f.out, " - %s", option.Description)
		}
		fmt.Fprintln(f.out)
	}
}

// readLine returns the next trimmed line. End of input before any text
// cancels the selection.
func (f *Finder) readLine() (string, error) {
	line, err := f.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line = strings.TrimSpace(line); line != "" {
				return line, nil
			}
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// filterOptions matches the filter against value and description, case
// insensitively.
func (f *Finder) filterOptions(filter string) []Option {
	filter = strings.ToLower(filter)
	var filtered []Option

	for _, option := range f.options {
		if strings.Contains(strings.ToLower(option.Value), filter) ||
			strings.Contains(strings.ToLower(option.Description), filter) {
			filtered = append(filtered, option)
		}
	}

	return filtered
}
