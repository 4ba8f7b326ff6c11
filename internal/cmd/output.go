package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github3/pkg/convert"
	"github3/pkg/idl"
	"github3/pkg/resource"
)

// printModel writes one model. Text output lists the present attributes in
// schema order; nested objects are summarized on one line.
func (a *app) printModel(schema *idl.Schema, model idl.Model) error {
	doc, err := convert.Document(schema, model)
	if err != nil {
		return err
	}

	if a.output == outputJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, attr := range schema.Attributes() {
		v, ok := doc[attr.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s:\t%s\n", attr.Name, summarize(v))
	}
	return w.Flush()
}

// printList drains result, writing each model as soon as its page arrives.
func (a *app) printList(ctx context.Context, result *resource.Result, schema *idl.Schema, line func(idl.Model) string) error {
	enc := json.NewEncoder(a.out)
	for model, err := range result.All(ctx) {
		if err != nil {
			return err
		}
		if a.output == outputJSON {
			doc, err := convert.Document(schema, model)
			if err != nil {
				return err
			}
			if err := enc.Encode(doc); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(a.out, line(model))
	}

	a.log.Debug().
		Int("items", result.Yielded()).
		Int("pages", result.Pages()).
		Stringer("state", result.State()).
		Msg("listing finished")
	return nil
}

// printBool writes the answer of a membership check.
func (a *app) printBool(v bool, yes, no string) error {
	if a.output == outputJSON {
		return json.NewEncoder(a.out).Encode(map[string]bool{"result": v})
	}
	if v {
		_, err := fmt.Fprintln(a.out, yes)
		return err
	}
	_, err := fmt.Fprintln(a.out, no)
	return err
}

func summarize(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case map[string]any:
		for _, key := range []string{"full_name", "login", "label", "name", "filename"} {
			if s, ok := x[key].(string); ok {
				return s
			}
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return strings.Join(keys, ", ")
	case []map[string]any:
		return fmt.Sprintf("%d items", len(x))
	default:
		return fmt.Sprint(x)
	}
}

// splitRepo parses an owner/name argument.
func splitRepo(arg string) (string, string, error) {
	owner, name, ok := strings.Cut(arg, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", arg)
	}
	return owner, name, nil
}

func parseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid pull request number %q", arg)
	}
	return n, nil
}

func str(o idl.Opt[string]) string { return o.Or("") }

// setChanged assigns the value of every string flag the user passed to its
// field. Flags left out keep their field absent.
func setChanged(cmd *cobra.Command, fields map[string]*idl.Opt[string]) {
	flags := cmd.Flags()
	for flag, field := range fields {
		if flags.Changed(flag) {
			v, _ := flags.GetString(flag)
			field.Assign(v)
		}
	}
}
