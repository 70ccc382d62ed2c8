// Package commands implements the objectkit CLI command tree.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/objectkit/objectkit/internal/cli/config"
	"github.com/objectkit/objectkit/internal/hierarchy"
	"github.com/objectkit/objectkit/runtime/object"
)

// NewInspectCommand creates the inspect command group. Flag defaults come
// from the loaded configuration.
func NewInspectCommand(cfg *config.Config) *cobra.Command {
	var (
		hierarchyFile string
		outputFormat  string
		noColor       bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a declarative class hierarchy",
		Long: `Inspect a declarative class hierarchy.

The inspect command loads a YAML hierarchy description and answers questions
about it: the classes it declares, their linearized ancestor chains, the
constructor parameters visible across a chain, and the full named argument
set a given construction call would record.`,
		Example: `  # List all classes in the hierarchy
  objectkit inspect classes -f hierarchy.yaml

  # Show the ancestor chain of a class
  objectkit inspect mro Dog -f hierarchy.yaml

  # Show every constructor parameter visible from a class
  objectkit inspect params Dog -f hierarchy.yaml

  # Simulate a construction and print the recorded argument bindings
  objectkit inspect resolve Dog rex 3 -f hierarchy.yaml --kw color=brown

  # JSON output for tooling
  objectkit inspect classes -f hierarchy.yaml --format json`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&hierarchyFile, "file", "f", "hierarchy.yaml", "Hierarchy description file")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", cfg.Output.Format, "Output format: json or table")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", cfg.Output.NoColor, "Disable colored output")

	cmd.AddCommand(newInspectClassesCommand(&hierarchyFile, &outputFormat))
	cmd.AddCommand(newInspectMROCommand(&hierarchyFile, &outputFormat))
	cmd.AddCommand(newInspectParamsCommand(&hierarchyFile, &outputFormat))
	cmd.AddCommand(newInspectResolveCommand(&hierarchyFile, &outputFormat))
	return cmd
}

func newInspectClassesCommand(file, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List all classes in the hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := hierarchy.Load(*file)
			if err != nil {
				return err
			}
			return renderClasses(cmd.OutOrStdout(), set, *format)
		},
	}
}

func newInspectMROCommand(file, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mro <class>",
		Short: "Show the linearized ancestor chain of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := hierarchy.Load(*file)
			if err != nil {
				return err
			}
			cls, err := set.Class(args[0])
			if err != nil {
				return err
			}
			return renderMRO(cmd.OutOrStdout(), cls, *format)
		},
	}
}

func newInspectParamsCommand(file, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "params <class>",
		Short: "Show all constructor parameters visible from a class",
		Long: `Show all constructor parameters visible from a class.

Lists the union of named parameters declared across the class's full
ancestor chain, excluding variadic collectors. A parameter redeclared at
multiple levels is reported once with its most-derived declaration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := hierarchy.Load(*file)
			if err != nil {
				return err
			}
			cls, err := set.Class(args[0])
			if err != nil {
				return err
			}
			return renderParams(cmd.OutOrStdout(), cls, *format)
		},
	}
}

func newInspectResolveCommand(file, format *string) *cobra.Command {
	var kwFlags []string
	cmd := &cobra.Command{
		Use:   "resolve <class> [arg...]",
		Short: "Simulate a construction and print the recorded bindings",
		Long: `Simulate a construction and print the recorded bindings.

Constructs the named class with the given positional arguments (and any
--kw keyword arguments) and prints the complete parameter-name to value
mapping the construction records. Argument values are treated as strings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := hierarchy.Load(*file)
			if err != nil {
				return err
			}
			kwargs, err := parseKwargs(kwFlags)
			if err != nil {
				return err
			}
			positional := make([]any, 0, len(args)-1)
			for _, a := range args[1:] {
				positional = append(positional, a)
			}
			meta, err := set.Resolve(args[0], positional, kwargs)
			if err != nil {
				return err
			}
			return renderMetadata(cmd.OutOrStdout(), args[0], meta, *format)
		},
	}
	cmd.Flags().StringArrayVar(&kwFlags, "kw", nil, "Keyword argument as name=value (repeatable)")
	return cmd
}

func parseKwargs(flags []string) (object.Kwargs, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	kwargs := make(object.Kwargs, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid keyword argument %q (want name=value)", f)
		}
		kwargs[name] = value
	}
	return kwargs, nil
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	nameColor   = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

func renderClasses(w io.Writer, set *hierarchy.Set, format string) error {
	type classRow struct {
		Name   string   `json:"name"`
		Bases  []string `json:"bases"`
		Params int      `json:"params"`
		Live   int      `json:"live_instances"`
	}
	rows := make([]classRow, 0, len(set.Names()))
	for _, name := range set.Names() {
		cls, err := set.Class(name)
		if err != nil {
			return err
		}
		bases := make([]string, 0, len(cls.Bases()))
		for _, b := range cls.Bases() {
			bases = append(bases, b.Name())
		}
		rows = append(rows, classRow{
			Name:   cls.Name(),
			Bases:  bases,
			Params: len(cls.Signature()),
			Live:   cls.InstanceCount(),
		})
	}

	if format == "json" {
		return writeJSON(w, rows)
	}
	headerColor.Fprintf(w, "%-20s %-30s %s\n", "CLASS", "BASES", "PARAMS")
	for _, row := range rows {
		bases := strings.Join(row.Bases, ", ")
		if bases == "" {
			bases = dimColor.Sprint("(root)")
		}
		fmt.Fprintf(w, "%-20s %-30s %d\n", nameColor.Sprint(row.Name), bases, row.Params)
	}
	return nil
}

func renderMRO(w io.Writer, cls *object.Class, format string) error {
	names := make([]string, 0, len(cls.MRO()))
	for _, anc := range cls.MRO() {
		names = append(names, anc.Name())
	}
	if format == "json" {
		return writeJSON(w, names)
	}
	headerColor.Fprintf(w, "Ancestor chain of %s\n", cls.Name())
	for i, name := range names {
		fmt.Fprintf(w, "%2d. %s\n", i+1, nameColor.Sprint(name))
	}
	return nil
}

func renderParams(w io.Writer, cls *object.Class, format string) error {
	type paramRow struct {
		Name    string `json:"name"`
		Kind    string `json:"kind"`
		Default any    `json:"default,omitempty"`
	}
	params := object.MROParameters(cls)
	rows := make([]paramRow, 0, len(params))
	for _, p := range params {
		rows = append(rows, paramRow{Name: p.Name, Kind: p.Kind.String(), Default: p.Default})
	}

	if format == "json" {
		return writeJSON(w, rows)
	}
	headerColor.Fprintf(w, "%-20s %-12s %s\n", "PARAMETER", "KIND", "DEFAULT")
	for _, row := range rows {
		def := ""
		if row.Default != nil {
			def = fmt.Sprintf("%v", row.Default)
		}
		fmt.Fprintf(w, "%-20s %-12s %s\n", nameColor.Sprint(row.Name), row.Kind, def)
	}
	return nil
}

func renderMetadata(w io.Writer, className string, meta *object.Metadata, format string) error {
	if format == "json" {
		return writeJSON(w, meta.Map())
	}
	headerColor.Fprintf(w, "Recorded construction arguments for %s\n", className)
	for _, name := range meta.Names() {
		value, _ := meta.Get(name)
		fmt.Fprintf(w, "%-20s %v\n", nameColor.Sprint(name), value)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
