package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/langportal/internal/brand"
	"grimm.is/langportal/internal/config"
)

// RunConfig prints the effective configuration:
// config [--format hcl|json|yaml] [--diff]
func RunConfig(_ context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	format := fs.String("format", "hcl", "Output format: hcl, json, yaml")
	fs.StringVar(format, "o", "hcl", "Output format (short)")
	diff := fs.Bool("diff", false, "Show only what differs from the defaults")
	if _, err := splitArgs(fs, args); err != nil {
		return err
	}
	if a.JSON {
		*format = "json"
	}

	data, err := renderConfig(a.Config, *format)
	if err != nil {
		return err
	}

	if *diff {
		defaults, err := renderConfig(config.Default(), *format)
		if err != nil {
			return err
		}
		if string(defaults) == string(data) {
			Printer.Fprintln(a.Out, "No changes from defaults.")
			return nil
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(defaults)),
			B:        difflib.SplitLines(string(data)),
			FromFile: "defaults",
			ToFile:   "effective",
			Context:  3,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(a.Out, text)
		return err
	}

	if a.Config.Path != "" && !a.JSON {
		fmt.Fprintf(a.Out, "# loaded from %s\n", a.Config.Path)
	} else if !a.JSON {
		fmt.Fprintf(a.Out, "# defaults (no file at %s)\n", brand.DefaultConfigPath())
	}
	_, err = a.Out.Write(data)
	return err
}

func renderConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "hcl":
		return cfg.HCL(), nil
	case "json":
		return cfg.JSON()
	case "yaml":
		return cfg.YAML()
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
