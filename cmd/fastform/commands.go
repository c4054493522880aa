package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-fastform/internal/config"
	"github.com/goliatone/go-fastform/pkg/author"
	"github.com/goliatone/go-fastform/pkg/export"
	"github.com/goliatone/go-fastform/pkg/forms"
	"github.com/goliatone/go-fastform/pkg/openapi"
	"github.com/goliatone/go-fastform/pkg/schema"
)

func (a *app) schemaCmd() *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "schema [form]",
		Short: "Print a form's render records or validation rules as JSON",
		Long: `Print the descriptor a FastForm provider returns. Without --validate the
render records are printed keyed by field type; with --validate the
validation entries are printed keyed by field name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := forms.LoginName
			if len(args) == 1 {
				name = args[0]
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			desc, err := reg.Describe(name, validate)
			if err != nil {
				return err
			}
			a.logger.Debug("descriptor resolved", zap.String("form", name), zap.Stringer("mode", desc.Mode()), zap.Int("entries", desc.Len()))
			return a.writeOutput(cmd, func(w io.Writer) error {
				return export.JSON(w, desc, a.cfg.Indent)
			})
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "print validation rules instead of render records")
	cmd.Flags().String("indent", config.Defaults().Indent, "JSON indentation (empty for compact output)")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Check catalog files for configuration errors",
		Long: `Load every YAML/JSON catalog file under dir (or --catalog) and report
unknown field types, malformed rules or attributes, and validations that
reference undeclared fields.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Catalog
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return errors.New("check: a catalog directory is required (argument or --catalog)")
			}

			out := cmd.OutOrStdout()
			cat, err := a.loadCatalog(dir)
			if err != nil {
				problems := schema.Problems(err)
				for _, problem := range problems {
					fmt.Fprintf(out, "FAIL %s\n", problem.Error())
				}
				return fmt.Errorf("check: %d problem(s) in %s", len(problems), dir)
			}
			for _, name := range cat.Names() {
				fmt.Fprintf(out, "ok   %s (%s)\n", name, cat.Source(name))
			}
			fmt.Fprintf(out, "%d form(s) checked\n", len(cat.Names()))
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [form...]",
		Short: "Export forms as a FastForm PHP class, a YAML catalog or JSON",
		Long: `Export the named forms (all registered forms when none are given).

  php   a FastForm forms class with one my_<form>() provider per form
  yaml  a catalog document readable by --catalog
  json  the full form definitions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = reg.Names()
			}
			list := make([]schema.Form, 0, len(names))
			for _, name := range names {
				form, err := reg.Form(name)
				if err != nil {
					return err
				}
				list = append(list, form)
			}
			a.logger.Debug("exporting forms", zap.Strings("forms", names), zap.String("format", a.cfg.Format))

			return a.writeOutput(cmd, func(w io.Writer) error {
				switch a.cfg.Format {
				case "php":
					return export.PHP(w, list,
						export.WithClassName(a.cfg.Class),
						export.WithParentClass(a.cfg.Parent),
						export.WithMethodPrefix(a.cfg.Prefix),
					)
				case "yaml":
					return export.YAML(w, list...)
				default:
					enc := json.NewEncoder(w)
					enc.SetEscapeHTML(false)
					enc.SetIndent("", a.cfg.Indent)
					return enc.Encode(list)
				}
			})
		},
	}
	defaults := config.Defaults()
	flags := cmd.Flags()
	flags.StringP("format", "f", defaults.Format, "output format: php, yaml or json")
	flags.String("class", defaults.Class, "PHP class name")
	flags.String("parent", defaults.Parent, "PHP parent class")
	flags.String("prefix", defaults.Prefix, "PHP provider method prefix")
	flags.String("indent", defaults.Indent, "JSON indentation")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var (
		source    string
		operation string
		name      string
		submit    string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Derive a form from an OpenAPI operation request body",
		Long: `Derive a FastForm form from the request body of an OpenAPI 3 operation and
print it as a catalog document. Operations without an operationId can be
addressed as method:path, e.g. post:/login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("import: read %s: %w", source, err)
			}
			opts := []openapi.Option{
				openapi.WithFormName(name),
				openapi.WithLogger(a.logger.Named("openapi")),
			}
			if submit != "" {
				opts = append(opts, openapi.WithSubmitLabel(submit))
			}
			form, err := openapi.Import(cmd.Context(), raw, operation, opts...)
			if err != nil {
				return err
			}
			a.logger.Debug("form imported",
				zap.String("source", source),
				zap.String("operation", operation),
				zap.Int("fields", len(form.Fields)),
			)
			return a.writeOutput(cmd, func(w io.Writer) error {
				return export.YAML(w, form)
			})
		},
	}
	cmd.Flags().StringVar(&source, "openapi", "", "OpenAPI document (JSON or YAML)")
	cmd.Flags().StringVar(&operation, "operation", "", "operation id or method:path")
	cmd.Flags().StringVar(&name, "name", "", "form name (defaults to the operation id)")
	cmd.Flags().StringVar(&submit, "submit", "", "submit button label")
	_ = cmd.MarkFlagRequired("openapi")
	_ = cmd.MarkFlagRequired("operation")
	return cmd
}

func (a *app) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Build a form interactively and print it as a catalog document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := author.NewWizard(a.driver).Run(cmd.Context())
			if err != nil {
				if errors.Is(err, author.ErrAborted) {
					return errors.New("new: aborted")
				}
				return err
			}
			a.logger.Debug("form authored", zap.String("form", form.Name), zap.Int("fields", len(form.Fields)))
			return a.writeOutput(cmd, func(w io.Writer) error {
				return export.YAML(w, form)
			})
		},
	}
}
