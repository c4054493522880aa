package export

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fastform/pkg/catalog"
	"github.com/goliatone/go-fastform/pkg/schema"
)

// YAML writes forms as a catalog document that catalog.LoadFS reads back.
func YAML(w io.Writer, list ...schema.Form) error {
	if len(list) == 0 {
		return errors.New("export: no forms to export")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalog.DocumentFor(list...)); err != nil {
		return fmt.Errorf("export: encode YAML: %w", err)
	}
	return enc.Close()
}
