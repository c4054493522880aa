package fastform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-fastform/pkg/catalog"
	"github.com/goliatone/go-fastform/pkg/forms"
	"github.com/goliatone/go-fastform/pkg/openapi"
	"github.com/goliatone/go-fastform/pkg/schema"
)

// Descriptor is the value returned by every form provider: render records in
// render mode, validation entries in validate mode.
type Descriptor = schema.Descriptor

// Form bundles the render records and validation entries of a named form.
type Form = schema.Form

// Provider aliases forms.Provider for callers registering their own forms.
type Provider = forms.Provider

// Registry aliases forms.Registry.
type Registry = forms.Registry

// LoginFormSchema returns the login form's render records, or its validation
// rules when validate is true. Each call returns a fresh copy.
func LoginFormSchema(validate bool) Descriptor {
	return forms.Login(validate)
}

// NewRegistry returns a registry holding the built-in providers.
func NewRegistry() *Registry {
	return forms.NewRegistry()
}

// LoadCatalog parses every catalog file in fsys and registers its forms next to
// the built-in providers.
func LoadCatalog(fsys fs.FS, options ...catalog.Option) (*Registry, error) {
	cat, err := catalog.LoadFS(fsys, options...)
	if err != nil {
		return nil, err
	}
	reg := forms.NewRegistry()
	if err := cat.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// ImportOpenAPI derives a form from the request body of an OpenAPI operation.
func ImportOpenAPI(ctx context.Context, raw []byte, operationID string, options ...openapi.Option) (Form, error) {
	return openapi.Import(ctx, raw, operationID, options...)
}
