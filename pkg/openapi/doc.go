// Package openapi derives FastForm forms from OpenAPI 3 operations. The
// request body schema of an operation becomes the render records, and its
// constraints (required, minLength, maxLength, formats) become validation
// rules. Vendor extensions prefixed x-fastform- adjust the derivation.
package openapi
