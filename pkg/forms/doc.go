// Package forms holds FastForm form providers. Login is the sample login form;
// Registry resolves providers, built-in or loaded from a catalog, by name.
package forms
