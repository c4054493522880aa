// Package catalog loads FastForm form definitions from JSON or YAML documents
// so forms can be declared as data alongside the built-in providers. Forms are
// checked while loading: a catalog either loads cleanly or reports every
// configuration problem with its file, form and field.
package catalog
