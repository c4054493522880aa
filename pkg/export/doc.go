// Package export writes FastForm forms in the formats their consumers read:
// the positional JSON shape of a single descriptor, catalog YAML documents, and
// a PHP forms class for the FastForm library itself.
package export
