// Package schema defines the FastForm data contract: the positional field
// records a form-rendering library consumes in render mode, and the message
// and rule pairs it consumes in validate mode. Records are closed Go types;
// the FastForm string encodings are produced and parsed here so the rest of
// the module never splits commas or pipes by hand.
//
// A Form bundles both descriptors and exposes Check, which reports every
// configuration problem (unknown field types, malformed rules, validations
// that reference undeclared fields) at load time rather than at use time.
package schema
