// Package config resolves fastform CLI settings from flags, environment and an
// optional YAML file.
package config
