// Package testsupport holds fixtures and assertions shared by package tests.
package testsupport
