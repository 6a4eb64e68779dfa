// Package testutil provides shared fixtures for tests: break descriptors in
// the shape the API diffing collaborator produces, coordinate shorthands and
// deterministic ID sequences for history tests.
package testutil
