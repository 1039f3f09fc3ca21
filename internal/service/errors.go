// Package service implements the import orchestration engine.
package service

import "errors"

// Sentinel errors for import orchestration failures.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNoInput indicates no data folder or input file was provided,
	// or the provided source does not exist.
	ErrNoInput = errors.New("no input source")

	// ErrNoInputFiles indicates the data folder holds no data files.
	ErrNoInputFiles = errors.New("no data files found for ingestion")

	// ErrUnknownType indicates a forced type name that is absent from
	// the type catalog.
	ErrUnknownType = errors.New("unknown data type")

	// ErrMissingImportDir indicates a definition file was given without
	// the import folder it defines.
	ErrMissingImportDir = errors.New("import folder for definition file is missing")

	// ErrDefinitionImport indicates the definition phase did not complete.
	// Data files depend on the parameter schema, so the run stops here.
	ErrDefinitionImport = errors.New("definition file import failed")
)
