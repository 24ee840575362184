// Package testutil provides utilities for testing nexpatch components.
//
// Key components:
//   - MemoryFS: In-memory types.FS with error injection and I/O counters
//   - TemplateXML: Builds template documents from a list of string values
//   - CreateFile: Writes fixtures into a real temp directory
//
// All test data should be defined inline, not in external files.
package testutil
