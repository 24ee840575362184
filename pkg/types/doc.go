// Package types defines the core data types shared across nexpatch.
// This includes the Project and Asset records supplied by callers, the
// results reported by patch and scan operations, and the FS interface the
// template patcher performs its I/O through.
package types
