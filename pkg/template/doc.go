// Package template rewrites machine specific paths inside XML project
// templates.
//
// A template is an XML document whose <string> elements hold free text.
// Elements that need relocating start with a marker (by default "//nex").
// Patching loads the document, strips the marker from every marked element,
// replaces every absolute path in what remains with the project's
// destination directory, and writes the document back in place.
//
// Elements without the marker are never touched. The patcher keeps no state
// between calls; each Patch parses a fresh document and discards it after
// writing. Concurrent patches of the same template file race and must be
// serialized by the caller.
package template
