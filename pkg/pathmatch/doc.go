// Package pathmatch finds absolute filesystem paths inside free text.
//
// Three path styles are recognized:
//
//	/Users/Name/Projects/MyProject/     POSIX
//	C:\Projects\MyNewProject\           Windows drive letter
//	~/projects/123/                     home relative
//
// Matching is purely lexical. A path starts at a root, then alternates
// segments and separators for as long as the text allows, so a match always
// covers the longest contiguous path-shaped run. A root with no segment after
// it (a lone "/", "C:\" or "~/") is left alone as plain text.
//
// Consecutive separators collapse into one, so a Windows path stored with
// escaped backslashes (C:\\Projects\\) lexes the same as the raw spelling.
// A drive or tilde prefix that sits right in front of a path sticks to it.
package pathmatch
