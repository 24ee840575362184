// Package project loads project manifests. A manifest is a TOML, YAML or
// JSON file describing one exported project:
//
//	uid = "demo"
//	workpath = "/Users/alice/Projects/demo"
//	template = "project.xml"
//
//	[[assets]]
//	type = "script"
//	name = "main"
//	path = "scripts/main.js"
package project
