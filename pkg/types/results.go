package types

// NodeChange records one string node whose text was rewritten
type NodeChange struct {
	// Index is the position of the node among the document's string elements
	Index int    `json:"index"`
	Old   string `json:"old"`
	New   string `json:"new"`
	// Paths is the number of path runs replaced in the node
	Paths int `json:"paths"`
}

// PatchResult reports what a patch operation did to a project's template
type PatchResult struct {
	Project      Project      `json:"project"`
	TemplatePath string       `json:"templatePath,omitempty"`
	Destination  string       `json:"destination,omitempty"`
	Visited      int          `json:"visited"`
	Changes      []NodeChange `json:"changes,omitempty"`
	Written      bool         `json:"written"`
	Skipped      bool         `json:"skipped"`
}

// Changed reports whether at least one node's text differs from the original
func (r *PatchResult) Changed() bool {
	return len(r.Changes) > 0
}

// PathRef is a path run found inside a marked node
type PathRef struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// MarkedNode describes a marked string node found by a scan
type MarkedNode struct {
	Index   int       `json:"index"`
	Payload string    `json:"payload"`
	Paths   []PathRef `json:"paths,omitempty"`
	Result  string    `json:"result"`
}

// ScanResult lists the marked nodes of a project's template without
// modifying it
type ScanResult struct {
	Project      Project      `json:"project"`
	TemplatePath string       `json:"templatePath"`
	Destination  string       `json:"destination"`
	StringNodes  int          `json:"stringNodes"`
	Marked       []MarkedNode `json:"marked,omitempty"`
	Skipped      bool         `json:"skipped"`
}

// ProjectFailure records a project that could not be processed
type ProjectFailure struct {
	Project string `json:"project"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// PatchReport collects the outcome of patching several projects, in the
// order the projects were given
type PatchReport struct {
	Results  []*PatchResult   `json:"results"`
	Failures []ProjectFailure `json:"failures,omitempty"`
}

// Written counts the templates that were written back
func (r *PatchReport) Written() int {
	n := 0
	for _, res := range r.Results {
		if res.Written {
			n++
		}
	}
	return n
}

// ScanReport collects the scan results of several projects
type ScanReport struct {
	Results  []*ScanResult    `json:"results"`
	Failures []ProjectFailure `json:"failures,omitempty"`
}
