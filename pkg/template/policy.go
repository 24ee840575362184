package template

import (
	"fmt"
	"strings"
)

// WritePolicy decides when a patched template is written back to disk
type WritePolicy string

const (
	// WriteAlways writes every template that parsed, marked elements or not
	WriteAlways WritePolicy = "always"
	// WriteVisited writes when at least one marked element was found
	WriteVisited WritePolicy = "visited"
	// WriteChanged writes only when element text changed and the serialized
	// document differs from the bytes on disk
	WriteChanged WritePolicy = "changed"
)

// DefaultWritePolicy is used when no policy is configured
const DefaultWritePolicy = WriteVisited

// ParseWritePolicy parses a string into a WritePolicy value
func ParseWritePolicy(s string) (WritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultWritePolicy, nil
	case "always":
		return WriteAlways, nil
	case "visited":
		return WriteVisited, nil
	case "changed":
		return WriteChanged, nil
	default:
		return "", fmt.Errorf("unknown write policy: %s", s)
	}
}

// String returns the string representation of the policy
func (p WritePolicy) String() string {
	return string(p)
}
