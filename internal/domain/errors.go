package domain

import "fmt"

// MalformedCatalogError reports a catalog document that does not have the
// nested mapping / list-of-strings shape.
type MalformedCatalogError struct {
	Path   string // dotted label path to the offending value, empty for the root
	Reason string
	Err    error
}

func (e *MalformedCatalogError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed catalog: %s", e.Reason)
	}
	return fmt.Sprintf("malformed catalog at %s: %s", e.Path, e.Reason)
}

func (e *MalformedCatalogError) Unwrap() error {
	return e.Err
}

func malformed(path, format string, args ...any) *MalformedCatalogError {
	return &MalformedCatalogError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// JoinPath appends a label to a dotted path.
func JoinPath(path, label string) string {
	if path == "" {
		return label
	}
	return path + "." + label
}

// IndexPath appends a list index to a path.
func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
