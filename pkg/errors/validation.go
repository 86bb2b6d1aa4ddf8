package errors

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

// javaIdentifier matches one segment of a Java binary class name. Nested
// classes keep their '$' separator.
var javaIdentifier = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*$`)

// ValidateEntryPoint validates a fully-qualified Java class name used as a
// keep root, e.g. "com.example.Main" or "com.example.Outer$Inner".
//
// ProGuard class specifications accept wildcards; those are rejected here
// because an entry point names exactly one class.
func ValidateEntryPoint(name string) error {
	if name == "" {
		return New(ErrCodeConfiguration, "entry point cannot be empty")
	}
	for _, seg := range strings.Split(name, ".") {
		if !javaIdentifier.MatchString(seg) {
			return New(ErrCodeConfiguration, "invalid entry point class name: %q", name)
		}
	}
	return nil
}

// ValidateEntryPath validates an archive entry name before it is joined to
// an output directory.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal segments (..)
//   - No backslashes (Windows-style paths)
func ValidateEntryPath(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "entry name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "entry %q contains invalid characters", name)
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidPath, "entry %q must be relative", name)
	}

	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidPath, "entry %q cannot contain backslashes", name)
	}

	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "entry %q cannot contain path traversal sequences (..)", name)
		}
	}
	if c := path.Clean(name); c == "." {
		return New(ErrCodeInvalidPath, "entry %q does not name a file", name)
	}

	return nil
}

// ValidateFileName validates a bare file name such as the staging or discard
// jar name. It must not contain path components.
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "file name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "file name %q cannot contain path separators", name)
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidInput, "file name %q is reserved", name)
	}
	return nil
}
