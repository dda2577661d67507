// Package submission discovers student submissions in a directory and
// extracts their source files from flat .java uploads or .zip archives.
package submission

import (
	"path/filepath"
	"strings"
)

// Recognized suffixes. Anything else in the submissions directory is
// ignored.
const (
	SourceSuffix  = ".java"
	ArchiveSuffix = ".zip"
)

// File is a single source file from a submission. Immutable once read.
type File struct {
	Filename string
	Content  string
}

// Submission is one student's set of source files plus inferred identity.
// Never mutated after discovery.
type Submission struct {
	StudentName string
	Files       []File
	SourcePath  string
}

// StudentName derives a student identity from a submission filename:
// the stem with underscores replaced by spaces, so "John_Smith.zip"
// becomes "John Smith".
func StudentName(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.ReplaceAll(stem, "_", " ")
}
