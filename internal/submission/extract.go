package submission

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ReadSourceFile reads a single flat source file and returns it as a
// one-element file list, named after the file itself.
func ReadSourceFile(filePath string) ([]File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ReadError{Path: filePath, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &ReadError{Path: filePath, Err: fmt.Errorf("content is not valid UTF-8 text")}
	}

	return []File{{
		Filename: filepath.Base(filePath),
		Content:  string(data),
	}}, nil
}

// ExtractArchive opens a zip archive and returns every entry whose name
// ends in the recognized source suffix. Other entries (readme files,
// class files, IDE droppings) are ignored silently.
func ExtractArchive(filePath string) ([]File, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, &ArchiveError{Path: filePath, Err: err}
	}
	defer r.Close()

	var files []File
	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name, SourceSuffix) {
			continue
		}

		content, err := readZipEntry(entry)
		if err != nil {
			return nil, &ArchiveError{Path: filePath, Err: fmt.Errorf("entry %s: %w", entry.Name, err)}
		}
		files = append(files, File{Filename: entry.Name, Content: content})
	}

	return files, nil
}

func readZipEntry(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("content is not valid UTF-8 text")
	}
	return string(data), nil
}
