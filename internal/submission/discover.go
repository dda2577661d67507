package submission

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Discover enumerates the direct children of dir and builds a Submission
// for every entry with a recognized suffix. Extraction failures are
// logged and skipped: a submission that cannot be read never existed as
// far as the report is concerned. The returned order is the directory
// listing order; callers needing determinism sort downstream.
func Discover(dir string) ([]Submission, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read submissions directory: %w", err)
	}

	var subs []Submission
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		fullPath := filepath.Join(dir, name)

		var files []File
		switch {
		case strings.HasSuffix(name, ArchiveSuffix):
			files, err = ExtractArchive(fullPath)
		case strings.HasSuffix(name, SourceSuffix):
			files, err = ReadSourceFile(fullPath)
		default:
			continue
		}

		if err != nil {
			log.Error().Err(err).Str("path", fullPath).Msg("skipping unreadable submission")
			continue
		}
		if len(files) == 0 {
			log.Warn().Str("path", fullPath).Msg("skipping archive with no source files")
			continue
		}

		subs = append(subs, Submission{
			StudentName: StudentName(name),
			Files:       files,
			SourcePath:  fullPath,
		})
	}

	return subs, nil
}
