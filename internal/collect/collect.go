// Package collect merges LMS bulk-download trees into a flat submissions
// directory, keeping only the latest upload per student.
package collect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gradeline/gradeline/internal/submission"
)

// Brightspace bulk downloads unpack to one directory per upload, named
// "<submissionID>-<entityID> - <Student Name> - <timestamp>".
var entryPattern = regexp.MustCompile(`^(\d+)-\d+ - (.+) - (.+)$`)

// timestampLayout matches Brightspace's folder timestamps, e.g.
// "Jun 10, 2024 1030 AM".
const timestampLayout = "Jan 2, 2006 304 PM"

// Entry is one parsed upload directory.
type Entry struct {
	Path        string
	StudentName string
	SubmittedAt time.Time
}

// Stats summarizes a collect run.
type Stats struct {
	Students int
	Copied   int
	Skipped  int
}

// ParseEntry parses an upload directory name. Directories that do not
// match the LMS naming convention return ok=false and are skipped.
func ParseEntry(dir, name string) (Entry, bool) {
	m := entryPattern.FindStringSubmatch(name)
	if m == nil {
		return Entry{}, false
	}
	ts, err := time.Parse(timestampLayout, m[3])
	if err != nil {
		return Entry{}, false
	}
	return Entry{
		Path:        filepath.Join(dir, name),
		StudentName: m[2],
		SubmittedAt: ts,
	}, true
}

// Latest reduces entries to the most recent upload per student. Ties on
// timestamp keep the later entry in listing order, matching how the LMS
// numbers resubmissions.
func Latest(entries []Entry) map[string]Entry {
	latest := make(map[string]Entry, len(entries))
	for _, e := range entries {
		cur, ok := latest[e.StudentName]
		if !ok || !e.SubmittedAt.Before(cur.SubmittedAt) {
			latest[e.StudentName] = e
		}
	}
	return latest
}

// Run walks every source directory for upload directories, picks the
// latest upload per student across all of them, and copies each
// student's best file into dstDir named "<Student_Name><ext>". Archives
// win over bare source files when an upload contains both.
func Run(srcDirs []string, dstDir string) (Stats, error) {
	var entries []Entry
	for _, srcDir := range srcDirs {
		listing, err := os.ReadDir(srcDir)
		if err != nil {
			return Stats{}, fmt.Errorf("read source directory: %w", err)
		}
		for _, item := range listing {
			if !item.IsDir() {
				continue
			}
			entry, ok := ParseEntry(srcDir, item.Name())
			if !ok {
				log.Debug().Str("dir", item.Name()).Msg("skipping non-submission directory")
				continue
			}
			entries = append(entries, entry)
		}
	}

	latest := Latest(entries)
	if len(latest) == 0 {
		return Stats{}, nil
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output directory: %w", err)
	}

	stats := Stats{Students: len(latest)}
	for student, entry := range latest {
		src, ok := pickFile(entry.Path)
		if !ok {
			log.Warn().
				Str("student", student).
				Str("dir", entry.Path).
				Msg("no gradeable file in latest upload")
			stats.Skipped++
			continue
		}

		dst := filepath.Join(dstDir, targetName(student, src))
		if err := copyFile(src, dst); err != nil {
			return stats, fmt.Errorf("copy %s: %w", student, err)
		}
		log.Info().
			Str("student", student).
			Str("file", filepath.Base(src)).
			Time("submitted", entry.SubmittedAt).
			Msg("collected submission")
		stats.Copied++
	}

	return stats, nil
}

// pickFile chooses the file to carry forward from an upload directory.
// An archive takes priority; otherwise the first source file wins.
func pickFile(dir string) (string, bool) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var source string
	for _, item := range listing {
		if item.IsDir() {
			continue
		}
		name := item.Name()
		switch {
		case strings.HasSuffix(name, submission.ArchiveSuffix):
			return filepath.Join(dir, name), true
		case strings.HasSuffix(name, submission.SourceSuffix) && source == "":
			source = filepath.Join(dir, name)
		}
	}
	if source != "" {
		return source, true
	}
	return "", false
}

// targetName builds the flat output filename: spaces in the student name
// become underscores so the grading stage can recover the name later.
func targetName(student, src string) string {
	return strings.ReplaceAll(student, " ", "_") + filepath.Ext(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
