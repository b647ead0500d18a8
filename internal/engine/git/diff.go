package git

import (
	"strings"
	"unicode/utf8"
)

const diffPrefix = "diff --git "

// SplitDiffs splits a unified diff into per-file entries, each beginning
// with its "diff --git" header.
func SplitDiffs(rawDiff string) []FileDiff {
	if strings.TrimSpace(rawDiff) == "" {
		return nil
	}

	var diffs []FileDiff
	for _, part := range strings.Split(rawDiff, "\n"+diffPrefix) {
		part = strings.TrimPrefix(strings.TrimSpace(part), diffPrefix)
		if part == "" {
			continue
		}
		diffs = append(diffs, FileDiff{
			Path:    extractFilePath(part),
			Content: diffPrefix + part,
			Binary:  isBinary(part),
		})
	}
	return diffs
}

// extractFilePath parses the destination path from "a/<path> b/<path>".
// Paths may contain spaces; when source and destination are the same path
// the header is split at its midpoint, otherwise at the first " b/".
func extractFilePath(diffBlock string) string {
	firstLine, _, _ := strings.Cut(diffBlock, "\n")

	if rest, ok := strings.CutPrefix(firstLine, "a/"); ok && len(rest) > 3 && (len(rest)-3)%2 == 0 {
		mid := (len(rest) - 3) / 2
		if rest[mid:mid+3] == " b/" && rest[:mid] == rest[mid+3:] {
			return rest[:mid]
		}
	}
	if i := strings.Index(firstLine, " b/"); i >= 0 {
		return firstLine[i+len(" b/"):]
	}
	if _, dst, ok := strings.Cut(firstLine, " "); ok {
		return dst
	}
	return strings.TrimPrefix(firstLine, "a/")
}

func isBinary(diffBlock string) bool {
	for _, line := range strings.Split(diffBlock, "\n") {
		if strings.HasPrefix(line, "Binary files ") || line == "GIT binary patch" {
			return true
		}
	}
	return false
}

// Bundle joins diffs into one snippet of at most maxChars characters. Whole
// files are kept or dropped; binary files and files that no longer fit are
// returned in skipped. A maxChars of zero or less means no limit.
func Bundle(diffs []FileDiff, maxChars int) (snippet string, included, skipped []FileDiff) {
	var b strings.Builder
	used := 0

	for _, d := range diffs {
		if d.Binary {
			skipped = append(skipped, d)
			continue
		}

		n := utf8.RuneCountInString(d.Content)
		if b.Len() > 0 {
			n++
		}
		if maxChars > 0 && used+n > maxChars {
			skipped = append(skipped, d)
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Content)
		used += n
		included = append(included, d)
	}

	return b.String(), included, skipped
}

// Paths returns the file paths of diffs.
func Paths(diffs []FileDiff) []string {
	paths := make([]string, 0, len(diffs))
	for _, d := range diffs {
		paths = append(paths, d.Path)
	}
	return paths
}
