// Package parser extracts word-record fields from Obsidian-exported Markdown flashcards.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autolearn/kotoba/internal/models"
)

// One pattern per field. Matching is case-sensitive and first-match-only
// against the whole content; both the half-width and full-width colon are
// accepted as separators.
var (
	titleRe   = regexp.MustCompile(`##\s*🈶\s*Kanji\s*[:：]\s*([^-]+)\s*-\s*(.+)`)
	onyomiRe  = regexp.MustCompile(`Lecture\s+\*onyomi\*\s*[:：]\s*([^(\n]+)`)
	kunyomiRe = regexp.MustCompile(`Lecture\s+\*kunyomi\*\s*[:：]\s*([^(\n]+)`)
	transEnRe = regexp.MustCompile(`Traduction\s+EN\s*[:：]\s*(.+)`)
	typeRe    = regexp.MustCompile(`Type\s*[:：]\s*#?(\w+)`)
	themeRe   = regexp.MustCompile(`Thème\s*[:：]\s*#?(\w+)`)
	tagsRe    = regexp.MustCompile(`Tags\s*[:：]\s*(.+)`)
)

// Parse extracts a WordRecord from raw flashcard content. Each field pattern
// is independent: an absent pattern leaves its field empty rather than
// failing. The record is only valid when the kanji title line resolved to a
// non-empty kanji; otherwise an error carrying the filename is returned and
// nothing should be stored for the file.
func Parse(content, filename string) (*models.WordRecord, error) {
	rec := &models.WordRecord{
		ID:        uuid.NewString(),
		Filename:  filename,
		CreatedAt: time.Now(),
	}

	if m := titleRe.FindStringSubmatch(content); m != nil {
		rec.Kanji = strings.TrimSpace(m[1])
		rec.TraductionFr = strings.TrimSpace(m[2])
	}

	rec.Onyomi = extractField(onyomiRe, content)
	rec.Kunyomi = extractField(kunyomiRe, content)
	rec.TraductionEn = extractField(transEnRe, content)
	rec.Type = extractField(typeRe, content)
	rec.Theme = extractField(themeRe, content)

	if m := tagsRe.FindStringSubmatch(content); m != nil {
		rec.Tags = splitTags(m[1])
	}

	if rec.Kanji == "" {
		return nil, fmt.Errorf("parser: %s: no kanji title line", filename)
	}
	return rec, nil
}

// extractField returns the first submatch of re in content, trimmed, or ""
// when the pattern is absent.
func extractField(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// splitTags splits a tag line on '#', trimming each segment and dropping
// empties. Source order is preserved.
func splitTags(line string) []string {
	var out []string
	for _, seg := range strings.Split(line, "#") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}
