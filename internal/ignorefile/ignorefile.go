// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ignorefile parses the line-oriented grammar of a
// .git-blame-ignore-revs file into typed line records.
//
// Each physical line is exactly one of: blank, a comment starting with '#',
// a full 40-character lowercase commit hash, or malformed. Order matters:
// the "comment above a hash" checks depend on line adjacency, so records
// keep their 1-based position and are never reordered.
package ignorefile

import (
	"regexp"
	"strings"
)

// Kind classifies a single physical line.
type Kind int

const (
	Blank Kind = iota
	Comment
	Hash
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Hash:
		return "hash"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

var hashRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Line is one classified physical line. Immutable once produced.
type Line struct {
	// Number is the 1-based position in the file.
	Number int
	Kind   Kind
	// Raw is the line as read, without the trailing newline.
	Raw string
	// Hash is the 40-hex commit hash for Kind == Hash, empty otherwise.
	Hash string
	// Comment is the comment text for Kind == Comment, with the leading '#'
	// and one following space stripped.
	Comment string
}

// File is the ordered sequence of classified lines of one ignore file.
type File struct {
	Lines []Line
}

// Parse classifies every physical line of raw, including trailing blank
// lines. It is pure: no I/O, identical input yields identical output.
func Parse(raw string) *File {
	raw = strings.TrimSuffix(raw, "\n")

	var lines []Line
	if raw == "" {
		return &File{Lines: lines}
	}

	for i, text := range strings.Split(raw, "\n") {
		text = strings.TrimSuffix(text, "\r")
		lines = append(lines, classify(i+1, text))
	}
	return &File{Lines: lines}
}

func classify(number int, text string) Line {
	line := Line{Number: number, Raw: text}
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		line.Kind = Blank
	case strings.HasPrefix(trimmed, "#"):
		line.Kind = Comment
		line.Comment = strings.TrimPrefix(strings.TrimPrefix(trimmed, "#"), " ")
	case hashRe.MatchString(trimmed):
		line.Kind = Hash
		line.Hash = trimmed
	default:
		line.Kind = Malformed
	}
	return line
}

// Hashes returns the hash records in file order.
func (f *File) Hashes() []Line {
	var out []Line
	for _, l := range f.Lines {
		if l.Kind == Hash {
			out = append(out, l)
		}
	}
	return out
}

// HashSet returns the set of hash values present in the file.
func (f *File) HashSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, l := range f.Lines {
		if l.Kind == Hash {
			set[l.Hash] = struct{}{}
		}
	}
	return set
}

// CommentBlockAbove returns the contiguous run of comment lines directly
// above the given hash line, in file order. It returns nil when the nearest
// preceding non-blank line is not a comment, when a blank line separates the
// block from the hash, or when the hash sits at the top of the file.
func (f *File) CommentBlockAbove(hash Line) []Line {
	idx := hash.Number - 1 // Lines is 0-indexed, Number is 1-based.
	if idx <= 0 || idx > len(f.Lines) {
		return nil
	}

	var block []Line
	for i := idx - 1; i >= 0; i-- {
		if f.Lines[i].Kind != Comment {
			break
		}
		block = append([]Line{f.Lines[i]}, block...)
	}
	return block
}
