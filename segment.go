package docdex

import "strings"

// PreambleHeading names the implicit segment that covers content appearing
// before the first qualifying heading in a file.
const PreambleHeading = "(preamble)"

// Segment is one heading-delimited slice of a markdown file. Offset is the
// 1-indexed first line of the slice and Limit is its line count, so segments
// for a file tile its full line range with no gaps or overlaps.
type Segment struct {
	Heading string
	Level   int
	Offset  int
	Limit   int
}

// SegmentMarkdown splits markdown content into heading-delimited segments.
// A qualifying heading is a line starting with exactly depth '#' characters
// followed by a space, outside fenced code blocks. Content before the first
// qualifying heading becomes an implicit preamble segment at offset 1.
// Content with no qualifying headings yields no segments.
func SegmentMarkdown(content string, depth int) []Segment {
	lines := SplitLines(content)
	if len(lines) == 0 {
		return nil
	}

	prefix := strings.Repeat("#", depth) + " "

	// fenceMarker reports the leading run of a code fence character, if any.
	fenceMarker := func(trimmed string) (byte, int) {
		if trimmed == "" || (trimmed[0] != '`' && trimmed[0] != '~') {
			return 0, 0
		}
		c := trimmed[0]
		n := 0
		for n < len(trimmed) && trimmed[n] == c {
			n++
		}
		if n < 3 {
			return 0, 0
		}
		return c, n
	}

	// Find qualifying headings with their 1-indexed line numbers.
	type heading struct {
		line  int
		title string
	}
	var headings []heading
	var fenceChar byte
	fenceLen := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fenceLen > 0 {
			// A fence closes only on a bare run of the opening marker at
			// least as long as the opener.
			if c, n := fenceMarker(trimmed); c == fenceChar && n >= fenceLen && n == len(trimmed) {
				fenceChar, fenceLen = 0, 0
			}
			continue
		}
		if c, n := fenceMarker(trimmed); n >= 3 {
			fenceChar, fenceLen = c, n
			continue
		}
		if strings.HasPrefix(line, prefix) {
			headings = append(headings, heading{
				line:  i + 1,
				title: strings.TrimSpace(line[len(prefix):]),
			})
		}
	}

	if len(headings) == 0 {
		return nil
	}

	var segments []Segment
	if first := headings[0].line; first > 1 {
		segments = append(segments, Segment{
			Heading: PreambleHeading,
			Level:   depth,
			Offset:  1,
			Limit:   first - 1,
		})
	}

	for i, h := range headings {
		end := len(lines) + 1 // exclusive
		if i+1 < len(headings) {
			end = headings[i+1].line
		}
		segments = append(segments, Segment{
			Heading: h.title,
			Level:   depth,
			Offset:  h.line,
			Limit:   end - h.line,
		})
	}

	return segments
}

// SplitLines splits content into lines the way a text file is counted:
// a trailing newline terminates the final line rather than starting an
// empty one. Empty content has zero lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
