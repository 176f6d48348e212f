package sqltext

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	createKeywordRe  = regexp.MustCompile(`(?i)\bCREATE\b`)
	dmlKeywordRe     = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE)\b`)
	commentMarkerRe  = regexp.MustCompile(`--|/\*`)
	trailingBlockRe  = regexp.MustCompile(`(?s)/\*.*\*/\s*$`)
	leadingCommentRe = regexp.MustCompile(`^\s*(--|/\*)`)
)

// Span is a half-open (start, end) byte-offset range into the source text.
type Span struct {
	Start int
	End   int
}

// Segment is one top-level comma-delimited slice of a parenthesized list.
// Text is the corresponding slice of the original source.
type Segment struct {
	Start int
	End   int
	Text  string
}

// StatementEnd returns the end offset of the statement beginning at start:
// the offset of the next word-bounded CREATE keyword strictly after start,
// or end-of-text if none is found.
//
// This is a heuristic terminator. It assumes scripts consist of sequential
// CREATE-prefixed statements and does not track ';' or GO separators for
// DDL.
func StatementEnd(masked string, start int) int {
	if start+1 >= len(masked) {
		return len(masked)
	}
	loc := createKeywordRe.FindStringIndex(masked[start+1:])
	if loc == nil {
		return len(masked)
	}
	return start + 1 + loc[0]
}

// ExtractStatement returns the original-source text of the statement
// beginning at start, bounded by StatementEnd on the masked text.
func ExtractStatement(source, masked string, start int) string {
	return source[start:StatementEnd(masked, start)]
}

// FindMatchingParen returns the offset of the ')' balancing the '(' at
// open, scanning masked text with a depth counter. It returns -1 when the
// parentheses are unbalanced; callers must then skip any check that depends
// on the column list.
func FindMatchingParen(masked string, open int) int {
	depth := 0
	for i := open; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// SplitTopLevelColumns splits masked[start:end] at every comma seen at
// parenthesis depth zero and returns the corresponding original-source
// segments. The trailing segment is included even without a terminating
// comma.
func SplitTopLevelColumns(source, masked string, start, end int) []Segment {
	var segments []Segment
	depth := 0
	segStart := start
	for i := start; i < end; i++ {
		switch masked[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				segments = append(segments, Segment{Start: segStart, End: i, Text: source[segStart:i]})
				segStart = i + 1
			}
		}
	}
	if segStart < end {
		segments = append(segments, Segment{Start: segStart, End: end, Text: source[segStart:end]})
	}
	return segments
}

// FindStatementTerminator returns the offset just past the next ';' at or
// after start, or end-of-text if none is found.
func FindStatementTerminator(masked string, start int) int {
	for i := start; i < len(masked); i++ {
		if masked[i] == ';' {
			return i + 1
		}
	}
	return len(masked)
}

// IterDMLSegments locates every INSERT/UPDATE/DELETE keyword within one
// statement's text (masked internally) and extends each to the next ';' or
// end of statement, bounding one DML sub-statement per hit.
func IterDMLSegments(statement string) []Span {
	masked := Mask(statement)
	var spans []Span
	for _, loc := range dmlKeywordRe.FindAllStringIndex(masked, -1) {
		spans = append(spans, Span{Start: loc[0], End: FindStatementTerminator(masked, loc[0])})
	}
	return spans
}

// HasAdjacentComment reports whether the statement span [start, end) is
// documented: a comment marker inside the span itself, a line comment on
// the nearest non-blank preceding line, a block comment ending immediately
// before the span, or a comment beginning immediately after it. Both
// leading and trailing annotation styles are accepted.
func HasAdjacentComment(statement string, start, end int) bool {
	if commentMarkerRe.MatchString(statement[start:end]) {
		return true
	}

	prefix := strings.TrimRightFunc(statement[:start], unicode.IsSpace)
	if prefix != "" {
		lastLine := prefix[strings.LastIndexByte(prefix, '\n')+1:]
		if strings.Contains(lastLine, "--") {
			return true
		}
		if trailingBlockRe.MatchString(prefix) {
			return true
		}
	}

	return leadingCommentRe.MatchString(statement[end:])
}

// LastIdentifier strips schema qualifiers and quoting from a raw name
// token: the last dot-separated part, with [brackets], `backticks`, and
// double quotes removed.
func LastIdentifier(token string) string {
	token = strings.TrimSpace(token)
	if idx := strings.LastIndexByte(token, '.'); idx >= 0 {
		token = token[idx+1:]
	}
	if len(token) >= 2 && strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") {
		token = token[1 : len(token)-1]
	}
	return strings.Trim(token, "`\"")
}
