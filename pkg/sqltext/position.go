package sqltext

import "strings"

// DefaultSnippetMaxLen is the default truncation length for line snippets.
const DefaultSnippetMaxLen = 240

// OffsetToLineCol converts a 0-based byte offset into 1-based line and
// column numbers. The column is a byte offset within the line, not a rune
// count, so multibyte runes earlier on the line widen it. Offsets outside
// the text are clamped.
func OffsetToLineCol(source string, offset int) (line, col int) {
	offset = clampOffset(source, offset)
	line = 1 + strings.Count(source[:offset], "\n")
	lastNL := strings.LastIndexByte(source[:offset], '\n')
	col = offset - (lastNL + 1) + 1
	return line, col
}

// LineSnippet returns the full source line containing offset, right-trimmed
// of carriage returns and truncated with an ellipsis beyond maxLen bytes.
// A maxLen <= 0 selects DefaultSnippetMaxLen.
func LineSnippet(source string, offset, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSnippetMaxLen
	}
	offset = clampOffset(source, offset)
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end == -1 {
		end = len(source)
	} else {
		end += offset
	}
	snippet := strings.TrimRight(source[start:end], "\r")
	if len(snippet) > maxLen {
		snippet = snippet[:maxLen] + "..."
	}
	return snippet
}

func clampOffset(source string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(source) {
		return len(source)
	}
	return offset
}
