// Package sqltext implements the lexical layer of the analyzer: masking of
// comment and string contents, offset-to-position mapping, and heuristic
// statement/segment extraction.
//
// All functions operate on byte offsets into the original source text.
// Masked text always has the same length and the same newline positions as
// the source it was derived from, so any offset computed against one is
// valid against the other.
package sqltext

// Mask returns a copy of source in which every byte inside a block comment,
// line comment, single-quoted string, or double-quoted string is replaced by
// a space. Newlines are preserved. The passes run in that order, each one
// re-scanning the already partially masked buffer, so a comment marker
// hidden inside an earlier-masked span is never treated as live.
//
// Unterminated comments and strings are masked to end-of-text. This is
// fail-open: analysis continues, but everything after the unterminated span
// is invisible to keyword matching.
func Mask(source string) string {
	buf := []byte(source)
	maskBlockComments(buf)
	maskLineComments(buf)
	maskQuoted(buf, '\'')
	maskQuoted(buf, '"')
	return string(buf)
}

// MaskBlockComments masks only /* ... */ comments. The delete-without-where
// check uses this lighter mask so that WHERE keywords in line comments do
// not change its verdict.
func MaskBlockComments(source string) string {
	buf := []byte(source)
	maskBlockComments(buf)
	return string(buf)
}

// blank overwrites buf[start:end] with spaces, keeping newlines.
func blank(buf []byte, start, end int) {
	for i := start; i < end; i++ {
		if buf[i] != '\n' {
			buf[i] = ' '
		}
	}
}

func maskBlockComments(buf []byte) {
	i := 0
	for i+1 < len(buf) {
		if buf[i] != '/' || buf[i+1] != '*' {
			i++
			continue
		}
		end := len(buf)
		for j := i + 2; j+1 < len(buf); j++ {
			if buf[j] == '*' && buf[j+1] == '/' {
				end = j + 2
				break
			}
		}
		blank(buf, i, end)
		i = end
	}
}

func maskLineComments(buf []byte) {
	i := 0
	for i+1 < len(buf) {
		if buf[i] != '-' || buf[i+1] != '-' {
			i++
			continue
		}
		end := i
		for end < len(buf) && buf[end] != '\n' {
			end++
		}
		blank(buf, i, end)
		i = end
	}
}

// maskQuoted masks quote-delimited spans. A doubled quote inside the span is
// an escape, not a terminator.
func maskQuoted(buf []byte, quote byte) {
	i := 0
	for i < len(buf) {
		if buf[i] != quote {
			i++
			continue
		}
		end := len(buf)
		j := i + 1
		for j < len(buf) {
			if buf[j] == quote {
				if j+1 < len(buf) && buf[j+1] == quote {
					j += 2
					continue
				}
				end = j + 1
				break
			}
			j++
		}
		blank(buf, i, end)
		i = end
	}
}
