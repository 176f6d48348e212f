package rules

import (
	"regexp"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// CJK unified ideographs and extension A, compatibility ideographs,
// Hiragana/Katakana, and Hangul syllables.
var cjkRe = regexp.MustCompile(`[\x{3400}-\x{4DBF}\x{4E00}-\x{9FFF}\x{F900}-\x{FAFF}\x{3040}-\x{30FF}\x{AC00}-\x{D7AF}]`)

// NoCJKDetector flags the first CJK/Hangul/Kana code point found outside
// comments and strings, a strong signal of non-English naming.
type NoCJKDetector struct{}

// Name returns the detector name.
func (*NoCJKDetector) Name() string { return "no-cjk" }

// Check scans the masked text so that CJK characters inside comments and
// string literals do not trigger.
func (*NoCJKDetector) Check(ctx *detect.Context) []*types.Issue {
	loc := cjkRe.FindStringIndex(ctx.Masked)
	if loc == nil {
		return nil
	}
	return []*types.Issue{{
		RuleID:   detect.RuleNoCJK,
		Severity: types.SeverityError,
		Message:  "non-ASCII (CJK) character detected, likely used for an object or column name; use English words, phrases, or abbreviations",
		Offset:   loc[0],
		Evidence: "..." + ctx.Masked[loc[0]:loc[1]] + "...",
	}}
}
