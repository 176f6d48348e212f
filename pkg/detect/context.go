package detect

import (
	"regexp"

	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
)

// ObjectKind classifies a CREATE statement match.
type ObjectKind int

const (
	// TableObject is a CREATE TABLE match.
	TableObject ObjectKind = iota
	// ViewObject is a CREATE [OR REPLACE] VIEW match.
	ViewObject
	// ProcedureObject is a CREATE [OR REPLACE] PROCEDURE match.
	ProcedureObject
	// FunctionObject is a CREATE [OR REPLACE] FUNCTION match.
	FunctionObject
)

// String returns a human-readable kind label used in issue messages.
func (k ObjectKind) String() string {
	switch k {
	case TableObject:
		return "table"
	case ViewObject:
		return "view"
	case ProcedureObject:
		return "procedure"
	case FunctionObject:
		return "function"
	default:
		return "object"
	}
}

// nameToken matches a (possibly qualified, possibly quoted) object name.
const nameToken = "([`\"\\[\\]\\w.$#@]+)"

var objectPatterns = map[ObjectKind]*regexp.Regexp{
	TableObject:     regexp.MustCompile(`(?i)\bCREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?` + nameToken),
	ViewObject:      regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?VIEW\s+` + nameToken),
	ProcedureObject: regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?PROCEDURE\s+` + nameToken),
	FunctionObject:  regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?FUNCTION\s+` + nameToken),
}

// Object is one DDL object located in the masked text. Offsets index the
// original source.
type Object struct {
	Kind ObjectKind
	// Name is the qualifier-stripped, quote-stripped last identifier segment.
	Name string
	// RawName is the name token exactly as matched.
	RawName string
	// Offset is where the CREATE keyword match begins.
	Offset int
	// NameOffset and NameEnd bound the name token.
	NameOffset int
	NameEnd    int
	// MatchText is the full matched text, used as issue evidence.
	MatchText string
}

// Context is the immutable analysis context passed by reference into every
// detector: the source text, its masked counterpart, and the memoized
// object matches so detectors do not re-run the CREATE patterns.
type Context struct {
	Source string
	Masked string

	objects map[ObjectKind][]Object
}

// NewContext masks the source and locates all DDL objects once.
func NewContext(source string) *Context {
	masked := sqltext.Mask(source)
	ctx := &Context{
		Source:  source,
		Masked:  masked,
		objects: make(map[ObjectKind][]Object, len(objectPatterns)),
	}
	for kind, pattern := range objectPatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(masked, -1) {
			raw := source[loc[2]:loc[3]]
			ctx.objects[kind] = append(ctx.objects[kind], Object{
				Kind:       kind,
				Name:       sqltext.LastIdentifier(raw),
				RawName:    raw,
				Offset:     loc[0],
				NameOffset: loc[2],
				NameEnd:    loc[3],
				MatchText:  source[loc[0]:loc[1]],
			})
		}
	}
	return ctx
}

// Objects returns the matches of the given kind in source order.
func (c *Context) Objects(kind ObjectKind) []Object {
	return c.objects[kind]
}

// Statement returns the original-source text of the statement that begins
// at the given object, bounded by the next CREATE keyword heuristic.
func (c *Context) Statement(obj Object) string {
	return sqltext.ExtractStatement(c.Source, c.Masked, obj.Offset)
}
