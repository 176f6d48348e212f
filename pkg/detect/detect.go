// Package detect defines the rule detector contract and the ordered
// registry detectors register themselves into. It mirrors the shape of the
// analysis context every detector consumes: the original source, the masked
// source, and the memoized object matches.
package detect

import (
	"fmt"
	"sync"

	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// Rule identifiers. The id is what appears in reports and in rule
// configuration files.
const (
	// RuleNoCJK flags CJK/Hangul/Kana code points outside comments and strings.
	RuleNoCJK = "naming.no-cjk"
	// RuleIdentifierFormat enforces the ^[A-Z][A-Z0-9_]*$ identifier format.
	RuleIdentifierFormat = "naming.identifier-format"
	// RuleIdentifierWordLimit limits identifiers to 3 underscore-separated words.
	RuleIdentifierWordLimit = "naming.identifier-word-limit"
	// RuleObjectPrefix enforces T_/V_/P_/F_ object name prefixes.
	RuleObjectPrefix = "naming.object-prefix"
	// RuleNoStagingPrefix disallows the TMP_TMP_TMP staging prefix on tables.
	RuleNoStagingPrefix = "naming.no-staging-prefix"
	// RuleTableComment requires a COMMENT in every CREATE TABLE statement.
	RuleTableComment = "table.comment"
	// RuleColumnComment requires a COMMENT on every column definition.
	RuleColumnComment = "column.comment"
	// RuleHistoryDateColumn requires a DT_DATE column in _HIS tables.
	RuleHistoryDateColumn = "table.history-date-column"
	// RuleDeleteRequireWhere flags DELETE statements without a WHERE clause.
	RuleDeleteRequireWhere = "statement.delete-require-where"
	// RuleNoImplicitCrossJoin flags comma joins in FROM clauses.
	RuleNoImplicitCrossJoin = "statement.no-implicit-cross-join"
	// RuleJoinRequirePredicate flags JOIN clauses without ON/USING/NATURAL/CROSS.
	RuleJoinRequirePredicate = "statement.join-require-predicate"
	// RuleUppercase requires the whole script to be upper-cased.
	RuleUppercase = "style.uppercase"
	// RuleViewNestingLimit limits SELECT nesting inside view bodies to 3.
	RuleViewNestingLimit = "view.nesting-limit"
	// RuleFunctionCallNesting limits function-call nesting depth inside functions.
	RuleFunctionCallNesting = "function.call-nesting-limit"
	// RuleFunctionMaxLength limits function statements to 200 lines.
	RuleFunctionMaxLength = "function.maximum-length"
	// RuleEqualSignSpacing requires spaces around = inside procedure bodies.
	RuleEqualSignSpacing = "procedure.equal-sign-spacing"
	// RuleProcedureNoTruncate disallows TRUNCATE inside procedure bodies.
	RuleProcedureNoTruncate = "procedure.disallow-truncate"
	// RuleDMLRequireComment requires a comment adjacent to every DML
	// sub-statement inside procedure and function bodies.
	RuleDMLRequireComment = "procedure.dml-require-comment"
	// RuleNoTrigger disallows CREATE TRIGGER outright.
	RuleNoTrigger = "trigger.disallow-create"
)

// AllRules lists every builtin rule id with its default severity, in a
// stable order used to build the default configuration.
func AllRules() []types.RuleConfig {
	return []types.RuleConfig{
		{ID: RuleNoCJK, Level: types.RuleLevelError},
		{ID: RuleIdentifierFormat, Level: types.RuleLevelError},
		{ID: RuleIdentifierWordLimit, Level: types.RuleLevelError},
		{ID: RuleObjectPrefix, Level: types.RuleLevelError},
		{ID: RuleNoStagingPrefix, Level: types.RuleLevelError},
		{ID: RuleTableComment, Level: types.RuleLevelError},
		{ID: RuleColumnComment, Level: types.RuleLevelError},
		{ID: RuleHistoryDateColumn, Level: types.RuleLevelError},
		{ID: RuleDeleteRequireWhere, Level: types.RuleLevelError},
		{ID: RuleNoImplicitCrossJoin, Level: types.RuleLevelError},
		{ID: RuleJoinRequirePredicate, Level: types.RuleLevelError},
		{ID: RuleUppercase, Level: types.RuleLevelWarning},
		{ID: RuleViewNestingLimit, Level: types.RuleLevelError},
		{ID: RuleFunctionCallNesting, Level: types.RuleLevelError},
		{ID: RuleFunctionMaxLength, Level: types.RuleLevelError},
		{ID: RuleEqualSignSpacing, Level: types.RuleLevelWarning},
		{ID: RuleProcedureNoTruncate, Level: types.RuleLevelError},
		{ID: RuleDMLRequireComment, Level: types.RuleLevelError},
		{ID: RuleNoTrigger, Level: types.RuleLevelError},
	}
}

// Detector is one independent rule check. Detectors are pure: they read the
// context and return zero or more issues, never mutating shared state.
type Detector interface {
	// Name returns the detector's unique name.
	Name() string
	// Check scans the context and returns raw issue events with absolute
	// offsets into the original source.
	Check(ctx *Context) []*types.Issue
}

var (
	registryMu sync.RWMutex
	registry   []Detector
	registered = make(map[string]bool)
)

// Register makes a detector available to the analysis pipeline. Detectors
// run in registration order, which the report must reproduce
// deterministically. If Register is called twice with the same name or if
// the detector is nil, it panics.
func Register(d Detector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if d == nil {
		panic("detect: Register detector is nil")
	}
	if registered[d.Name()] {
		panic(fmt.Sprintf("detect: Register called twice for detector %s", d.Name()))
	}
	registered[d.Name()] = true
	registry = append(registry, d)
}

// Detectors returns the registered detectors in registration order.
func Detectors() []Detector {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Detector, len(registry))
	copy(out, registry)
	return out
}
