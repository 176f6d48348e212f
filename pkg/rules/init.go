// Package rules contains the builtin rule detectors. Each detector is an
// independent, pure check over the analysis context; they are registered in
// a canonical order that the final report reproduces deterministically.
package rules

import "github.com/nsxbet/sql-analyzer/pkg/detect"

// init registers the builtin detectors in pipeline order. Issue aggregation
// depends on this order, so it must stay stable.
func init() {
	detect.Register(&NoCJKDetector{})
	detect.Register(&ObjectNamingDetector{})
	detect.Register(&TableDefinitionDetector{})
	detect.Register(&DeleteRequireWhereDetector{})
	detect.Register(&JoinSafetyDetector{})
	detect.Register(&UppercaseDetector{})
	detect.Register(&ViewNestingDetector{})
	detect.Register(&FunctionRulesDetector{})
	detect.Register(&ProcedureRulesDetector{})
	detect.Register(&DMLCommentDetector{})
	detect.Register(&TriggerDetector{})
}
