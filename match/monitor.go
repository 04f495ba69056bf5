package match

import "github.com/poiesic/jobmatch/core"

// MatchMonitor provides hooks to observe the scoring pipeline.
// Implement this interface to track intermediate signals and degradations
// during a match request. The degraded argument is nil when the channel
// produced a real signal, otherwise it carries the degradation reason.
type MatchMonitor interface {
	Start(query string)
	AfterLexicalScoring(similarities []float64, degraded error)
	AfterSemanticScoring(similarities []float64, degraded error)
	AfterFusion(normalized []float64)
	AfterRoleSuggestion(suggestion core.RoleSuggestion)
	Finish(report *core.MatchReport)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                 {}
func (n *noopMonitor) AfterLexicalScoring(_ []float64, _ error)       {}
func (n *noopMonitor) AfterSemanticScoring(_ []float64, _ error)      {}
func (n *noopMonitor) AfterFusion(_ []float64)                        {}
func (n *noopMonitor) AfterRoleSuggestion(_ core.RoleSuggestion)      {}
func (n *noopMonitor) Finish(_ *core.MatchReport)                     {}
