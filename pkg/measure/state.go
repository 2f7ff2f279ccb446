// Package measure drives the adaptive measurement loop: it re-runs a
// built artifact until its timing settles, gates every sample on the
// workload's expected result, and hands the ordered sample set to the
// aggregation stage.
package measure

import (
	"fmt"
)

// Phase is the measurement loop's explicit state. Keeping the loop as
// a validated state machine makes the stopping rule and its edge cases
// testable without running any subprocess.
type Phase int

const (
	PhaseWarmingUp Phase = iota
	PhaseMeasuring
	PhaseStable
	PhaseExhausted
	PhaseDone
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmingUp:
		return "warming-up"
	case PhaseMeasuring:
		return "measuring"
	case PhaseStable:
		return "stable"
	case PhaseExhausted:
		return "exhausted"
	case PhaseDone:
		return "done"
	case PhaseAborted:
		return "aborted"
	default:
		return "invalid"
	}
}

func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseAborted
}

func isAllowedPhaseTransition(from, to Phase) bool {
	switch from {
	case PhaseWarmingUp:
		return to == PhaseMeasuring || to == PhaseAborted
	case PhaseMeasuring:
		return to == PhaseStable || to == PhaseExhausted || to == PhaseAborted
	case PhaseStable, PhaseExhausted:
		return to == PhaseDone || to == PhaseAborted
	default:
		return false
	}
}

// machine tracks the current phase and rejects transitions the loop
// must never take.
type machine struct {
	phase Phase
}

func newMachine() *machine {
	return &machine{phase: PhaseWarmingUp}
}

func (m *machine) to(next Phase) error {
	if !isAllowedPhaseTransition(m.phase, next) {
		return fmt.Errorf("illegal measurement transition %s -> %s", m.phase, next)
	}

	m.phase = next
	return nil
}
