package lattice

import (
	"fmt"
	"math"
	"strings"
)

// KB is the Boltzmann constant in lattice units.
const KB = 1.0

// OnsagerTc is the exact critical temperature of the square-lattice Ising
// model at H=0 and J=1.
const OnsagerTc = 2.269185314213022

// Tcrit returns the critical temperature for coupling j.
func Tcrit(j float64) float64 { return j * OnsagerTc }

// Rule selects the single-flip acceptance probability.
type Rule int

const (
	// Metropolis accepts with min(1, exp(-dE/kT)).
	Metropolis Rule = iota
	// Glauber (heat bath) accepts with exp(-dE/kT) / (1 + exp(-dE/kT)).
	Glauber
)

func (r Rule) String() string {
	switch r {
	case Metropolis:
		return "metropolis"
	case Glauber:
		return "glauber"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParseRule maps a rule name to a Rule.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "metropolis":
		return Metropolis, nil
	case "glauber", "heatbath", "heat_bath":
		return Glauber, nil
	default:
		return 0, fmt.Errorf("unknown acceptance rule: %s", name)
	}
}

// Probability returns the acceptance probability of a move costing dE at
// temperature t. The result is always in [0, 1].
func (r Rule) Probability(dE, t float64) float64 {
	switch r {
	case Glauber:
		if dE == 0 {
			return 0.5
		}
		// 1/(1+e^x) is x/(1+x) with x = e^-x, without Inf/Inf.
		return clamp(1 / (1 + math.Exp(dE/(KB*t))))
	default:
		if dE <= 0 {
			return 1
		}
		return clamp(math.Min(1, math.Exp(-dE/(KB*t))))
	}
}

func clamp(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
