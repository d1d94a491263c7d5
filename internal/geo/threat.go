package geo

import "context"

// Threat carries heuristic risk signals attached to a resolved address.
type Threat struct {
	Suspicious bool     `json:"suspicious"`
	Indicators []string `json:"indicators,omitempty"`
}

// ThreatChecker evaluates an address for risk signals. Implementations
// must be cheap and must not fail; a checker that cannot decide returns
// a zero Threat.
type ThreatChecker interface {
	Check(ctx context.Context, addr string, info Info) Threat
}

// heuristicChecker derives threat signals from the provider response
// itself. Proxy and hosting flags are the only signals available without
// a dedicated reputation feed; swap in a real ThreatChecker to extend.
type heuristicChecker struct{}

// NewHeuristicChecker returns the default checker built on provider
// proxy and hosting flags.
func NewHeuristicChecker() ThreatChecker { return heuristicChecker{} }

func (heuristicChecker) Check(_ context.Context, _ string, info Info) Threat {
	var indicators []string
	if info.Proxy {
		indicators = append(indicators, "proxy")
	}
	if info.Hosting {
		indicators = append(indicators, "hosting")
	}
	return Threat{
		Suspicious: len(indicators) > 0,
		Indicators: indicators,
	}
}
