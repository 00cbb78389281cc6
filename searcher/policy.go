package searcher

import "math"

// uct scores the children of one parent. The c^2*ln(N) term is shared by
// every sibling so it is computed once per selection step.
type uct struct {
	explore float64
}

// newUCT prepares scoring against a parent visited parentVisits times. A
// parent that has never been visited contributes no exploration bonus.
func newUCT(cSquared float64, parentVisits int) uct {
	if parentVisits <= 0 {
		return uct{}
	}
	return uct{explore: cSquared * math.Log(float64(parentVisits))}
}

// evaluate returns value/visits + sqrt(c^2*ln(N)/visits), or +Inf for a
// node that has not been visited yet.
func (u uct) evaluate(value float64, visits int) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	n := float64(visits)
	return value/n + math.Sqrt(u.explore/n)
}
