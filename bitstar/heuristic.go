package bitstar

// edgeKey is the integrated queue's sort key for a candidate edge: the
// admissible f-through-edge estimate (primary) and the admissible
// g-estimate at the target through that edge (tie-breaker), per spec.md
// §4.2/§4.4.
type edgeKey struct {
	primary   Cost
	secondary Cost
}

// less reports whether k sorts strictly before other (lower is better on
// both fields, lexicographically).
func (k edgeKey) less(other edgeKey, obj Objective) bool {
	if obj.BetterThan(k.primary, other.primary) {
		return true
	}
	if obj.BetterThan(other.primary, k.primary) {
		return false
	}
	return obj.BetterThan(k.secondary, other.secondary)
}

// heuristicOracle (C2) computes admissible bounds from the Objective and a
// fixed start/goal pair, cached locally per spec.md §9's design note
// ("no per-call dispatch in hot loops").
type heuristicOracle struct {
	obj   Objective
	start *Vertex
	goal  *Vertex
}

func newHeuristicOracle(obj Objective, start, goal *Vertex) *heuristicOracle {
	return &heuristicOracle{obj: obj, start: start, goal: goal}
}

// GHat returns g_hat(v), the admissible cost-to-come bound.
func (h *heuristicOracle) GHat(v *Vertex) Cost {
	return h.obj.MotionCostHeuristic(h.start.State, v.State)
}

// HHatV returns h_hat(v), the admissible cost-to-go bound.
func (h *heuristicOracle) HHatV(v *Vertex) Cost {
	return h.obj.MotionCostHeuristic(v.State, h.goal.State)
}

// CHat returns c_hat(u,v), the admissible edge-cost bound.
func (h *heuristicOracle) CHat(u, v *Vertex) Cost {
	return h.obj.MotionCostHeuristic(u.State, v.State)
}

// FHat returns f_hat(v) = g_hat(v) + h_hat(v), combined through the
// objective's algebra.
func (h *heuristicOracle) FHat(v *Vertex) Cost {
	return h.obj.Combine(h.GHat(v), h.HHatV(v))
}

// GT returns g_t(v), the vertex's current tree cost (InfCost if
// disconnected).
func (h *heuristicOracle) GT(v *Vertex) Cost {
	return v.CostToCome()
}

// CurrentHeuristicVertex is the vertex-queue sort key: combine(g_t(v),
// h_hat(v)).
func (h *heuristicOracle) CurrentHeuristicVertex(v *Vertex) Cost {
	return h.obj.Combine(h.GT(v), h.HHatV(v))
}

// CurrentHeuristicEdge is the edge-queue sort key's primary field: the
// admissible f-value of the solution were (u,v) taken next.
func (h *heuristicOracle) CurrentHeuristicEdge(u, v *Vertex) Cost {
	return h.obj.Combine(h.GT(u), h.CHat(u, v), h.HHatV(v))
}

// CurrentHeuristicEdgeTarget is the edge-queue sort key's tie-break field:
// the admissible g-estimate at v were (u,v) taken next.
func (h *heuristicOracle) CurrentHeuristicEdgeTarget(u, v *Vertex) Cost {
	return h.obj.Combine(h.GT(u), h.CHat(u, v))
}

// EdgeKey bundles CurrentHeuristicEdge/CurrentHeuristicEdgeTarget into the
// queue's sort key.
func (h *heuristicOracle) EdgeKey(u, v *Vertex) edgeKey {
	return edgeKey{primary: h.CurrentHeuristicEdge(u, v), secondary: h.CurrentHeuristicEdgeTarget(u, v)}
}
