package fcurve

// NameSelector reports which named sub-objects (such as bones) are
// selected within a scope (such as an armature).
type NameSelector interface {
	SelectedNames(scope string) map[string]bool
}

// WithScope calls body with the curves of set for which keep returns true.
// The curves are not modified, so other evaluations of set running before
// or after body are unaffected.
func WithScope(set []*Curve, keep func(*Curve) bool, body func(scoped []*Curve)) {
	scoped := make([]*Curve, 0, len(set))
	for _, c := range set {
		if c != nil && keep(c) {
			scoped = append(scoped, c)
		}
	}
	body(scoped)
}

// InSelectedGroups returns a predicate for [WithScope] that keeps curves
// whose group is selected in scope, as well as curves without a group.
// The selection is read once, when InSelectedGroups is called.
func InSelectedGroups(sel NameSelector, scope string) func(*Curve) bool {
	names := sel.SelectedNames(scope)
	return func(c *Curve) bool {
		return c.Group == "" || names[c.Group]
	}
}

// EvaluateAll evaluates every curve of set at time t and returns the
// values in order.
func (e *Evaluator) EvaluateAll(set []*Curve, t float64) []float64 {
	values := make([]float64, len(set))
	for i, c := range set {
		values[i] = e.Evaluate(c, t)
	}
	return values
}
