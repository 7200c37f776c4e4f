package tsalert

// Span is an inclusive range of 0-based rows.
type Span struct {
	Start int
	End   int
}

// EnclosingFunction walks the ancestors of n and returns the row span of the
// nearest one whose kind is in functionKinds. The node itself is not
// considered. ok is false when the root is reached without a match.
func EnclosingFunction(n Node, functionKinds ...string) (span Span, ok bool) {
	if n == nil {
		return Span{}, false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		kind := p.Kind()
		for _, fk := range functionKinds {
			if kind == fk {
				return Span{Start: p.StartPosition().Row, End: p.EndPosition().Row}, true
			}
		}
	}
	return Span{}, false
}

// EnclosingFunction resolves the function scope of n using the unit's grammar.
func (u *SourceUnit) EnclosingFunction(n Node) (Span, bool) {
	return EnclosingFunction(n, u.lang.FunctionKinds()...)
}
