package tsalert

// Locator resolves a position to the identifier token that starts there.
type Locator struct {
	// IdentifierKind is the node kind of a name token in the grammar.
	IdentifierKind string
}

// Locate returns the first identifier, in pre-order starting at the root's
// children, that starts exactly at (line, column) and does not end before
// column. Both coordinates are 0-based.
//
// Column 0 means no column was reported: the first identifier met on the
// target line ends the search without a match. A nil result is the normal
// outcome for positions anchored on punctuation or keywords.
func (l Locator) Locate(root Node, line, column int) Node {
	if root == nil {
		return nil
	}
	found, _ := l.scan(root.Children(), line, column)
	return found
}

// scan visits siblings in source order. Inner nodes are descended before
// moving on; a leaf hands over to its next sibling. The bool result reports
// whether the search is over, with or without a match.
func (l Locator) scan(siblings []Node, line, column int) (Node, bool) {
	for _, n := range siblings {
		start := n.StartPosition()
		if start.Row > line {
			// Everything after this point starts below the target line.
			return nil, true
		}
		if n.EndPosition().Row < line {
			continue
		}

		if n.Kind() == l.IdentifierKind && start.Row == line {
			if column == 0 {
				return nil, true
			}
			if start.Column == column && n.EndPosition().Column >= column {
				return n, true
			}
		}

		children := n.Children()
		if len(children) == 0 {
			continue
		}
		if found, done := l.scan(children, line, column); done {
			return found, true
		}
	}
	return nil, false
}

// Locate finds the identifier at the 0-based (line, column) in the unit.
// It returns nil when the unit has no tree.
func (u *SourceUnit) Locate(line, column int) Node {
	if !u.HasTree() {
		return nil
	}
	return Locator{IdentifierKind: u.lang.IdentifierKind()}.Locate(u.root, line, column)
}
