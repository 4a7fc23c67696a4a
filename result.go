package dice

import "sort"

// total returns the root's evaluated value.
func total(root *Node) (float64, error) {
	if !validRoot(root.Kind) {
		return 0, ErrInvalidNode
	}
	return root.Value, nil
}

// keptResults locates a reportable roll via the roll-finding rule and
// returns its kept faces, sorted ascending: the Roll/Group's whole array,
// or a Keep's slice of it.
func keptResults(root *Node) ([]float64, error) {
	if !validRoot(root.Kind) {
		return nil, ErrInvalidNode
	}
	target := findRoll(root)
	if target == nil {
		return nil, ErrNoDice
	}
	var out []float64
	switch target.Kind {
	case KindKeep:
		base := valuesOf(findRoll(target.Inner))
		if base == nil {
			return nil, ErrNoDice
		}
		out = append(out, base[target.KeepStart:target.KeepStart+target.KeepLen]...)
	case KindRoll, KindGroup:
		out = append(out, valuesOf(target)...)
	default:
		return nil, ErrNoDice
	}
	sort.Float64s(out)
	return out, nil
}

// rawResults is keptResults, except that a located Keep is pierced through
// to the Roll/Group beneath it, so dropped faces are included too.
func rawResults(root *Node) ([]float64, error) {
	if !validRoot(root.Kind) {
		return nil, ErrInvalidNode
	}
	target := findRoll(root)
	if target == nil {
		return nil, ErrNoDice
	}
	if target.Kind == KindKeep {
		target = findRoll(target.Inner)
		if target == nil {
			return nil, ErrNoDice
		}
	}
	values := valuesOf(target)
	if values == nil {
		return nil, ErrNoDice
	}
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out, nil
}

// free tears the tree down in post-order. There's nothing to release in Go
// beyond letting the garbage collector reclaim it, but the traversal still
// runs so the root's Kind can be overwritten with KindNull as a best-effort
// double-free guard for any caller still holding a raw *Node instead of
// going through Handle.
func free(root *Node) {
	freeChildren(root)
	root.Kind = KindNull
}

func freeChildren(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindMath:
		freeChildren(n.Left)
		freeChildren(n.Right)
	case KindCompare:
		freeChildren(n.RHS)
	case KindRoll:
		freeChildren(n.Num)
		freeChildren(n.Sides)
	case KindGroup:
		freeChildren(n.Num)
		for _, e := range n.Exprs {
			freeChildren(e)
		}
	case KindReroll:
		freeChildren(n.Cmp)
		freeChildren(n.Inner)
	case KindExplode:
		freeChildren(n.Cmp)
		freeChildren(n.Inner)
	case KindKeep:
		freeChildren(n.Amount)
		freeChildren(n.Inner)
	case KindSuccess:
		freeChildren(n.SuccessCmp)
		freeChildren(n.FailCmp)
		freeChildren(n.Inner)
	}
}
