package dice

import "sort"

// evaluate walks root's AST exactly once, drawing dice from src, applying
// modifiers, and writing results back into the tree. It threads three
// things through the walk: the Source every draw comes from, recursion
// depth (checked on every descent), and cumulative dice drawn (checked
// after each roll's batch of faces, each reroll, and each explosion draw).
// depth is passed by value (incremented per descent); cum is
// shared by pointer across the whole call.
func evaluate(root *Node, src Source) error {
	cum := 0
	return evalNode(root, src, 0, &cum)
}

func evalNode(n *Node, src Source, depth int, cum *int) error {
	if depth > MaxRecursionDepth {
		return ErrMaxRecurse
	}
	switch n.Kind {
	case KindLiteral:
		return nil
	case KindNull:
		// Null is a parse-time sentinel for "modifier absent"; the Extras
		// builder must have already discarded it before evaluation.
		return ErrInternal
	case KindMath:
		return evalMath(n, src, depth, cum)
	case KindCompare:
		if err := evalNode(n.RHS, src, depth+1, cum); err != nil {
			return err
		}
		n.Value = n.RHS.Value
		return nil
	case KindRoll:
		return evalRoll(n, src, depth, cum)
	case KindGroup:
		return evalGroup(n, src, depth, cum)
	case KindReroll:
		return evalReroll(n, src, depth, cum)
	case KindExplode:
		return evalExplode(n, src, depth, cum)
	case KindKeep:
		return evalKeep(n, src, depth, cum)
	case KindSuccess:
		return evalSuccess(n, src, depth, cum)
	default:
		return ErrInternal
	}
}

func evalMath(n *Node, src Source, depth int, cum *int) error {
	if err := evalNode(n.Left, src, depth+1, cum); err != nil {
		return err
	}
	if err := evalNode(n.Right, src, depth+1, cum); err != nil {
		return err
	}
	switch n.Op {
	case OpAdd:
		n.Value = n.Left.Value + n.Right.Value
	case OpSub:
		n.Value = n.Left.Value - n.Right.Value
	case OpMul:
		n.Value = n.Left.Value * n.Right.Value
	case OpDiv:
		if n.Right.Value == 0 {
			return ErrDivZero
		}
		n.Value = n.Left.Value / n.Right.Value
	}
	return nil
}

// chargeDice adds n to the cumulative dice counter and fails once the
// budget is exceeded.
func chargeDice(cum *int, n int) error {
	*cum += n
	if *cum > MaxDice {
		return ErrMaxDice
	}
	return nil
}

// compareMatches is the comparison primitive shared by reroll, explode,
// and success: a face (or aggregate value) against a threshold under one
// of equal/less/greater. Equality is exact.
func compareMatches(v float64, op CompareOp, threshold float64) bool {
	switch op {
	case CompareEQ:
		return v == threshold
	case CompareLT:
		return v < threshold
	case CompareGT:
		return v > threshold
	default:
		return false
	}
}

func evalRoll(n *Node, src Source, depth int, cum *int) error {
	if err := evalNode(n.Num, src, depth+1, cum); err != nil {
		return err
	}
	num := int(n.Num.Value)
	if num < 1 {
		return ErrMinDice
	}
	if n.RollKind == RollNormal {
		if err := evalNode(n.Sides, src, depth+1, cum); err != nil {
			return err
		}
		sides := int(n.Sides.Value)
		if sides < 1 {
			return ErrMinSides
		}
		if sides > MaxSides {
			return ErrMaxSides
		}
		n.Faces = make([]float64, num)
		sum := 0.0
		for i := 0; i < num; i++ {
			f := float64(drawFace(src, sides))
			n.Faces[i] = f
			sum += f
		}
		n.Value = sum
		return chargeDice(cum, num)
	}
	// Fate dice: faces are {-1, 0, +1}, realized as draws in [1,3] shifted
	// down by 2.
	n.Faces = make([]float64, num)
	sum := 0.0
	for i := 0; i < num; i++ {
		f := float64(drawFace(src, 3) - 2)
		n.Faces[i] = f
		sum += f
	}
	n.Value = sum
	return chargeDice(cum, num)
}

func evalGroup(n *Node, src Source, depth int, cum *int) error {
	if err := evalNode(n.Num, src, depth+1, cum); err != nil {
		return err
	}
	num := int(n.Num.Value)
	if num < 1 {
		return ErrMinDice
	}
	groupsize := len(n.Exprs)
	n.Values = make([]float64, num*groupsize)
	sum := 0.0
	for run := 0; run < num; run++ {
		for i, e := range n.Exprs {
			if err := evalNode(e, src, depth+1, cum); err != nil {
				return err
			}
			n.Values[run*groupsize+i] = e.Value
			sum += e.Value
		}
	}
	n.Value = sum
	return nil
}

func evalReroll(n *Node, src Source, depth int, cum *int) error {
	if err := evalNode(n.Inner, src, depth+1, cum); err != nil {
		return err
	}
	if err := evalNode(n.Cmp, src, depth+1, cum); err != nil {
		return err
	}
	roll := n.Inner // invariant: structurally a Roll, never a compound tree
	op, threshold := n.Cmp.CompareOp, n.Cmp.Value
	for compareMatches(roll.Value, op, threshold) {
		if err := redrawRoll(roll, src, cum); err != nil {
			return err
		}
		if n.Once {
			break
		}
	}
	n.Value = roll.Value
	return nil
}

// redrawRoll re-draws every face of roll in place, without touching its
// num/sides subtrees, and recomputes its sum.
func redrawRoll(roll *Node, src Source, cum *int) error {
	num := len(roll.Faces)
	sum := 0.0
	for i := 0; i < num; i++ {
		var f float64
		if roll.RollKind == RollFate {
			f = float64(drawFace(src, 3) - 2)
		} else {
			f = float64(drawFace(src, int(roll.Sides.Value)))
		}
		roll.Faces[i] = f
		sum += f
	}
	roll.Value = sum
	return chargeDice(cum, num)
}

func evalExplode(n *Node, src Source, depth int, cum *int) error {
	if err := evalNode(n.Inner, src, depth+1, cum); err != nil {
		return err
	}
	roll := findRoll(n.Inner)
	if roll == nil || roll.Kind != KindRoll || roll.RollKind != RollNormal {
		return ErrInternal
	}
	sides := int(roll.Sides.Value)
	explicit := n.Cmp != nil
	var op CompareOp
	var threshold float64
	if explicit {
		if err := evalNode(n.Cmp, src, depth+1, cum); err != nil {
			return err
		}
		op, threshold = n.Cmp.CompareOp, n.Cmp.Value
	} else {
		op, threshold = CompareEQ, float64(sides)
	}
	var err error
	switch n.ExplodeMode {
	case ExplodeStandard:
		err = explodeStandard(roll, src, op, threshold, cum)
	case ExplodeCompound:
		err = explodeCompound(roll, src, op, threshold, cum)
	case ExplodePenetrate:
		err = explodePenetrate(roll, src, op, threshold, explicit, sides, cum)
	}
	if err != nil {
		return err
	}
	n.Value = roll.Value
	return nil
}

// explodeStandard scans only the faces present when it was called; newly
// drawn faces are appended but never re-examined, so one seed face chains
// at most one extra draw.
func explodeStandard(roll *Node, src Source, op CompareOp, threshold float64, cum *int) error {
	seed := len(roll.Faces)
	sides := int(roll.Sides.Value)
	for i := 0; i < seed; i++ {
		if compareMatches(roll.Faces[i], op, threshold) {
			f := float64(drawFace(src, sides))
			roll.Faces = append(roll.Faces, f)
			roll.Value += f
			if err := chargeDice(cum, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// explodeCompound folds extra draws into the seed face's own slot, so the
// number of reported faces never changes.
func explodeCompound(roll *Node, src Source, op CompareOp, threshold float64, cum *int) error {
	sides := int(roll.Sides.Value)
	for i := range roll.Faces {
		for compareMatches(roll.Faces[i], op, threshold) {
			f := float64(drawFace(src, sides))
			roll.Faces[i] += f
			roll.Value += f
			if err := chargeDice(cum, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// explodePenetrate is explodeCompound with each extra draw contributing
// (draw-1), and, only when the comparison was left implicit, a one-time
// die downgrade for the first chained draw on a matching face.
func explodePenetrate(roll *Node, src Source, op CompareOp, threshold float64, explicit bool, sides int, cum *int) error {
	for i := range roll.Faces {
		drawSides := sides
		curThreshold := threshold
		first := true
		for compareMatches(roll.Faces[i], op, curThreshold) {
			if first && !explicit {
				drawSides, curThreshold = penetrateDowngrade(sides)
			}
			first = false
			f := float64(drawFace(src, drawSides)) - 1
			roll.Faces[i] += f
			roll.Value += f
			if err := chargeDice(cum, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// penetrateDowngrade implements the d100->d20, d20->d6 escape hatch. Any
// other die size is left unchanged; downgraded dice are never themselves
// downgraded further (the caller only consults this once per chain).
func penetrateDowngrade(sides int) (newSides int, newThreshold float64) {
	switch sides {
	case 100:
		return 20, 20
	case 20:
		return 6, 6
	default:
		return sides, float64(sides)
	}
}

// valuesOf returns the owned values array backing a Roll or Group node.
func valuesOf(n *Node) []float64 {
	switch n.Kind {
	case KindRoll:
		return n.Faces
	case KindGroup:
		return n.Values
	default:
		return nil
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func evalKeep(n *Node, src Source, depth int, cum *int) error {
	if err := evalNode(n.Inner, src, depth+1, cum); err != nil {
		return err
	}
	if err := evalNode(n.Amount, src, depth+1, cum); err != nil {
		return err
	}
	target := findRoll(n.Inner)
	if target == nil {
		return ErrInternal
	}
	values := valuesOf(target)
	if values == nil {
		return ErrInternal
	}
	sort.Float64s(values)
	total := len(values)
	a := int(n.Amount.Value)
	if a < 0 {
		a = 0
	}
	var start, length int
	switch n.KeepMode {
	case KeepLow:
		length = minInt(a, total)
		start = 0
	case KeepHigh:
		length = minInt(a, total)
		start = total - length
	case DropLow:
		length = maxInt(total-a, 1)
		start = total - length
	case DropHigh:
		start = 0
		length = maxInt(total-a, 1)
	}
	if length > total {
		length = total
	}
	if start < 0 {
		start = 0
	}
	n.KeepStart, n.KeepLen = start, length
	sum := 0.0
	for i := start; i < start+length; i++ {
		sum += values[i]
	}
	n.Value = sum
	return nil
}

func evalSuccess(n *Node, src Source, depth int, cum *int) error {
	if err := evalNode(n.Inner, src, depth+1, cum); err != nil {
		return err
	}
	if err := evalNode(n.SuccessCmp, src, depth+1, cum); err != nil {
		return err
	}
	if n.FailCmp != nil {
		if err := evalNode(n.FailCmp, src, depth+1, cum); err != nil {
			return err
		}
	}
	values, err := successValues(n.Inner)
	if err != nil {
		return err
	}
	succOp, succThresh := n.SuccessCmp.CompareOp, n.SuccessCmp.Value
	hasFail := n.FailCmp != nil
	var failOp CompareOp
	var failThresh float64
	if hasFail {
		failOp, failThresh = n.FailCmp.CompareOp, n.FailCmp.Value
	}
	successes, failures := 0, 0
	for _, v := range values {
		switch {
		case compareMatches(v, succOp, succThresh):
			successes++
		case hasFail && compareMatches(v, failOp, failThresh):
			failures++
		}
	}
	n.Value = float64(successes - failures)
	return nil
}

// successValues locates the face set a Success node counts over: a Roll or
// Group's whole array, or a Keep's slice of one.
func successValues(inner *Node) ([]float64, error) {
	target := findRoll(inner)
	if target == nil {
		return nil, ErrInternal
	}
	switch target.Kind {
	case KindKeep:
		base := valuesOf(findRoll(target.Inner))
		if base == nil {
			return nil, ErrInternal
		}
		return base[target.KeepStart : target.KeepStart+target.KeepLen], nil
	case KindRoll, KindGroup:
		return valuesOf(target), nil
	default:
		return nil, ErrInternal
	}
}
