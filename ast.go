package dice

// Kind discriminates the variant an AST Node represents. Rather than model
// the grammar's node types as a family of structs behind an interface, the
// whole tree uses a single tagged struct (see DESIGN.md) — the Go analogue
// of the original C implementation's DiceAST base header with a type tag,
// matched structurally at each site instead of via a v-table.
type Kind uint8

// Node variants, matching spec.md's data model table.
const (
	KindLiteral Kind = iota
	KindMath
	KindRoll
	KindGroup
	KindReroll
	KindExplode
	KindKeep
	KindSuccess
	KindCompare
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindMath:
		return "math"
	case KindRoll:
		return "roll"
	case KindGroup:
		return "group"
	case KindReroll:
		return "reroll"
	case KindExplode:
		return "explode"
	case KindKeep:
		return "keep"
	case KindSuccess:
		return "success"
	case KindCompare:
		return "compare"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// MathOp is the operator of a Math node.
type MathOp uint8

// Math operators.
const (
	OpAdd MathOp = iota
	OpSub
	OpMul
	OpDiv
)

func (o MathOp) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// RollKind is the die family a Roll node draws from.
type RollKind uint8

// Roll kinds.
const (
	RollNormal RollKind = iota
	RollFate
)

// ExplodeMode is the chaining behavior of an Explode node.
type ExplodeMode uint8

// Explode modes.
const (
	ExplodeStandard ExplodeMode = iota
	ExplodeCompound
	ExplodePenetrate
)

// KeepMode is the slice-selection behavior of a Keep node.
type KeepMode uint8

// Keep modes.
const (
	KeepHigh KeepMode = iota
	KeepLow
	DropHigh
	DropLow
)

// CompareOp is the operator a Compare node applies to a candidate face.
type CompareOp uint8

// Comparison operators.
const (
	CompareEQ CompareOp = iota
	CompareLT
	CompareGT
)

func (c CompareOp) String() string {
	switch c {
	case CompareEQ:
		return "="
	case CompareLT:
		return "<"
	case CompareGT:
		return ">"
	default:
		return "?"
	}
}

// Node is a single AST node. Its meaning is entirely determined by Kind;
// the remaining fields are a union of every variant's data, each occupied
// only for the Kinds that document them below. Value holds the node's
// evaluated result once Evaluate has visited it (or, for Literal, since
// construction).
type Node struct {
	Kind  Kind
	Value float64

	// Math: Op, Left, Right.
	Op          MathOp
	Left, Right *Node

	// Roll: RollKind, Num (count subexpr), Sides (size subexpr, Normal
	// only), Faces (owned, possibly explosion-grown draws).
	// Group reuses Num for its count subexpression.
	RollKind RollKind
	Num      *Node
	Sides    *Node
	Faces    []float64

	// Group: Exprs (the k subexpressions repeated each rep), Values
	// (length Num*len(Exprs), one sum per (rep, expr) pair).
	Exprs  []*Node
	Values []float64

	// Reroll: Once, Cmp (comparison), Inner (must be a Roll).
	// Explode: ExplodeMode, Cmp (optional comparison), Inner.
	Once        bool
	ExplodeMode ExplodeMode
	Cmp         *Node
	Inner       *Node

	// Keep: KeepMode, Amount (count subexpr), Inner. KeepStart/KeepLen are
	// filled in during evaluation once the underlying values are sorted.
	KeepMode           KeepMode
	Amount             *Node
	KeepStart, KeepLen int

	// Success: SuccessCmp, FailCmp (optional), Inner.
	SuccessCmp *Node
	FailCmp    *Node

	// Compare: CompareOp, RHS (the right-hand subexpression).
	CompareOp CompareOp
	RHS       *Node
}

// newLiteral creates a Literal node. Its value is fixed at construction and
// never touched by the evaluator.
func newLiteral(n float64) *Node {
	return &Node{Kind: KindLiteral, Value: n}
}

// newNull creates the parse-time sentinel for "modifier absent". It must
// never survive to the evaluator; the Extras bundle discards it.
func newNull() *Node {
	return &Node{Kind: KindNull}
}

func newMath(op MathOp, left, right *Node) *Node {
	return &Node{Kind: KindMath, Op: op, Left: left, Right: right}
}

func newCompare(op CompareOp, rhs *Node) *Node {
	return &Node{Kind: KindCompare, CompareOp: op, RHS: rhs}
}

func newRoll(kind RollKind, num, sides *Node) *Node {
	return &Node{Kind: KindRoll, RollKind: kind, Num: num, Sides: sides}
}

func newGroup(num *Node, exprs []*Node) *Node {
	return &Node{Kind: KindGroup, Num: num, Exprs: exprs}
}

func newReroll(once bool, cmp *Node) *Node {
	return &Node{Kind: KindReroll, Once: once, Cmp: cmp}
}

func newExplode(mode ExplodeMode, cmp *Node) *Node {
	return &Node{Kind: KindExplode, ExplodeMode: mode, Cmp: cmp}
}

func newKeep(mode KeepMode, amount *Node) *Node {
	return &Node{Kind: KindKeep, KeepMode: mode, Amount: amount}
}

func newSuccess(succ, fail *Node) *Node {
	return &Node{Kind: KindSuccess, SuccessCmp: succ, FailCmp: fail}
}

// extras bundles the four optional post-fix modifiers the parser collects
// (it accepts them only in the written order reroll, explode, keep,
// success); wrapExtras/wrapGroupExtras then apply them around a roll in the
// canonical order reroll -> explode -> keep -> success, innermost to
// outermost. This
// mirrors the original C implementation's DiceExtras struct and the
// dice_basic_node/dice_fate_node constructors that consume it.
type extras struct {
	reroll  *Node
	explode *Node
	keep    *Node
	success *Node
}

// wrapExtras wraps a basic (non-grouped) roll with its collected modifiers
// in canonical order. The extras bundle is consumed once; after this call
// its fields are no longer referenced by anything.
func wrapExtras(roll *Node, ex *extras) *Node {
	ret := roll
	if ex.reroll != nil {
		ex.reroll.Inner = ret
		ret = ex.reroll
	}
	if ex.explode != nil {
		ex.explode.Inner = ret
		ret = ex.explode
	}
	if ex.keep != nil {
		ex.keep.Inner = ret
		ret = ex.keep
	}
	if ex.success != nil {
		ex.success.Inner = ret
		ret = ex.success
	}
	return ret
}

// wrapGroupExtras is wrapExtras restricted to the two modifiers admissible
// on a grouped roll: keep and success.
func wrapGroupExtras(group *Node, ex *extras) *Node {
	ret := group
	if ex.keep != nil {
		ex.keep.Inner = ret
		ret = ex.keep
	}
	if ex.success != nil {
		ex.success.Inner = ret
		ret = ex.success
	}
	return ret
}

// findRoll implements the roll-finding rule: descend through Reroll,
// Explode, and Success (each has a unique child); at a Keep, Group, or Roll
// stop and return it. At a Math node, descend into both sides; if exactly
// one side contains a roll, return it, and if both do the search fails
// (returns nil) since the modifier above would be ambiguous about which
// side it applies to. Any other node kind fails the search.
func findRoll(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindReroll, KindExplode, KindSuccess:
		return findRoll(n.Inner)
	case KindKeep, KindGroup, KindRoll:
		return n
	case KindMath:
		left := findRoll(n.Left)
		right := findRoll(n.Right)
		switch {
		case left != nil && right == nil:
			return left
		case right != nil && left == nil:
			return right
		default:
			return nil
		}
	default:
		return nil
	}
}

// validRoot reports whether k is a Kind that may legally be the root of a
// fully evaluated AST, i.e. something an accessor may be called on. It
// exists to catch misuse of a freed or foreign handle rather than to reject
// anything the parser itself could ever produce as a root.
func validRoot(k Kind) bool {
	switch k {
	case KindExplode, KindGroup, KindKeep, KindLiteral, KindMath, KindReroll, KindRoll, KindSuccess:
		return true
	default:
		return false
	}
}
