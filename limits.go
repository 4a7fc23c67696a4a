package dice

// Limits on expression evaluation, exported as vars (not untyped constants)
// so an embedder can raise or lower them at runtime.
var (
	// MaxSides is the largest number of sides a single die may have.
	MaxSides = 10000

	// MaxDice is the most dice a single expression may cumulatively roll,
	// counting every initial draw, reroll, and explosion.
	MaxDice = 100

	// MaxRecursionDepth is the deepest the evaluator will recurse into the
	// AST before aborting with ErrMaxRecurse.
	MaxRecursionDepth = 20
)
