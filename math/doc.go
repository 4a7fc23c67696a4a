/*
Package math composes the dice package's expression engine with general
arithmetic. When evaluating an expression with EvaluateExpression, the
package follows order of operations:

	All dice-notation islands are rolled and expanded to their totals,
	Parenthesis (deepest first),
	Functions,
	Multiplication, division, and modulus from left to right,
	Addition and subtraction from left to right

Dice islands are parsed and evaluated by the dice package's own grammar; the
remaining arithmetic template, including the DiceFunctions built-ins, is
evaluated by https://github.com/Knetic/govaluate.

# Benchmarks

The benchmarks for this package use the dice package's default crypto-seeded
source; EvaluateExpressionWithSource lets callers substitute a faster or
deterministic one instead.
*/
package math
