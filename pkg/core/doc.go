// Package core defines the shared language of the interpreter.
//
// This package contains:
//   - The runtime value model (Value, List, Builtin, Closure)
//   - Environments: chains of persistent binding frames
//   - Error kinds shared by the parser, evaluator and builtins
//   - The printer (Repr, Display) and value predicates (Truthy, Equal)
//
// Expressions and values share one representation: an unevaluated
// program is a tree of Values, and quoting is what keeps a List from
// being reduced.
//
// The Golden Rule: pkg/core imports ONLY pkg/symbol, the persistent map
// library and stdlib. All other packages depend on core, not the reverse.
package core
