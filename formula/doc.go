// Package formula parses and evaluates arithmetic expressions over named
// dataset features.
//
// Expressions support the operators + - * / ^ % with the usual precedence,
// unary minus, parentheses, and the functions abs, sqrt, log (natural),
// log2, and log10. Identifiers are feature names; backtick quoting admits
// names with arbitrary characters, e.g. `chr1|12345|A`.
//
// A formula is parsed once into an abstract syntax tree and then evaluated
// per entry against a variable-lookup map. Parsing never executes code;
// evaluation is plain float64 arithmetic with IEEE semantics (division by
// zero yields ±Inf, log of a negative yields NaN).
package formula
