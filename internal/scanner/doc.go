// Package scanner locates the end of a parenthesized, bracketed, braced, or
// angle-bracketed expression in already-elided C++ source lines.
//
// It is a line-oriented delimiter matcher, not a parser. The `<` / `>` pair
// is genuinely ambiguous without full parsing (template argument list versus
// comparison or shift operator), so `<` is pushed tentatively and collapsed
// again when later characters rule a template list out. Wrong guesses cost a
// missed or spurious advisory finding, never a crash.
//
// ScanLine advances through one line; CloseExpression drives it across line
// boundaries until the initial delimiter closes or the file ends.
package scanner
