// Package mython implements an interpreter for Mython, a small
// Python-flavoured language with significant indentation. It supports:
//   - Integer, string, boolean, and None values.
//   - Variables, assignment, and `print` statements.
//   - Arithmetic (+, -, *, /) and comparisons (==, !=, <, >, <=, >=).
//   - Logical operators (and/or/not) with short-circuit evaluation.
//   - `if`/`else` with two-space indented blocks.
//   - Classes with single inheritance, fields created on first
//     assignment, and dunder methods (__init__, __str__, __eq__,
//     __lt__, __add__) invoked by the corresponding operators.
//   - `str(expr)` for stringification.
//
// Comments beginning with `#` run to end of line. Programs are compiled
// with Engine.Compile and executed against a scope and an output
// context; lexical and runtime failures abort execution with a typed
// error.
package mython
