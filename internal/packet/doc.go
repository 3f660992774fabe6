// Package packet defines the recursive integer-or-list value produced by the
// parser, its total ordering and its canonical text form.
//
// Two ownership strategies are provided and behave identically:
//
//   - Value: every list owns a Go slice of child Values (heap strategy).
//   - Arena: nodes live in one index-addressed store and lists reference a
//     range of a shared child-index pool. The whole batch is released at once
//     with Reset or Release.
//
// Ordering rules (Compare):
//
//   - int vs int: numeric.
//   - list vs list: element-wise; the first difference decides, otherwise the
//     shorter list is smaller.
//   - int vs list: the int is treated as a one-element list.
//
// Compare returns 0 for order-equivalent values such as 1 and [1]; use Equal
// for structural equality.
package packet
