// Package variantgen holds the runtime support used by code generated by the
// variantgen compiler.
//
// Generated variant types are plain Go structs. They depend on this package
// only for the pieces that would otherwise be duplicated in every generated
// file:
//
//   - Comparer: substitutable equality/hash strategies (Default, IgnoreCase).
//   - Optional: presence-aware values used by partial Map dispatch.
//   - ParseError, UnknownCaseError, NilKeyError, ValidationError: errors and
//     panics raised by generated factories, parsers and operators.
//
// The generator itself lives in compiler/gen. See cmd/variantgen for the CLI.
package variantgen
