// Package pattern stores the matching rules vendor catalogs contribute and
// answers "does this part number look like type T" queries.
//
// Rules are keyed by (owner, type). Queries come in two forms:
//
//   - [Registry.MatchAny] checks every owner's rules. Use it only for broad
//     "does this exist anywhere" questions.
//   - [Registry.MatchForOwner] and [Registry.FirstMatch] only consult rules
//     registered by one owner. Classification decisions use these so that a
//     generic pattern of one vendor (for example a bare ^U[0-9]+) never
//     claims another vendor's parts.
//
// Within an owner, rules are evaluated in registration order and evaluation
// stops at the first match, so catalogs list their most specific patterns
// first.
//
// Matching is case-insensitive: expressions are compiled with the (?i) flag
// and part numbers are normalized with [Normalize] before matching.
package pattern
