// Package capability models the comparable features of a classified part
// and implements the dominance check used for substitution decisions.
//
// An [Attribute] has one of three kinds:
//
//   - [KindOrdinal]: a monotonic level such as a protocol version. The
//     candidate must be at least the required level.
//   - [KindSet]: a set of named features such as {ANC, HIFI}. The candidate
//     must offer every feature the required part has; extras are fine.
//   - [KindNumeric]: a quantity such as memory density or voltage rating.
//     The candidate must be at least the required value, or exactly equal
//     when the attribute is marked Exact (case size, capacitance).
//
// [Compare] fails closed: a required attribute that the candidate does not
// declare is unmet. Comparing two attributes of the same name but different
// kinds is a configuration error and is reported as [ErrKindMismatch].
package capability
