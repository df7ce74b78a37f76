// Package resolve decides whether a candidate part may replace a required
// part.
//
// The decision runs in stages and stops at the first failing stage:
//
//	input       blank part numbers never match
//	classify    both parts must classify
//	identity    identical classified part numbers always match
//	override    provider cross-references decide outright when they apply
//	owner       parts of different owners never match otherwise
//	series      the candidate series must be equal or ranked at least as high
//	capability  every required attribute must be dominated by the candidate
//
// The relation is not symmetric. Within one ranked series family it is
// transitive.
package resolve
