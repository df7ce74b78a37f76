// Package provider defines the rule provider abstraction: the unit that
// claims part numbers for one owner (typically a manufacturer) and knows how
// to extract series, package and capability attributes from them.
//
// Most providers are instances of Table, configured from catalog data. A
// provider may additionally implement Replacer to publish explicit
// cross-reference decisions that bypass the generic substitution check.
package provider
