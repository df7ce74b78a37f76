// Package component defines the component-type taxonomy used when
// classifying manufacturer part numbers.
//
// # Base Types and Refinements
//
// Every [Type] is either a base category (IC, CAPACITOR, CONNECTOR, ...) or a
// refinement of exactly one parent type. Refinements may themselves be
// refined, forming a chain that always ends at a base type:
//
//	TI_LITTLE_LOGIC -> LOGIC_IC -> IC
//
// A part classified as a refinement is also classified as every ancestor of
// that refinement. Use [Taxonomy.Is] for that check and [Taxonomy.Base] to
// obtain the root category.
//
// # Building
//
// A [Taxonomy] is assembled once with a [Builder] (which starts from the
// built-in types) and is read-only afterwards. Vendor catalogs contribute
// their own refinements at build time.
package component
