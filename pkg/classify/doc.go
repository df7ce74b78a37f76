// Package classify resolves a part number to a single owning provider and
// component type.
//
// Every provider is asked to claim the part. Claims for types the provider
// does not declare are ignored. Among the remaining claims:
//
//  1. higher provider priority wins;
//  2. at equal priority, the more specific type (deeper in the taxonomy) wins;
//  3. otherwise the provider registered first wins.
//
// The winning provider then extracts series, package and capabilities.
package classify
