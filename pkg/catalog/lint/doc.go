// Package lint checks vendor catalogs for problems that Build either
// rejects with a single error or accepts silently: claims for undeclared
// types, attributes whose kind differs between vendors, duplicate rules,
// ambiguous series families and providers that can never classify a part.
//
// Rules are registered in a RuleRegistry, can be disabled individually and
// have their severity overridden:
//
//	reg := lint.NewDefaultRegistry()
//	reg.Disable("CAT-006")
//	for _, v := range reg.RunRules(vendors) {
//		fmt.Println(v)
//	}
package lint
