// Package engine is the caller-facing facade over a built catalog.
//
// An Engine classifies part numbers, extracts their series and package,
// decides and explains replacements and ranks substitute candidates. Every
// call emits one trace.Event to the configured tracer.
//
//	cat, _ := catalog.Default()
//	eng, _ := engine.New(cat, engine.DefaultConfig())
//	ok, err := eng.IsReplacement("QCC3034", "QCC3056")
//
// An Engine is immutable after New and safe for concurrent use.
package engine
