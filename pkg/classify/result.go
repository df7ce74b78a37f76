package classify

import (
	"github.com/mpn-kit/mpn-go/pkg/capability"
	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/provider"
)

// Result is the classification of one part number. Results are values;
// the engine never mutates a returned Result.
type Result struct {
	MPN          string
	Normalized   string
	Type         component.Type
	Base         component.Type
	Owner        string
	Series       string
	Package      string
	Capabilities []capability.Attribute
}

// Part returns the view of r passed to provider replacers.
func (r Result) Part() provider.Part {
	return provider.Part{
		MPN:    r.Normalized,
		Owner:  r.Owner,
		Type:   r.Type,
		Series: r.Series,
	}
}

// Clone returns a copy of r that shares no slices with it.
func (r Result) Clone() Result {
	r.Capabilities = capability.Clone(r.Capabilities)
	return r
}

// Claim is one provider's accepted claim on a part number.
type Claim struct {
	Owner    string
	Type     component.Type
	Priority int
	Depth    int
}

// Classifier classifies part numbers.
type Classifier interface {
	// Classify returns the result for mpn, or false if no provider claims it.
	Classify(mpn string) (Result, bool)

	// Provider returns the provider registered under id.
	Provider(id string) (provider.Provider, bool)
}
