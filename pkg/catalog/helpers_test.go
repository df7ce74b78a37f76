package catalog

import (
	"github.com/mpn-kit/mpn-go/pkg/pattern"
	"github.com/mpn-kit/mpn-go/pkg/provider"
)

func partOf(mpn, owner string) provider.Part {
	return provider.Part{MPN: pattern.Normalize(mpn), Owner: owner}
}
