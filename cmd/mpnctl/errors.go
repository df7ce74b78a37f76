package main

import (
	"errors"

	"github.com/mpn-kit/mpn-go/pkg/engine"
)

var (
	errUnclassified   = errors.New("some part numbers were not classified")
	errNotReplaceable = errors.New("not a replacement")
)

func isNotFound(err error) bool {
	return errors.Is(err, engine.ErrNotFound)
}
