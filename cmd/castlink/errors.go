package main

import (
	"errors"
	"fmt"
)

var errChecksFailed = errors.New("probe checks failed")

func errInvalidColorMode(mode string) error {
	return fmt.Errorf("invalid color mode %q (expected: auto|on|off)", mode)
}
