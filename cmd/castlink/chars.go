package main

import (
	"fortio.org/safecast"

	"castlink/internal/cast"
)

// charString renders a char conversion result as the string generated code
// would build from it.
func charString(code int64) string {
	c, err := safecast.Conv[uint16](code)
	if err != nil {
		return ""
	}
	return cast.CharToString(c)
}
