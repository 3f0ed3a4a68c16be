//go:build dspdebug

package delay

import "fmt"

func checkOffset(offset, n int) int {
	if offset < MinOffset || offset > n-1 {
		panic(fmt.Sprintf("delay: read offset %d outside [%d, %d]", offset, MinOffset, n-1))
	}

	return offset
}

func checkCursor(cursor, n int) {
	if cursor < 0 || cursor >= n {
		panic(fmt.Sprintf("delay: cursor %d outside [0, %d)", cursor, n))
	}
}
