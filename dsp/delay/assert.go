//go:build !dspdebug

package delay

func checkOffset(offset, n int) int {
	if offset < MinOffset {
		return MinOffset
	}

	if offset > n-1 {
		return n - 1
	}

	return offset
}

func checkCursor(int, int) {}
