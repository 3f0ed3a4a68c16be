package testutil

// Processor is a per-tick effect reading a shared history.
type Processor interface {
	Process(sample int32, cursor int) int32
}

// HistoryWriter is the host side of a shared history.
type HistoryWriter interface {
	Cursor() int
	Write(sample int32)
}

// Drive runs p over input the way a host does: each tick the effect sees
// the current cursor, then the chosen signal is written into h. With
// writeOutput set the processed sample is stored, otherwise the input.
func Drive(p Processor, h HistoryWriter, input []int32, writeOutput bool) []int32 {
	out := make([]int32, len(input))
	for i, x := range input {
		y := p.Process(x, h.Cursor())
		out[i] = y
		if writeOutput {
			h.Write(y)
		} else {
			h.Write(x)
		}
	}
	return out
}
