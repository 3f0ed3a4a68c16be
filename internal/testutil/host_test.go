package testutil

import "testing"

type ringStub struct {
	cursor int
	stored []int32
}

func (r *ringStub) Cursor() int { return r.cursor }

func (r *ringStub) Write(s int32) {
	r.stored = append(r.stored, s)
	r.cursor++
}

type addCursor struct{}

func (addCursor) Process(s int32, cursor int) int32 { return s + int32(cursor) }

func TestDrive(t *testing.T) {
	in := []int32{10, 20, 30}

	h := &ringStub{}
	out := Drive(addCursor{}, h, in, true)
	want := []int32{10, 21, 32}
	for i := range want {
		if out[i] != want[i] || h.stored[i] != want[i] {
			t.Fatalf("tick %d: out %d stored %d, want %d", i, out[i], h.stored[i], want[i])
		}
	}

	h = &ringStub{}
	Drive(addCursor{}, h, in, false)
	for i := range in {
		if h.stored[i] != in[i] {
			t.Fatalf("tick %d: stored %d, want input %d", i, h.stored[i], in[i])
		}
	}
}
