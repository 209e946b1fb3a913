package ringbuf

import (
	"reflect"
	"testing"
)

func TestRing_KeepsOrderUntilFull(t *testing.T) {
	r := New[uint64](3)

	for _, v := range []uint64{42, 7} {
		if _, evicted := r.Push(v); evicted {
			t.Fatalf("push %d evicted a value from a ring with room", v)
		}
	}

	if got, want := r.Items(), []uint64{42, 7}; !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	if r.Len() != 2 || r.Cap() != 3 {
		t.Fatalf("len=%d cap=%d, want 2 and 3", r.Len(), r.Cap())
	}
}

func TestRing_OverwritesOldest(t *testing.T) {
	r := New[uint64](3)
	for v := uint64(1); v <= 3; v++ {
		r.Push(v)
	}

	old, evicted := r.Push(4)
	if !evicted || old != 1 {
		t.Fatalf("push 4: evicted=%v old=%d, want true and 1", evicted, old)
	}
	old, evicted = r.Push(5)
	if !evicted || old != 2 {
		t.Fatalf("push 5: evicted=%v old=%d, want true and 2", evicted, old)
	}

	if got, want := r.Items(), []uint64{3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	if r.Len() != 3 {
		t.Fatalf("len=%d, want 3", r.Len())
	}
}

func TestRing_ExactCapacity(t *testing.T) {
	cases := []struct{ in, want int }{
		{-1, 1}, {0, 1}, {1, 1}, {3, 3}, {10, 10},
	}
	for _, tc := range cases {
		if got := New[int](tc.in).Cap(); got != tc.want {
			t.Errorf("New(%d).Cap() = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRing_SingleSlot(t *testing.T) {
	r := New[string](1)
	r.Push("0x2a")

	old, evicted := r.Push("0b101")
	if !evicted || old != "0x2a" {
		t.Fatalf("evicted=%v old=%q, want true and 0x2a", evicted, old)
	}
	if got := r.Items(); !reflect.DeepEqual(got, []string{"0b101"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestRing_ItemsIsACopy(t *testing.T) {
	r := New[uint64](2)
	r.Push(1)

	items := r.Items()
	items[0] = 99
	if got := r.Items(); got[0] != 1 {
		t.Fatalf("mutating Items result changed the ring: %v", got)
	}
}

func TestRing_Empty(t *testing.T) {
	r := New[uint64](4)
	if got := r.Items(); len(got) != 0 {
		t.Fatalf("items = %v, want empty", got)
	}
}
