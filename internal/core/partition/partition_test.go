package partition

import (
	"strconv"
	"sync"
	"testing"
)

func TestFor_Determinism(t *testing.T) {
	id := For("meter-abc")
	for i := 0; i < 100; i++ {
		if got := For("meter-abc"); got != id {
			t.Fatalf("For(\"meter-abc\") = %d on iteration %d, want %d", got, i, id)
		}
	}
}

func TestFor_Range(t *testing.T) {
	inputs := []string{"", "a", "meter-1", "meter-2", "very-long-resource-id-that-should-still-hash-correctly"}
	for _, s := range inputs {
		p := For(s)
		if p < 0 || p >= Count {
			t.Errorf("For(%q) = %d, want [0, %d)", s, p, Count)
		}
	}
}

func TestFor_Distribution(t *testing.T) {
	// 1000 ids over 256 stripes should touch well over 100 of them.
	seen := make(map[int]struct{})
	for i := 0; i < 1000; i++ {
		seen[For("meter-"+strconv.Itoa(i))] = struct{}{}
	}
	if len(seen) < 100 {
		t.Errorf("only %d distinct stripes from 1000 inputs, want >= 100", len(seen))
	}
}

func TestLocks_SerialisesSameResource(t *testing.T) {
	var (
		locks   Locks
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("meter-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}
