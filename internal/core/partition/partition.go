// Package partition maps resource ids onto a fixed set of stripes. Ingestion
// and rollup take the stripe lock of a resource so that writes to one
// resource are serialised while different resources proceed in parallel.
package partition

import (
	"hash/fnv"
	"sync"
)

// Count is the fixed number of stripes.
const Count = 256

// For returns the stripe of a resource id. Same id, same stripe.
func For(resourceID string) int {
	h := fnv.New32a()
	h.Write([]byte(resourceID))
	return int(h.Sum32() % Count)
}

// Locks is a striped mutex keyed by resource id. The zero value is ready
// to use. Two ids may share a stripe; that only costs parallelism.
type Locks struct {
	stripes [Count]sync.Mutex
}

// Lock acquires the stripe of resourceID and returns its unlock function.
//
//	defer locks.Lock(id)()
func (l *Locks) Lock(resourceID string) func() {
	m := &l.stripes[For(resourceID)]
	m.Lock()
	return m.Unlock
}
