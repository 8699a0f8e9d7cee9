package service

import (
	"hash/fnv"
	"sync"
)

const sessionLockStripes = 64

// sessionLocks serializes read-modify-write cycles per session id. Ids
// hash onto a fixed set of mutexes, so unrelated sessions may share one.
// It covers a single process; instances sharing a Redis store still
// resolve concurrent writes to one session as last write wins.
type sessionLocks struct {
	stripes [sessionLockStripes]sync.Mutex
}

func (l *sessionLocks) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &l.stripes[h.Sum32()%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}
