package memory

import (
	"github.com/twitter/offerqueue/scheduler/domain"
)

// Below this many dead slots a fifo is never compacted.
const minCompactHead = 32

// jobFifo is a slice backed FIFO of jobs. Popped slots are cleared and the
// live tail is moved to the front once more than half the slice is dead,
// keeping push and pop amortized O(1).
type jobFifo struct {
	jobs []*domain.Job
	head int
}

func (f *jobFifo) push(job *domain.Job) {
	f.jobs = append(f.jobs, job)
}

// pop must not be called on an empty fifo.
func (f *jobFifo) pop() *domain.Job {
	job := f.jobs[f.head]
	f.jobs[f.head] = nil
	f.head++

	switch {
	case f.head == len(f.jobs):
		f.jobs = f.jobs[:0]
		f.head = 0
	case f.head >= minCompactHead && f.head > len(f.jobs)/2:
		n := copy(f.jobs, f.jobs[f.head:])
		for i := n; i < len(f.jobs); i++ {
			f.jobs[i] = nil
		}
		f.jobs = f.jobs[:n]
		f.head = 0
	}
	return job
}

func (f *jobFifo) len() int {
	return len(f.jobs) - f.head
}

// snapshot copies the live jobs, oldest first.
func (f *jobFifo) snapshot() []*domain.Job {
	out := make([]*domain.Job, f.len())
	copy(out, f.jobs[f.head:])
	return out
}

func (f *jobFifo) each(fn func(*domain.Job)) {
	for _, job := range f.jobs[f.head:] {
		fn(job)
	}
}
