package driver

import (
	"github.com/twitter/offerqueue/scheduler/domain"
	"github.com/twitter/offerqueue/scheduler/queue"
)

// Matcher packs queued jobs into offers.
type Matcher struct {
	q queue.Queue
}

func NewMatcher(q queue.Queue) *Matcher {
	return &Matcher{q: q}
}

/*
Match removes from the queue and returns the jobs placed on offer.

Job types are visited in the queue's priority order, so guaranteed work is
placed before preemptable work. Within a type, jobs are taken oldest first
for as long as the remaining capacity fits the type. A type that empties
between Sorted() and NextJobOfType() was drained by another caller and is
skipped.
*/
func (m *Matcher) Match(offer Offer) []*domain.Job {
	remaining := offer
	matched := []*domain.Job{}
	for _, jobType := range m.q.Sorted() {
		for remaining.Fits(jobType) {
			job, err := m.q.NextJobOfType(jobType)
			if err != nil {
				break
			}
			matched = append(matched, job)
			remaining = remaining.consume(jobType)
		}
	}
	return matched
}
