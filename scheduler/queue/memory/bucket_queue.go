package memory

// In-memory job dispatch queue

import (
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/offerqueue/common/stats"
	"github.com/twitter/offerqueue/scheduler/domain"
	"github.com/twitter/offerqueue/scheduler/queue"
)

// BucketQueue keeps one FIFO of jobs per distinct resource requirement.
// A single mutex guards all state; no method blocks on anything but that lock.
type BucketQueue struct {
	mu      sync.Mutex
	order   domain.FootprintOrder
	buckets map[domain.ResourceRequirement]*jobFifo
	ids     map[string]struct{}
	stat    stats.StatsReceiver
}

var _ queue.Queue = (*BucketQueue)(nil)

// NewBucketQueue creates an empty queue. A nil stat disables metrics.
func NewBucketQueue(cfg queue.Config, stat stats.StatsReceiver) *BucketQueue {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &BucketQueue{
		order:   cfg.Order,
		buckets: make(map[domain.ResourceRequirement]*jobFifo),
		ids:     make(map[string]struct{}),
		stat:    stat.Scope("queue"),
	}
}

func (q *BucketQueue) Insert(job *domain.Job, resources domain.ResourceRequirement) error {
	if job == nil {
		q.stat.Counter(stats.QueueRejectedInsertsCounter).Inc(1)
		return &domain.InvalidJobError{Reason: "nil job"}
	}
	if job.Resources() != resources {
		q.stat.Counter(stats.QueueRejectedInsertsCounter).Inc(1)
		return &queue.ResourceMismatchError{JobID: job.ID(), Job: job.Resources(), Requested: resources}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.ids[job.ID()]; ok {
		q.stat.Counter(stats.QueueRejectedInsertsCounter).Inc(1)
		return &queue.DuplicateJobError{JobID: job.ID()}
	}

	bucket, ok := q.buckets[resources]
	if !ok {
		bucket = &jobFifo{}
		q.buckets[resources] = bucket
		log.WithFields(log.Fields{
			"resources": resources.String(),
			"jobTypes":  len(q.buckets),
		}).Debug("new job type queued")
	}
	bucket.push(job)
	q.ids[job.ID()] = struct{}{}

	q.stat.Counter(stats.QueueInsertedJobsCounter).Inc(1)
	q.updateGauges()
	return nil
}

func (q *BucketQueue) Sorted() []domain.ResourceRequirement {
	defer q.stat.Precision(stats.LatencyPrecision).Latency(stats.QueueSortedLatency_ms).Time().Stop()

	q.mu.Lock()
	types := q.typesLocked()
	q.mu.Unlock()

	return types
}

func (q *BucketQueue) JobsOfType(resources domain.ResourceRequirement) []*domain.Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	bucket, ok := q.buckets[resources]
	if !ok {
		return []*domain.Job{}
	}
	return bucket.snapshot()
}

func (q *BucketQueue) NextJobOfType(resources domain.ResourceRequirement) (*domain.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	bucket, ok := q.buckets[resources]
	if !ok || bucket.len() == 0 {
		q.stat.Counter(stats.QueueEmptyPollsCounter).Inc(1)
		return nil, &queue.NoJobOfTypeError{Resources: resources}
	}

	job := bucket.pop()
	delete(q.ids, job.ID())
	if bucket.len() == 0 {
		delete(q.buckets, resources)
		log.WithFields(log.Fields{
			"resources": resources.String(),
			"jobTypes":  len(q.buckets),
		}).Debug("job type drained")
	}

	q.stat.Counter(stats.QueueDispatchedJobsCounter).Inc(1)
	q.updateGauges()
	return job, nil
}

// JobIDs lists ids bucket by bucket in Sorted() order, oldest first within
// each bucket.
func (q *BucketQueue) JobIDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]string, 0, len(q.ids))
	for _, resources := range q.typesLocked() {
		q.buckets[resources].each(func(job *domain.Job) {
			ids = append(ids, job.ID())
		})
	}
	return ids
}

func (q *BucketQueue) TypeEmpty(resources domain.ResourceRequirement) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	bucket, ok := q.buckets[resources]
	return !ok || bucket.len() == 0
}

func (q *BucketQueue) Contains(jobID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, ok := q.ids[jobID]
	return ok
}

func (q *BucketQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.ids)
}

// Must be called with q.mu held.
func (q *BucketQueue) typesLocked() []domain.ResourceRequirement {
	types := make([]domain.ResourceRequirement, 0, len(q.buckets))
	for resources := range q.buckets {
		types = append(types, resources)
	}
	order := q.order
	sort.Slice(types, func(i, j int) bool {
		return types[i].CompareWith(types[j], order) < 0
	})
	return types
}

// Must be called with q.mu held.
func (q *BucketQueue) updateGauges() {
	q.stat.Gauge(stats.QueuePendingJobsGauge).Update(int64(len(q.ids)))
	q.stat.Gauge(stats.QueueJobTypesGauge).Update(int64(len(q.buckets)))
}
