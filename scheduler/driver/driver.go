// Package driver connects a job queue to a cluster manager's resource offers.
// It owns the two paths that touch the queue concurrently: job submission and
// offer handling.
package driver

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/luci/go-render/render"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/twitter/offerqueue/common/stats"
	"github.com/twitter/offerqueue/scheduler/domain"
	"github.com/twitter/offerqueue/scheduler/queue"
)

// Defaults used for zero valued Config fields.
const (
	DefaultSubmitBurst    = 1
	DefaultLaunchRetries  = 3
	DefaultIdleBackoffMax = 2 * time.Second
)

var errNoPendingJobs = errors.New("no pending jobs")

type Config struct {
	// Max submissions per second, <= 0 for no limit.
	SubmitRate float64

	// Submissions allowed in a burst above SubmitRate.
	SubmitBurst int

	// Extra attempts for a failed Launch before its jobs are requeued.
	LaunchRetries uint64

	// Longest wait between polls in WaitForPending.
	IdleBackoffMax time.Duration
}

// Assignment is a set of jobs launched on one offer.
type Assignment struct {
	Offer Offer
	Jobs  []*domain.Job
}

type Driver struct {
	q        queue.Queue
	matcher  *Matcher
	launcher Launcher
	limiter  *rate.Limiter
	cfg      Config
	stat     stats.StatsReceiver

	// Backoff between Launch attempts.
	newLaunchBackOff func() backoff.BackOff
}

// NewDriver creates a Driver for q. A nil stat disables metrics.
func NewDriver(q queue.Queue, launcher Launcher, cfg Config, stat stats.StatsReceiver) *Driver {
	if cfg.SubmitBurst < 1 {
		cfg.SubmitBurst = DefaultSubmitBurst
	}
	if cfg.LaunchRetries == 0 {
		cfg.LaunchRetries = DefaultLaunchRetries
	}
	if cfg.IdleBackoffMax <= 0 {
		cfg.IdleBackoffMax = DefaultIdleBackoffMax
	}
	limit := rate.Inf
	if cfg.SubmitRate > 0 {
		limit = rate.Limit(cfg.SubmitRate)
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Driver{
		q:        q,
		matcher:  NewMatcher(q),
		launcher: launcher,
		limiter:  rate.NewLimiter(limit, cfg.SubmitBurst),
		cfg:      cfg,
		stat:     stat.Scope("driver"),
		newLaunchBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// Submit queues a new job, waiting for the submit rate limit first.
func (d *Driver) Submit(ctx context.Context, job *domain.Job) error {
	if job == nil {
		return &domain.InvalidJobError{Reason: "nil job"}
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(err, "submitting job %s", job.ID())
	}
	if err := d.q.Insert(job, job.Resources()); err != nil {
		return errors.Wrapf(err, "submitting job %s", job.ID())
	}
	d.stat.Counter(stats.DriverSubmittedJobsCounter).Inc(1)
	log.WithFields(log.Fields{
		"jobID":     job.ID(),
		"resources": job.Resources().String(),
	}).Debug("job submitted")
	return nil
}

// HandleOffers matches each offer against the queue and launches what fits.
// Offers with nothing to run are declined. Jobs whose launch still fails after
// retries are put back in the queue. Returns the successful launches.
func (d *Driver) HandleOffers(offers []Offer) []Assignment {
	assignments := []Assignment{}
	for _, offer := range offers {
		if a, ok := d.handleOffer(offer); ok {
			assignments = append(assignments, a)
		}
	}
	return assignments
}

func (d *Driver) handleOffer(offer Offer) (Assignment, bool) {
	defer d.stat.Precision(stats.LatencyPrecision).Latency(stats.DriverOfferLatency_ms).Time().Stop()
	d.stat.Counter(stats.DriverOffersCounter).Inc(1)

	jobs := d.matcher.Match(offer)
	d.stat.Histogram(stats.DriverJobsPerOfferHistogram).Update(int64(len(jobs)))
	if len(jobs) == 0 {
		d.stat.Counter(stats.DriverDeclinedOffersCounter).Inc(1)
		if err := d.launcher.Decline(offer); err != nil {
			log.Warnf("declining %s: %v", offer, err)
		}
		return Assignment{}, false
	}

	log.Debugf("matched %s to jobs %s", offer, render.Render(jobIDs(jobs)))
	launch := func() error { return d.launcher.Launch(offer, jobs) }
	if err := backoff.Retry(launch, backoff.WithMaxRetries(d.newLaunchBackOff(), d.cfg.LaunchRetries)); err != nil {
		d.stat.Counter(stats.DriverLaunchFailuresCounter).Inc(1)
		log.Warnf("launching %d jobs on %s failed, requeueing: %v", len(jobs), offer, err)
		d.requeue(jobs)
		return Assignment{}, false
	}

	d.stat.Counter(stats.DriverLaunchedJobsCounter).Inc(int64(len(jobs)))
	log.Infof("launched %d jobs on %s", len(jobs), offer)
	return Assignment{Offer: offer, Jobs: jobs}, true
}

// Requeued jobs go to the back of their type.
func (d *Driver) requeue(jobs []*domain.Job) {
	for _, job := range jobs {
		if err := d.q.Insert(job, job.Resources()); err != nil {
			log.Errorf("requeueing job %s: %v", job.ID(), err)
			continue
		}
		d.stat.Counter(stats.DriverRequeuedJobsCounter).Inc(1)
	}
}

// Run handles offer batches until offers is closed or ctx is done.
func (d *Driver) Run(ctx context.Context, offers <-chan []Offer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-offers:
			if !ok {
				return nil
			}
			d.HandleOffers(batch)
		}
	}
}

// WaitForPending blocks until the queue holds at least one job, polling with
// exponential backoff capped at IdleBackoffMax.
func (d *Driver) WaitForPending(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = d.cfg.IdleBackoffMax
	b.MaxElapsedTime = 0

	poll := func() error {
		if d.q.Len() == 0 {
			return errNoPendingJobs
		}
		return nil
	}
	if err := backoff.Retry(poll, backoff.WithContext(b, ctx)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func jobIDs(jobs []*domain.Job) []string {
	ids := make([]string, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID()
	}
	return ids
}
