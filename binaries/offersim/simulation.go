package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/offerqueue/common/errors"
	"github.com/twitter/offerqueue/common/stats"
	"github.com/twitter/offerqueue/scheduler/config"
	"github.com/twitter/offerqueue/scheduler/domain"
	"github.com/twitter/offerqueue/scheduler/driver"
	"github.com/twitter/offerqueue/scheduler/queue/memory"
)

type simOptions struct {
	configSelector string
	numJobs        int
	rounds         int
	seed           int64
}

type summary struct {
	Submitted int
	Rejected  int
	Launched  int
	Declined  int
	Remaining int
	Types     int
}

func (s summary) String() string {
	return fmt.Sprintf("submitted: %d, rejected: %d, launched: %d, declined offers: %d, remaining: %d in %d types",
		s.Submitted, s.Rejected, s.Launched, s.Declined, s.Remaining, s.Types)
}

// Acknowledges every launch and records what it saw.
type logLauncher struct {
	mu       sync.Mutex
	launched map[string]string
	declined int
}

func newLogLauncher() *logLauncher {
	return &logLauncher{launched: map[string]string{}}
}

func (l *logLauncher) Launch(offer driver.Offer, jobs []*domain.Job) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, job := range jobs {
		if node, ok := l.launched[job.ID()]; ok {
			return fmt.Errorf("job %s already launched on %s", job.ID(), node)
		}
		l.launched[job.ID()] = offer.NodeID
		log.WithFields(log.Fields{
			"jobID":  job.ID(),
			"node":   offer.NodeID,
			"offer":  offer.ID,
			"cores":  job.Resources().Cores(),
			"memory": job.Resources().Memory(),
		}).Debug("launch")
	}
	return nil
}

func (l *logLauncher) Decline(offer driver.Offer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.declined++
	return nil
}

func genJobs(numJobs int, rng *rand.Rand) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, numJobs)
	for i := range jobs {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		jobs[i] = domain.GenRandomJob(id.String(), rng)
	}
	return jobs, nil
}

// runSimulation submits numJobs random jobs while a simulated cluster makes
// rounds of offers, then checks that every job was launched at most once or
// is still queued.
func runSimulation(ctx context.Context, opts simOptions, stat stats.StatsReceiver) (summary, error) {
	if opts.numJobs < 0 || opts.rounds < 0 {
		return summary{}, errors.NewError(fmt.Errorf("--jobs and --offers must be >= 0"), errors.BadFlagsExitCode)
	}

	cfg, err := config.GetConfig(opts.configSelector)
	if err != nil {
		return summary{}, errors.NewError(err, errors.ConfigFailureExitCode)
	}
	log.Infof("using config %s: %s", opts.configSelector, cfg)
	if cfg.Cluster.Type != "memory" || cfg.Queue.Type != "memory" {
		return summary{}, errors.NewError(fmt.Errorf("unsupported config %s, only in-memory clusters and queues can be simulated", opts.configSelector), errors.ConfigFailureExitCode)
	}
	queueConfig, err := cfg.Queue.CreateQueueConfig()
	if err != nil {
		return summary{}, errors.NewError(err, errors.ConfigFailureExitCode)
	}
	driverConfig, err := cfg.Driver.CreateDriverConfig()
	if err != nil {
		return summary{}, errors.NewError(err, errors.ConfigFailureExitCode)
	}

	jobs, err := genJobs(opts.numJobs, rand.New(rand.NewSource(opts.seed)))
	if err != nil {
		return summary{}, errors.NewError(err, errors.SimulationFailureExitCode)
	}

	q := memory.NewBucketQueue(queueConfig, stat)
	launcher := newLogLauncher()
	d := driver.NewDriver(q, launcher, driverConfig, stat)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	rejected := 0
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, job := range jobs {
			if err := d.Submit(ctx, job); err != nil {
				log.Warnf("rejected: %v", err)
				rejected++
			}
		}
	}()

	offers := make(chan []driver.Offer)
	go func() {
		defer close(offers)
		if len(jobs) > 0 {
			if err := d.WaitForPending(ctx); err != nil {
				return
			}
		}
		for round := 0; round < opts.rounds; round++ {
			select {
			case offers <- cfg.Cluster.Offers(round):
			case <-ctx.Done():
				return
			}
		}
	}()

	// Submissions still in flight when the offers stop are left queued.
	runErr := d.Run(ctx, offers)
	wg.Wait()
	if runErr != nil {
		return summary{}, errors.NewError(runErr, errors.SimulationFailureExitCode)
	}

	launcher.mu.Lock()
	defer launcher.mu.Unlock()
	s := summary{
		Submitted: len(jobs) - rejected,
		Rejected:  rejected,
		Launched:  len(launcher.launched),
		Declined:  launcher.declined,
		Remaining: q.Len(),
		Types:     len(q.Sorted()),
	}
	for _, id := range q.JobIDs() {
		if _, ok := launcher.launched[id]; ok {
			return s, errors.NewError(fmt.Errorf("job %s is both launched and queued", id), errors.AccountingFailureExitCode)
		}
	}
	if s.Launched+s.Remaining != s.Submitted {
		return s, errors.NewError(fmt.Errorf("lost jobs: %s", s), errors.AccountingFailureExitCode)
	}
	return s, nil
}
