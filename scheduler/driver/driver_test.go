package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/offerqueue/common/stats"
	"github.com/twitter/offerqueue/scheduler/domain"
	"github.com/twitter/offerqueue/scheduler/queue"
	"github.com/twitter/offerqueue/scheduler/queue/memory"
)

var bigOffer = Offer{ID: "o1", NodeID: "n1", Cores: 8, Memory: 16 << 30, Disk: 100 << 30}

func makeDriver(t *testing.T, launcher Launcher, stat stats.StatsReceiver) (*Driver, queue.Queue) {
	q := memory.NewBucketQueue(queue.Config{}, stat)
	d := NewDriver(q, launcher, Config{LaunchRetries: 2}, stat)
	d.newLaunchBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return d, q
}

func TestSubmit(t *testing.T) {
	d, q := makeDriver(t, nil, nil)

	require.NoError(t, d.Submit(context.Background(), makeJob(t, "job1", 1, false)))
	assert.True(t, q.Contains("job1"))

	err := d.Submit(context.Background(), makeJob(t, "job1", 1, false))
	assert.True(t, queue.IsDuplicateJob(err), "got %v", err)

	_, ok := d.Submit(context.Background(), nil).(*domain.InvalidJobError)
	assert.True(t, ok)
	assert.Equal(t, 1, q.Len())
}

func TestSubmitRateLimited(t *testing.T) {
	q := memory.NewBucketQueue(queue.Config{}, nil)
	d := NewDriver(q, nil, Config{SubmitRate: 0.001, SubmitBurst: 1}, nil)

	require.NoError(t, d.Submit(context.Background(), makeJob(t, "job1", 1, false)))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := d.Submit(ctx, makeJob(t, "job2", 1, false))
	assert.Error(t, err)
	assert.False(t, q.Contains("job2"))
}

func TestHandleOffersLaunches(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	launcher := NewMockLauncher(mockCtrl)
	d, q := makeDriver(t, launcher, nil)

	fill(t, q, makeJob(t, "job1", 1, false), makeJob(t, "job2", 2, false))
	launcher.EXPECT().Launch(bigOffer, gomock.Any()).Return(nil)

	assignments := d.HandleOffers([]Offer{bigOffer})
	require.Len(t, assignments, 1)
	assert.Equal(t, bigOffer, assignments[0].Offer)
	assert.Equal(t, []string{"job1", "job2"}, ids(assignments[0].Jobs))
	assert.Equal(t, 0, q.Len())
}

func TestHandleOffersDeclinesUnused(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	launcher := NewMockLauncher(mockCtrl)
	d, q := makeDriver(t, launcher, nil)

	small := Offer{ID: "o2", Cores: 1, Memory: 1 << 30, Disk: 1 << 30}
	fill(t, q, makeJob(t, "job1", 4, false))
	launcher.EXPECT().Decline(small).Return(nil)
	launcher.EXPECT().Decline(bigOffer).Return(errors.New("already rescinded"))

	q2 := memory.NewBucketQueue(queue.Config{}, nil)
	d2 := NewDriver(q2, launcher, Config{}, nil)

	assert.Empty(t, d.HandleOffers([]Offer{small}))
	assert.Empty(t, d2.HandleOffers([]Offer{bigOffer}))
	assert.Equal(t, 1, q.Len())
}

func TestHandleOffersRetriesLaunch(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	launcher := NewMockLauncher(mockCtrl)
	d, q := makeDriver(t, launcher, nil)

	fill(t, q, makeJob(t, "job1", 1, false))
	gomock.InOrder(
		launcher.EXPECT().Launch(bigOffer, gomock.Any()).Return(errors.New("node busy")),
		launcher.EXPECT().Launch(bigOffer, gomock.Any()).Return(nil),
	)

	assignments := d.HandleOffers([]Offer{bigOffer})
	require.Len(t, assignments, 1)
	assert.Equal(t, []string{"job1"}, ids(assignments[0].Jobs))
}

func TestHandleOffersRequeuesFailedLaunch(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	launcher := NewMockLauncher(mockCtrl)
	statsRegistry := stats.NewFinagleStatsRegistry()
	stat := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return statsRegistry })
	d, q := makeDriver(t, launcher, stat)

	fill(t, q, makeJob(t, "job1", 1, false), makeJob(t, "job2", 1, false), makeJob(t, "job3", 16, false))
	// One attempt plus two retries.
	launcher.EXPECT().Launch(bigOffer, gomock.Any()).Return(errors.New("node lost")).Times(3)

	assert.Empty(t, d.HandleOffers([]Offer{bigOffer}))
	assert.Equal(t, 3, q.Len())

	// Requeued jobs go behind anything queued in the meantime.
	fill(t, q, makeJob(t, "job4", 1, false))
	assert.Equal(t, []string{"job1", "job2", "job4"},
		ids(q.JobsOfType(domain.MustResourceRequirement(1, 1<<30, 5<<30, false))))

	stats.VerifyStats("requeue", statsRegistry, t, map[string]stats.Rule{
		"driver/" + stats.DriverOffersCounter:                  {Checker: stats.Int64EqTest, Value: 1},
		"driver/" + stats.DriverLaunchFailuresCounter:          {Checker: stats.Int64EqTest, Value: 1},
		"driver/" + stats.DriverRequeuedJobsCounter:            {Checker: stats.Int64EqTest, Value: 2},
		"driver/" + stats.DriverLaunchedJobsCounter:            {Checker: stats.DoesNotExistTest},
		"driver/" + stats.DriverJobsPerOfferHistogram + ".max": {Checker: stats.Int64EqTest, Value: 2},
	})
}

func TestRun(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	launcher := NewMockLauncher(mockCtrl)
	d, q := makeDriver(t, launcher, nil)

	fill(t, q, makeJob(t, "job1", 1, false))
	launcher.EXPECT().Launch(bigOffer, gomock.Any()).Return(nil)
	launcher.EXPECT().Decline(bigOffer).Return(nil)

	offers := make(chan []Offer, 2)
	offers <- []Offer{bigOffer}
	offers <- []Offer{bigOffer}
	close(offers)
	assert.NoError(t, d.Run(context.Background(), offers))
	assert.Equal(t, 0, q.Len())
}

func TestRunCancelled(t *testing.T) {
	d, _ := makeDriver(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, d.Run(ctx, make(chan []Offer)))
}

func TestWaitForPending(t *testing.T) {
	d, q := makeDriver(t, nil, nil)

	job := makeJob(t, "job1", 1, false)
	go func() {
		time.Sleep(20 * time.Millisecond)
		q.Insert(job, job.Resources())
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, d.WaitForPending(ctx))
}

func TestWaitForPendingTimesOut(t *testing.T) {
	d, _ := makeDriver(t, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.Equal(t, context.DeadlineExceeded, d.WaitForPending(ctx))
}
