package memory

import (
	"fmt"
	"testing"

	"github.com/twitter/offerqueue/scheduler/domain"
)

func TestFifoCompaction(t *testing.T) {
	f := &jobFifo{}
	next := 0
	expected := 0
	for round := 0; round < 10; round++ {
		for i := 0; i < 100; i++ {
			f.push(domain.GenJob(fmt.Sprintf("job%d", next)))
			next++
		}
		for i := 0; i < 70; i++ {
			job := f.pop()
			if job.ID() != fmt.Sprintf("job%d", expected) {
				t.Fatalf("Out of order: got %s, expected job%d", job.ID(), expected)
			}
			expected++
		}
		if f.len() != next-expected {
			t.Fatalf("Unexpected len %d, expected %d", f.len(), next-expected)
		}
		if f.head > len(f.jobs)/2 && f.head >= minCompactHead {
			t.Fatalf("Fifo was not compacted: head %d of %d", f.head, len(f.jobs))
		}
	}

	snapshot := f.snapshot()
	if len(snapshot) != f.len() || snapshot[0].ID() != fmt.Sprintf("job%d", expected) {
		t.Fatalf("Unexpected snapshot head %v", snapshot[0])
	}
	for f.len() > 0 {
		f.pop()
	}
	if f.head != 0 || len(f.jobs) != 0 {
		t.Fatalf("Expected an emptied fifo to reset, head %d len %d", f.head, len(f.jobs))
	}
}
