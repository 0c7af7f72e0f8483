package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twitter/offerqueue/scheduler/domain"
)

func TestOfferFits(t *testing.T) {
	offer := Offer{ID: "o1", NodeID: "n1", Cores: 4, Memory: 4 << 30, Disk: 20 << 30}
	preemptableOffer := offer
	preemptableOffer.Preemptable = true

	tests := []struct {
		name  string
		offer Offer
		req   domain.ResourceRequirement
		fits  bool
	}{
		{"exact", offer, domain.MustResourceRequirement(4, 4<<30, 20<<30, false), true},
		{"smaller", offer, domain.MustResourceRequirement(1, 1<<30, 5<<30, false), true},
		{"zero", offer, domain.MustResourceRequirement(0, 0, 0, false), true},
		{"too many cores", offer, domain.MustResourceRequirement(4.5, 1<<30, 5<<30, false), false},
		{"too much memory", offer, domain.MustResourceRequirement(1, 8<<30, 5<<30, false), false},
		{"too much disk", offer, domain.MustResourceRequirement(1, 1<<30, 40<<30, false), false},
		{"preemptable job on guaranteed offer", offer, domain.MustResourceRequirement(1, 1<<30, 5<<30, true), true},
		{"preemptable job on preemptable offer", preemptableOffer, domain.MustResourceRequirement(1, 1<<30, 5<<30, true), true},
		{"guaranteed job on preemptable offer", preemptableOffer, domain.MustResourceRequirement(1, 1<<30, 5<<30, false), false},
	}
	for _, test := range tests {
		assert.Equal(t, test.fits, test.offer.Fits(test.req), test.name)
	}
}

func TestOfferConsume(t *testing.T) {
	offer := Offer{ID: "o1", Cores: 4, Memory: 4 << 30, Disk: 20 << 30}
	left := offer.consume(domain.MustResourceRequirement(1.5, 1<<30, 5<<30, false))

	assert.Equal(t, 2.5, left.Cores)
	assert.Equal(t, int64(3<<30), left.Memory)
	assert.Equal(t, int64(15<<30), left.Disk)
	assert.Equal(t, "o1", left.ID)
	assert.Equal(t, float64(4), offer.Cores, "consume must not modify the receiver")
}
