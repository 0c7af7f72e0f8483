package driver

import (
	"fmt"

	"github.com/twitter/offerqueue/scheduler/domain"
)

// Offer is capacity the cluster manager currently makes available on one node.
type Offer struct {
	ID          string
	NodeID      string
	Cores       float64
	Memory      int64
	Disk        int64
	Preemptable bool
}

// Fits reports whether a job with the given requirement can run in what is
// left of the offer. Non-preemptable jobs never run on preemptable capacity.
func (o Offer) Fits(r domain.ResourceRequirement) bool {
	if o.Preemptable && !r.Preemptable() {
		return false
	}
	return r.Cores() <= o.Cores && r.Memory() <= o.Memory && r.Disk() <= o.Disk
}

// consume returns what is left of the offer after placing a job with r.
func (o Offer) consume(r domain.ResourceRequirement) Offer {
	o.Cores -= r.Cores()
	o.Memory -= r.Memory()
	o.Disk -= r.Disk()
	return o
}

func (o Offer) String() string {
	return fmt.Sprintf("offer:%s, node:%s, cores:%g, memory:%d, disk:%d, preemptable:%t",
		o.ID, o.NodeID, o.Cores, o.Memory, o.Disk, o.Preemptable)
}
