package domain

import (
	"fmt"
	"math"
)

// ResourceRequirement is the resource signature of a job: what it needs from an
// offer and whether it may run on (and be evicted from) preemptable capacity.
// Values are comparable and are used directly as map keys, so two requirements
// with the same fields always land in the same queue bucket.
type ResourceRequirement struct {
	cores       float64
	memory      int64
	disk        int64
	preemptable bool
}

// NewResourceRequirement validates and builds a requirement.
// Negative quantities, and cores that are NaN or infinite, are rejected.
func NewResourceRequirement(cores float64, memory, disk int64, preemptable bool) (ResourceRequirement, error) {
	if math.IsNaN(cores) || math.IsInf(cores, 0) || cores < 0 {
		return ResourceRequirement{}, &InvalidResourceRequirementError{Field: "cores", Value: fmt.Sprint(cores)}
	}
	if memory < 0 {
		return ResourceRequirement{}, &InvalidResourceRequirementError{Field: "memory", Value: fmt.Sprint(memory)}
	}
	if disk < 0 {
		return ResourceRequirement{}, &InvalidResourceRequirementError{Field: "disk", Value: fmt.Sprint(disk)}
	}
	if cores == 0 {
		// fold -0 into 0 so the two never produce distinct keys
		cores = 0
	}
	return ResourceRequirement{cores: cores, memory: memory, disk: disk, preemptable: preemptable}, nil
}

// MustResourceRequirement is NewResourceRequirement for literals known to be valid.
func MustResourceRequirement(cores float64, memory, disk int64, preemptable bool) ResourceRequirement {
	r, err := NewResourceRequirement(cores, memory, disk, preemptable)
	if err != nil {
		panic(err)
	}
	return r
}

func (r ResourceRequirement) Cores() float64    { return r.cores }
func (r ResourceRequirement) Memory() int64     { return r.memory }
func (r ResourceRequirement) Disk() int64       { return r.disk }
func (r ResourceRequirement) Preemptable() bool { return r.preemptable }

func (r ResourceRequirement) String() string {
	return fmt.Sprintf("cores:%g, memory:%d, disk:%d, preemptable:%t", r.cores, r.memory, r.disk, r.preemptable)
}

// FootprintOrder selects how requirements with the same preemptability are
// ordered relative to each other.
type FootprintOrder int

const (
	// Smallest cores, then memory, then disk first.
	FootprintAscending FootprintOrder = iota

	// Largest first, for largest-fit-first packing of offers.
	FootprintDescending
)

func (o FootprintOrder) String() string {
	switch o {
	case FootprintAscending:
		return "ascending"
	case FootprintDescending:
		return "descending"
	}
	return fmt.Sprintf("FootprintOrder(%d)", int(o))
}

// ParseFootprintOrder maps a config value to a FootprintOrder. The empty string
// selects FootprintAscending.
func ParseFootprintOrder(s string) (FootprintOrder, error) {
	switch s {
	case "", "ascending":
		return FootprintAscending, nil
	case "descending":
		return FootprintDescending, nil
	}
	return FootprintAscending, fmt.Errorf("unknown footprint order %q, supported values are [ascending descending]", s)
}

// Compare orders r against other: -1 if r sorts first, 1 if other does, 0 only
// when the two are equal. Non-preemptable requirements always sort before
// preemptable ones, then cores, memory and disk ascend.
func (r ResourceRequirement) Compare(other ResourceRequirement) int {
	return r.CompareWith(other, FootprintAscending)
}

// CompareWith is Compare with an explicit footprint direction. The
// preemptable key is never reversed.
func (r ResourceRequirement) CompareWith(other ResourceRequirement, order FootprintOrder) int {
	if r.preemptable != other.preemptable {
		if !r.preemptable {
			return -1
		}
		return 1
	}
	c := compareFootprint(r, other)
	if order == FootprintDescending {
		c = -c
	}
	return c
}

// Less reports whether r sorts strictly before other in ascending order.
func (r ResourceRequirement) Less(other ResourceRequirement) bool {
	return r.Compare(other) < 0
}

func compareFootprint(a, b ResourceRequirement) int {
	switch {
	case a.cores < b.cores:
		return -1
	case a.cores > b.cores:
		return 1
	case a.memory < b.memory:
		return -1
	case a.memory > b.memory:
		return 1
	case a.disk < b.disk:
		return -1
	case a.disk > b.disk:
		return 1
	}
	return 0
}
