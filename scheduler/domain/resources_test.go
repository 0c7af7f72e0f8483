package domain

import (
	"math"
	"sort"
	"testing"
)

func TestNewResourceRequirement_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cores  float64
		memory int64
		disk   int64
		field  string
	}{
		{"negative cores", -1, 0, 0, "cores"},
		{"nan cores", math.NaN(), 0, 0, "cores"},
		{"infinite cores", math.Inf(1), 0, 0, "cores"},
		{"negative memory", 1, -1, 0, "memory"},
		{"negative disk", 1, 1, -5, "disk"},
	}
	for _, test := range tests {
		_, err := NewResourceRequirement(test.cores, test.memory, test.disk, false)
		if err == nil {
			t.Fatalf("%s: expected an error", test.name)
		}
		invalid, ok := err.(*InvalidResourceRequirementError)
		if !ok {
			t.Fatalf("%s: unexpected error type %T", test.name, err)
		}
		if invalid.Field != test.field {
			t.Fatalf("%s: expected field %s, got %s", test.name, test.field, invalid.Field)
		}
	}
}

func TestNewResourceRequirement_Zero(t *testing.T) {
	zero, err := NewResourceRequirement(0, 0, 0, false)
	if err != nil {
		t.Fatalf("Unexpected error for an all zero requirement: %v", err)
	}
	negZero, err := NewResourceRequirement(math.Copysign(0, -1), 0, 0, false)
	if err != nil {
		t.Fatalf("Unexpected error for -0 cores: %v", err)
	}
	if zero != negZero {
		t.Fatal("Expected 0 and -0 cores to be the same requirement")
	}
	if math.Signbit(negZero.Cores()) {
		t.Fatal("Expected -0 cores to be stored as 0")
	}
}

func TestResourceRequirement_EqualityAsMapKey(t *testing.T) {
	a := MustResourceRequirement(1.5, 1000, 5000, true)
	b := MustResourceRequirement(1.5, 1000, 5000, true)
	c := MustResourceRequirement(1.5, 1001, 5000, true)

	m := map[ResourceRequirement]int{}
	m[a]++
	m[b]++
	m[c]++
	if len(m) != 2 || m[a] != 2 || m[c] != 1 {
		t.Fatalf("Unexpected bucketing %v", m)
	}
	if a.Compare(b) != 0 {
		t.Fatal("Equal requirements must compare equal")
	}
	if a.Compare(c) == 0 {
		t.Fatal("Unequal requirements must not compare equal")
	}
}

func TestResourceRequirement_Compare(t *testing.T) {
	nonPreempt := MustResourceRequirement(8, 8000, 8000, false)
	preempt := MustResourceRequirement(1, 1, 1, true)
	if nonPreempt.Compare(preempt) != -1 || preempt.Compare(nonPreempt) != 1 {
		t.Fatal("Non-preemptable requirements must sort before preemptable ones")
	}
	if nonPreempt.CompareWith(preempt, FootprintDescending) != -1 {
		t.Fatal("Descending footprint must not reverse the preemptable key")
	}

	ordered := []ResourceRequirement{
		MustResourceRequirement(0, 0, 0, false),
		MustResourceRequirement(0, 0, 1, false),
		MustResourceRequirement(0, 1, 0, false),
		MustResourceRequirement(0.5, 0, 0, false),
		MustResourceRequirement(1, 0, 0, false),
		MustResourceRequirement(0, 0, 0, true),
		MustResourceRequirement(2, 0, 0, true),
	}
	for i := 0; i < len(ordered)-1; i++ {
		if !ordered[i].Less(ordered[i+1]) {
			t.Fatalf("Expected %v < %v", ordered[i], ordered[i+1])
		}
		if ordered[i+1].Compare(ordered[i]) != 1 {
			t.Fatalf("Expected %v > %v", ordered[i+1], ordered[i])
		}
	}

	shuffled := []ResourceRequirement{ordered[4], ordered[6], ordered[0], ordered[5], ordered[2], ordered[3], ordered[1]}
	sort.Slice(shuffled, func(i, j int) bool { return shuffled[i].Less(shuffled[j]) })
	for i := range ordered {
		if shuffled[i] != ordered[i] {
			t.Fatalf("Sort mismatch at %d: got %v, expected %v", i, shuffled[i], ordered[i])
		}
	}
}

func TestResourceRequirement_CompareDescending(t *testing.T) {
	small := MustResourceRequirement(1, 100, 100, false)
	large := MustResourceRequirement(4, 100, 100, false)
	if small.CompareWith(large, FootprintDescending) != 1 {
		t.Fatal("Expected the larger requirement first when descending")
	}
	if small.CompareWith(small, FootprintDescending) != 0 {
		t.Fatal("Expected a requirement to compare equal to itself")
	}
}

func TestParseFootprintOrder(t *testing.T) {
	for s, expected := range map[string]FootprintOrder{
		"":           FootprintAscending,
		"ascending":  FootprintAscending,
		"descending": FootprintDescending,
	} {
		o, err := ParseFootprintOrder(s)
		if err != nil || o != expected {
			t.Fatalf("ParseFootprintOrder(%q) = %v, %v; expected %v", s, o, err, expected)
		}
		if s != "" && o.String() != s {
			t.Fatalf("Expected String() to round trip %q, got %q", s, o.String())
		}
	}
	if _, err := ParseFootprintOrder("biggest"); err == nil {
		t.Fatal("Expected an unknown order to be rejected")
	}
}
