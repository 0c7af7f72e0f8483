package domain

import (
	"fmt"
	"math/rand"

	"github.com/leanovate/gopter"

	"github.com/twitter/offerqueue/tests/testhelpers"
)

// Generates a random ResourceRequirement drawn from a small value space, so
// that independently generated requirements collide often enough to share
// queue buckets: cores 0..9, three memory sizes, two disk sizes.
func GenRandomResourceRequirement(rng *rand.Rand) ResourceRequirement {
	return MustResourceRequirement(
		float64(rng.Intn(10)),
		testhelpers.PickInt64(rng, 512<<20, 1<<30, 4<<30),
		testhelpers.PickInt64(rng, 5<<30, 20<<30),
		rng.Intn(2) == 0,
	)
}

// Generates a random Job with the specified Id and resources
func GenRandomJobWithResources(id string, resources ResourceRequirement, rng *rand.Rand) *Job {
	job, err := NewJob(id, JobDefinition{
		Name:      fmt.Sprintf("name:%s", testhelpers.GenRandomAlphaNumericString(rng)),
		Resources: resources,
		Command:   "do nothing",
	})
	if err != nil {
		panic(err)
	}
	return job
}

// Generates a random Job with the specified Id, using the supplied Rand
func GenRandomJob(id string, rng *rand.Rand) *Job {
	return GenRandomJobWithResources(id, GenRandomResourceRequirement(rng), rng)
}

// Generates a random Job with the specified Id
func GenJob(id string) *Job {
	return GenRandomJob(id, testhelpers.NewRand())
}

// Generates numJobs random Jobs with distinct Ids
func GenRandomJobs(numJobs int, rng *rand.Rand) []*Job {
	jobs := make([]*Job, numJobs)
	for i := 0; i < numJobs; i++ {
		id := fmt.Sprintf("job%d-%s", i, testhelpers.GenJobId(rng))
		jobs[i] = GenRandomJob(id, rng)
	}
	return jobs
}

// Wrapper function that Generates a ResourceRequirement for Property Based Tests
func GopterGenResourceRequirement() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		return gopter.NewGenResult(GenRandomResourceRequirement(genParams.Rng), gopter.NoShrinker)
	}
}

// Wrapper function that Generates a slice of up to 200 Jobs with distinct Ids
// for Property Based Tests
func GopterGenJobs() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		numJobs := genParams.Rng.Intn(200)
		return gopter.NewGenResult(GenRandomJobs(numJobs, genParams.Rng), gopter.NoShrinker)
	}
}
