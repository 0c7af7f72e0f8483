package stats

/*
This file defines all the metrics being collected.   As new metrics are added please follow this pattern.
*/

const (
	/****************************** Job queue metrics ****************************************/
	/*
		number of jobs accepted by Insert
	*/
	QueueInsertedJobsCounter = "insertedJobsCounter"

	/*
		number of Insert calls rejected (resource mismatch or duplicate job id)
	*/
	QueueRejectedInsertsCounter = "rejectedInsertsCounter"

	/*
		number of jobs handed out by NextJobOfType
	*/
	QueueDispatchedJobsCounter = "dispatchedJobsCounter"

	/*
		number of NextJobOfType calls for a type with no queued jobs
	*/
	QueueEmptyPollsCounter = "emptyPollsCounter"

	/*
		number of jobs currently queued
	*/
	QueuePendingJobsGauge = "pendingJobsGauge"

	/*
		number of distinct resource requirement types currently queued
	*/
	QueueJobTypesGauge = "jobTypesGauge"

	/*
		time to build the priority ordered list of job types
	*/
	QueueSortedLatency_ms = "sortedLatency_ms"

	/****************************** Offer driver metrics ****************************************/
	/*
		number of jobs submitted through the driver
	*/
	DriverSubmittedJobsCounter = "submittedJobsCounter"

	/*
		number of resource offers received
	*/
	DriverOffersCounter = "offersCounter"

	/*
		number of offers declined because no queued job fit
	*/
	DriverDeclinedOffersCounter = "declinedOffersCounter"

	/*
		number of jobs launched on accepted offers
	*/
	DriverLaunchedJobsCounter = "launchedJobsCounter"

	/*
		number of launches that failed after all retries
	*/
	DriverLaunchFailuresCounter = "launchFailuresCounter"

	/*
		number of jobs put back in the queue after a failed launch
	*/
	DriverRequeuedJobsCounter = "requeuedJobsCounter"

	/*
		number of jobs matched to a single offer
	*/
	DriverJobsPerOfferHistogram = "jobsPerOfferHistogram"

	/*
		time to match and launch a single offer
	*/
	DriverOfferLatency_ms = "offerLatency_ms"
)
