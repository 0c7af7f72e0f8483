package config

// SchedulerConfigs the map of available configurations
var SchedulerConfigs = map[string]string{
	"default":       defaultConfig,
	"local.memory":  localMemory,
	"largest.first": largestFirst,
}

// defaultConfig the configuration values that are used for empty sections of a specific configuration and for tests
const defaultConfig = `{
	"Cluster": {
		"Type": "memory",
		"Nodes": 10,
		"NodeCores": 8,
		"NodeMemory": 17179869184,
		"NodeDisk": 107374182400
	},
	"Queue": {
		"Type": "memory",
		"Order": "ascending"
	},
	"Driver": {
		"Type": "offers",
		"SubmitRate": 0,
		"SubmitBurst": 1,
		"LaunchRetries": 3,
		"IdleBackoffMax": "2s"
	}
}`

// localMemory config for local.memory - !!! make sure this constant is added to SchedulerConfigs map above !!!
const localMemory = `{
	"Cluster": {
		"Type": "memory",
		"Nodes": 4,
		"PreemptableNodes": 1,
		"NodeCores": 4,
		"NodeMemory": 8589934592,
		"NodeDisk": 53687091200
	},
	"Driver": {
		"Type": "offers",
		"SubmitRate": 500,
		"SubmitBurst": 50,
		"LaunchRetries": 2,
		"IdleBackoffMax": "100ms"
	}
}`

// largestFirst config for largest.first - !!! make sure this constant is added to SchedulerConfigs map above !!!
const largestFirst = `{
	"Queue": {
		"Type": "memory",
		"Order": "descending"
	}
}`
