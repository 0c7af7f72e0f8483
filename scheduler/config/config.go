package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/offerqueue/scheduler/domain"
	"github.com/twitter/offerqueue/scheduler/driver"
	"github.com/twitter/offerqueue/scheduler/queue"
)

// JSONConfigs holds the raw json sections of a named configuration.
type JSONConfigs struct {
	Cluster ClusterJSONConfig `json:"Cluster"`
	Queue   QueueJSONConfig   `json:"Queue"`
	Driver  DriverJSONConfig  `json:"Driver"`
}

func (c JSONConfigs) String() string {
	return fmt.Sprintf("\n%s\n%s\n%s", c.Cluster, c.Queue, c.Driver)
}

// Simulated cluster: how many nodes make offers and what each node offers.
type ClusterJSONConfig struct {
	Type             string  `json:"Type"`             // memory
	Nodes            int     `json:"Nodes"`            // default to 10
	PreemptableNodes int     `json:"PreemptableNodes"` // of Nodes, default to 0
	NodeCores        float64 `json:"NodeCores"`
	NodeMemory       int64   `json:"NodeMemory"`
	NodeDisk         int64   `json:"NodeDisk"`
}

func (c ClusterJSONConfig) String() string {
	return fmt.Sprintf("ClusterJSONConfig: Type: %s, Nodes: %d, PreemptableNodes: %d, NodeCores: %g, NodeMemory: %d, NodeDisk: %d",
		c.Type, c.Nodes, c.PreemptableNodes, c.NodeCores, c.NodeMemory, c.NodeDisk)
}

type QueueJSONConfig struct {
	Type  string `json:"Type"`  // memory
	Order string `json:"Order"` // ascending or descending, default to ascending
}

func (c QueueJSONConfig) String() string {
	return fmt.Sprintf("QueueJSONConfig: Type: %s, Order: %s", c.Type, c.Order)
}

type DriverJSONConfig struct {
	Type           string  `json:"Type"`           // offers
	SubmitRate     float64 `json:"SubmitRate"`     // jobs per second, 0 for unlimited
	SubmitBurst    int     `json:"SubmitBurst"`    // default to 1
	LaunchRetries  uint64  `json:"LaunchRetries"`  // default to 3
	IdleBackoffMax string  `json:"IdleBackoffMax"` // default to 2s
}

func (c DriverJSONConfig) String() string {
	return fmt.Sprintf("DriverJSONConfig: Type: %s, SubmitRate: %g, SubmitBurst: %d, LaunchRetries: %d, IdleBackoffMax: %s",
		c.Type, c.SubmitRate, c.SubmitBurst, c.LaunchRetries, c.IdleBackoffMax)
}

func GetConfigText(configSelector string) ([]byte, error) {
	configText, ok := SchedulerConfigs[configSelector]
	if !ok {
		keys := make([]string, 0, len(SchedulerConfigs))
		for k := range SchedulerConfigs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("invalid configuration %s, supported values are %v", configSelector, keys)
	}

	return []byte(configText), nil
}

// GetConfig parses the named configuration. Sections whose Type is "" are
// taken from the default configuration.
func GetConfig(configSelector string) (*JSONConfigs, error) {
	defaultConfigText, _ := GetConfigText("default")
	defaultConfig := &JSONConfigs{}
	if err := json.Unmarshal(defaultConfigText, defaultConfig); err != nil {
		return nil, fmt.Errorf("couldn't parse the default config: %v", err)
	}

	configText, err := GetConfigText(configSelector)
	if err != nil {
		return nil, err
	}

	config := &JSONConfigs{}
	if err := json.Unmarshal(configText, config); err != nil {
		return nil, fmt.Errorf("couldn't parse top-level config: %v", err)
	}

	if config.Cluster.Type == "" {
		log.Infof("using default Cluster config")
		config.Cluster = defaultConfig.Cluster
	}
	if config.Queue.Type == "" {
		log.Infof("using default Queue config")
		config.Queue = defaultConfig.Queue
	}
	if config.Driver.Type == "" {
		log.Infof("using default Driver config")
		config.Driver = defaultConfig.Driver
	}

	return config, nil
}

func (c *QueueJSONConfig) CreateQueueConfig() (queue.Config, error) {
	order, err := domain.ParseFootprintOrder(c.Order)
	if err != nil {
		return queue.Config{}, err
	}
	return queue.Config{Order: order}, nil
}

func (c *DriverJSONConfig) CreateDriverConfig() (driver.Config, error) {
	cfg := driver.Config{
		SubmitRate:    c.SubmitRate,
		SubmitBurst:   c.SubmitBurst,
		LaunchRetries: c.LaunchRetries,
	}
	if c.IdleBackoffMax != "" {
		d, err := time.ParseDuration(c.IdleBackoffMax)
		if err != nil {
			return driver.Config{}, fmt.Errorf("invalid IdleBackoffMax %q: %v", c.IdleBackoffMax, err)
		}
		cfg.IdleBackoffMax = d
	}
	return cfg, nil
}

// Offers returns one round of offers, one per node. The last PreemptableNodes
// nodes offer preemptable capacity.
func (c *ClusterJSONConfig) Offers(round int) []driver.Offer {
	offers := make([]driver.Offer, c.Nodes)
	for i := range offers {
		offers[i] = driver.Offer{
			ID:          fmt.Sprintf("offer%d-%d", round, i),
			NodeID:      fmt.Sprintf("inmemory%d", i),
			Cores:       c.NodeCores,
			Memory:      c.NodeMemory,
			Disk:        c.NodeDisk,
			Preemptable: i >= c.Nodes-c.PreemptableNodes,
		}
	}
	return offers
}
