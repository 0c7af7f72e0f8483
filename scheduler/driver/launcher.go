package driver

import (
	"github.com/twitter/offerqueue/scheduler/domain"
)

//go:generate mockgen -source=launcher.go -package=driver -destination=launcher_mock.go

// Launcher is the cluster manager side of offer handling.
type Launcher interface {
	// Starts jobs on the offer's node, accepting the offer.
	Launch(offer Offer, jobs []*domain.Job) error

	// Returns an unused offer to the cluster manager.
	Decline(offer Offer) error
}
