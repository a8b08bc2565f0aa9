package order

import (
	"github.com/cklam2/canteen/internal/models"
)

// successors is the full transition table. Every order moves forward along
// received → preparing → ready → taken-unpaid → completed; there is no edge
// back and no cancellation. completed is terminal.
var successors = map[models.OrderStatus]models.OrderStatus{
	models.StatusReceived:    models.StatusPreparing,
	models.StatusPreparing:   models.StatusReady,
	models.StatusReady:       models.StatusTakenUnpaid,
	models.StatusTakenUnpaid: models.StatusCompleted,
}

// CanTransition reports whether from → to is a listed edge.
func CanTransition(from, to models.OrderStatus) bool {
	next, ok := successors[from]
	return ok && next == to
}
