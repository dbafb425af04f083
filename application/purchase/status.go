package purchase

import (
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
)

// DeriveStatus recomputes a purchase's status from its deliveries. Pure
// function of its inputs: completed when the delivered total covers the
// ordered total, partial_delivered when anything has been delivered or is
// still in transit, otherwise the current status is kept. Cancelled
// deliveries must be filtered out by the caller.
func DeriveStatus(current constant.PurchaseStatus, ordered float64, deliveries []model.DeliverySummary) constant.PurchaseStatus {
	var delivered float64
	inFlight := false

	for _, d := range deliveries {
		switch d.Status {
		case constant.DeliveryStatusCompleted:
			delivered += d.TotalQuantity
		case constant.DeliveryStatusInTransit:
			inFlight = true
		}
	}

	if ordered > 0 && delivered >= ordered {
		return constant.PurchaseStatusCompleted
	}
	if delivered > 0 || inFlight {
		return constant.PurchaseStatusPartialDelivered
	}
	return current
}
