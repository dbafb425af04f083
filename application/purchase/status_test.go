package purchase_test

import (
	"testing"

	apppurchase "github.com/rsetiawan/agrostock/application/purchase"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    constant.PurchaseStatus
		ordered    float64
		deliveries []model.DeliverySummary
		want       constant.PurchaseStatus
	}{
		{
			name:       "no deliveries keeps current status",
			current:    constant.PurchaseStatusApproved,
			ordered:    50,
			deliveries: nil,
			want:       constant.PurchaseStatusApproved,
		},
		{
			name:    "in-transit delivery marks partial",
			current: constant.PurchaseStatusApproved,
			ordered: 50,
			deliveries: []model.DeliverySummary{
				{ID: 1, Status: constant.DeliveryStatusInTransit, TotalQuantity: 20},
			},
			want: constant.PurchaseStatusPartialDelivered,
		},
		{
			name:    "partial completion stays partial while the rest is in transit",
			current: constant.PurchaseStatusApproved,
			ordered: 50,
			deliveries: []model.DeliverySummary{
				{ID: 1, Status: constant.DeliveryStatusCompleted, TotalQuantity: 20},
				{ID: 2, Status: constant.DeliveryStatusInTransit, TotalQuantity: 30},
			},
			want: constant.PurchaseStatusPartialDelivered,
		},
		{
			name:    "delivered total covering the order completes it",
			current: constant.PurchaseStatusPartialDelivered,
			ordered: 50,
			deliveries: []model.DeliverySummary{
				{ID: 1, Status: constant.DeliveryStatusCompleted, TotalQuantity: 20},
				{ID: 2, Status: constant.DeliveryStatusCompleted, TotalQuantity: 30},
			},
			want: constant.PurchaseStatusCompleted,
		},
		{
			name:    "cancelled deliveries already filtered out by the caller",
			current: constant.PurchaseStatusApproved,
			ordered: 50,
			deliveries: []model.DeliverySummary{
				{ID: 1, Status: constant.DeliveryStatusCompleted, TotalQuantity: 50},
			},
			want: constant.PurchaseStatusCompleted,
		},
		{
			name:    "over-delivery still resolves to completed",
			current: constant.PurchaseStatusPartialDelivered,
			ordered: 50,
			deliveries: []model.DeliverySummary{
				{ID: 1, Status: constant.DeliveryStatusCompleted, TotalQuantity: 60},
			},
			want: constant.PurchaseStatusCompleted,
		},
		{
			name:       "zero ordered never completes",
			current:    constant.PurchaseStatusApproved,
			ordered:    0,
			deliveries: nil,
			want:       constant.PurchaseStatusApproved,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := apppurchase.DeriveStatus(tt.current, tt.ordered, tt.deliveries)
			if got != tt.want {
				t.Fatalf("DeriveStatus() = %s, want %s", got, tt.want)
			}
			// Deriving again from the same aggregates must not move the status.
			again := apppurchase.DeriveStatus(got, tt.ordered, tt.deliveries)
			if again != got {
				t.Fatalf("DeriveStatus() not stable: %s then %s", got, again)
			}
		})
	}
}
