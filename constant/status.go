package constant

// WorkStatus is the lifecycle of field operations (fumigations and harvests).
type WorkStatus string

const (
	WorkStatusPending    WorkStatus = "pending"
	WorkStatusScheduled  WorkStatus = "scheduled"
	WorkStatusInProgress WorkStatus = "in_progress"
	WorkStatusCompleted  WorkStatus = "completed"
	WorkStatusCancelled  WorkStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s WorkStatus) IsTerminal() bool {
	return s == WorkStatusCompleted || s == WorkStatusCancelled
}

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusApproved  TransferStatus = "approved"
	TransferStatusRejected  TransferStatus = "rejected"
	TransferStatusShipped   TransferStatus = "shipped"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

func (s TransferStatus) IsTerminal() bool {
	return s == TransferStatusRejected || s == TransferStatusCompleted || s == TransferStatusCancelled
}

type PurchaseStatus string

const (
	PurchaseStatusPending          PurchaseStatus = "pending"
	PurchaseStatusApproved         PurchaseStatus = "approved"
	PurchaseStatusPartialDelivered PurchaseStatus = "partial_delivered"
	PurchaseStatusCompleted        PurchaseStatus = "completed"
	PurchaseStatusCancelled        PurchaseStatus = "cancelled"
)

// DeliveryStatus is the lifecycle of a single purchase delivery. Each delivery
// transitions independently; the purchase status is derived from the set.
type DeliveryStatus string

const (
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusCompleted DeliveryStatus = "completed"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

type WarehouseStatus int

const (
	WarehouseStatusActive   WarehouseStatus = 1
	WarehouseStatusInactive WarehouseStatus = 2
)
