package models

const (
	OrderStatusPlaced    = "Placed"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"

	DelayStatusOnTime = "On Time"
	DelayStatusLate   = "Late"

	// UnassignedLabel is the group key used when a dimension value is null.
	UnassignedLabel = "Unassigned"

	// Currency of all monetary columns.
	Currency = "AED"
)

const (
	SourceLocal    = "local"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

const (
	TopicOrderFacts    = "order_facts"
	TopicExecutiveView = "executive_view"
	TopicManagerView   = "manager_view"
)
