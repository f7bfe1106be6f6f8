package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrOutcome = "outcome"
)

// Row outcomes recorded during ingestion.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)
