package entity

// DispatchOutcome labels what happened to one message crossing the bridge.
type DispatchOutcome string

const (
	OutcomeDispatched    DispatchOutcome = "dispatched"
	OutcomeMalformed     DispatchOutcome = "malformed"
	OutcomeUnrouted      DispatchOutcome = "unrouted"
	OutcomeFailed        DispatchOutcome = "failed"
	OutcomeDelivered     DispatchOutcome = "delivered"
	OutcomeUndeliverable DispatchOutcome = "undeliverable"
)
