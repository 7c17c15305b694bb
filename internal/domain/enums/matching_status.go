package enums

// ResponseStatus is the state of one incubator's answer inside a request.
type ResponseStatus string

const (
	ResponsePending    ResponseStatus = "pending"
	ResponseInterested ResponseStatus = "interested"
	ResponseRejected   ResponseStatus = "rejected"
)

// ParseDecision accepts only the two statuses an incubator may submit.
// "pending" is the creation-time default, never a valid decision.
func ParseDecision(raw string) (ResponseStatus, bool) {
	switch ResponseStatus(raw) {
	case ResponseInterested, ResponseRejected:
		return ResponseStatus(raw), true
	default:
		return "", false
	}
}

// RequestStatus is the lifecycle state of a matching request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in-progress"
	RequestMatched    RequestStatus = "matched"
	RequestRejected   RequestStatus = "rejected"
)
