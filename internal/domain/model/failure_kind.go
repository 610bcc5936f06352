package model

// FailureKind classifies why an endpoint answered with a Failure.
// It is used for logs and metric labels only; it never appears on the wire.
type FailureKind string

const (
	KindNone             FailureKind = "fulfilled"
	KindMethodNotAllowed FailureKind = "method_not_allowed"
	KindValidation       FailureKind = "validation"
	KindProviderRejected FailureKind = "provider_rejected"
	KindTransport        FailureKind = "transport"
	KindUnhandled        FailureKind = "unhandled"
)

// Fixed messages surfaced to callers.
const (
	MsgBadArgs          = "Bad args in request body"
	MsgProviderFallback = "Paper API returned a bad response"
	MsgTransportFailure = "Fetch failed to call the Paper API."
)
