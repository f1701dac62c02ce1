package domain

// IntentStatus is the lifecycle status of a gateway payment intent.
// Values mirror the gateway's wire strings.
type IntentStatus string

const (
	IntentStatusRequiresConfirmation IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction       IntentStatus = "requires_action"
	IntentStatusRequiresSourceAction IntentStatus = "requires_source_action"
	IntentStatusSucceeded            IntentStatus = "succeeded"
)

// PaymentIntent is the gateway-side record of an attempted charge.
// It is owned by the gateway and never persisted locally.
type PaymentIntent struct {
	ID            string
	Status        IntentStatus
	ClientSecret  string
	PaymentMethod string // id of the attached payment method, if any
	Amount        int64  // minor currency units
	Currency      string
	CustomerID    string
}

// Customer is the gateway-side billing customer a payment method
// is attached to.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// CheckoutSession is everything the client needs to drive the gateway's
// payment UI: the intent to confirm plus a short-lived customer credential.
type CheckoutSession struct {
	PaymentIntentID           string
	PaymentIntentClientSecret string
	EphemeralKeySecret        string
	CustomerID                string
}
