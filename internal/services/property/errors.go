package property

import "errors"

// Service errors
var (
	ErrNotFound        = errors.New("property not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotOwner        = errors.New("you are not the owner of this property")
	ErrInvalidInput    = errors.New("invalid property data")

	// ErrSellerOrBrokerRequired gates listing creation. The message is
	// shown to users verbatim so it explains the upgrade path.
	ErrSellerOrBrokerRequired = errors.New(
		"Restricted: You must complete KYC and become a Seller or Broker to post listings.")

	// ErrModeratorRequired gates admin moderation actions, which need
	// a superuser rather than the weaker staff flag.
	ErrModeratorRequired = errors.New("superuser privileges required")
)
