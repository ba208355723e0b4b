package property

import "saudapakka/internal/models"

// CanCreateListing allows authenticated sellers and brokers to post.
func CanCreateListing(p models.Principal) error {
	if !p.Authenticated {
		return ErrUnauthenticated
	}
	if !p.IsActiveSeller && !p.IsActiveBroker {
		return ErrSellerOrBrokerRequired
	}
	return nil
}

// CanModify allows only the owner to change or delete a listing. Reads
// are governed by the visibility predicate, not by this check.
func CanModify(p models.Principal, prop *models.Property) error {
	if !p.Authenticated {
		return ErrUnauthenticated
	}
	if p.ID != prop.OwnerID {
		return ErrNotOwner
	}
	return nil
}

// CanModerate requires the superuser flag. Staff without superuser can
// see every listing but cannot approve or reject.
func CanModerate(p models.Principal) error {
	if !p.Authenticated {
		return ErrUnauthenticated
	}
	if !p.IsSuperuser {
		return ErrModeratorRequired
	}
	return nil
}

// CanSeeDocuments reports whether raw document references may be
// serialized for this principal; everyone else gets the boolean trust
// indicators only.
func CanSeeDocuments(p models.Principal, prop *models.Property) bool {
	if p.IsStaff || p.IsSuperuser {
		return true
	}
	return p.Authenticated && p.ID == prop.OwnerID
}
