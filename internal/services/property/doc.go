/*
Package property implements the listing workflow: creation, role-aware
visibility, filtering, bookmarks and view history.

The service handles all listing-related operations including:
- Create/update/delete with ownership and role gates
- Role-aware visibility (staff / authenticated / anonymous)
- Price, type and free-text filters with caller-chosen ordering
- Save toggle and recently-viewed upserts
- Public listing cache management

Usage:

	svc := property.NewService(propertyRepo, interactionRepo, listingCache)

	created, err := svc.Create(ctx, principal, input)

	listings, err := svc.List(ctx, principal, property.Filter{
	    PriceGTE: &min,
	    Search:   "lake view",
	    Ordering: "-price",
	})

	saved, err := svc.ToggleSave(ctx, principal, propertyID)

Visibility:

Every read goes through the visibility predicate built from the request
principal, first match wins:

 1. staff see everything
 2. authenticated users see VERIFIED listings plus their own
 3. guests see VERIFIED listings only

All branches order by created_at descending unless the caller asks for a
different ordering. New listings always start PENDING; a client-supplied
verification status is ignored.

Error Handling:

The service returns specific errors for different scenarios:
- ErrNotFound: listing id does not resolve
- ErrUnauthenticated: the operation requires a logged-in user
- ErrSellerOrBrokerRequired: create attempted without a seller/broker role
- ErrNotOwner: write attempted by a non-owner
- ErrInvalidInput: malformed fields
*/
package property
