package property

import (
	"time"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInput is the payload for posting a listing. A client-supplied
// verification status is deliberately absent: new listings always start
// PENDING.
type CreateInput struct {
	Title              string                 `json:"title" validate:"required,max=255"`
	Description        string                 `json:"description"`
	Price              float64                `json:"price" validate:"required,gt=0"`
	PropertyType       string                 `json:"property_type" validate:"required"`
	ListingType        string                 `json:"listing_type" validate:"required"`
	AddressLine        string                 `json:"address_line" validate:"required"`
	Latitude           *float64               `json:"latitude"`
	Longitude          *float64               `json:"longitude"`

	// Optional document references uploaded out of band.
	Doc712          string `json:"doc_7_12"`
	DocMojani       string `json:"doc_mojani"`
	DocNAOrder      string `json:"doc_na_order"`
	DocLayoutOrder  string `json:"doc_layout_order"`
	DocLayoutCopy   string `json:"doc_layout_copy"`
	DocBuildingPerm string `json:"doc_building_perm"`
	DocFloorPlan    string `json:"doc_floor_plan"`
}

// UpdateInput is a partial patch; nil fields are left untouched. Owner,
// verification status and rejection reason are not patchable here.
type UpdateInput struct {
	Title              *string                `json:"title" validate:"omitempty,max=255"`
	Description        *string                `json:"description"`
	Price              *float64               `json:"price" validate:"omitempty,gt=0"`
	PropertyType       *string                `json:"property_type"`
	ListingType        *string                `json:"listing_type"`
	AddressLine        *string                `json:"address_line"`
	Latitude           *float64               `json:"latitude"`
	Longitude          *float64               `json:"longitude"`
}

// Filter narrows a visibility-scoped list query. All parts compose as
// logical AND.
type Filter struct {
	PriceGTE     *float64
	PriceLTE     *float64
	PropertyType string
	ListingType  string
	// Search is a case-insensitive substring match OR'd across title,
	// address and description.
	Search string
	// Ordering is one of price, -price, created_at, -created_at;
	// empty means newest first.
	Ordering string
}

// orderings whitelists the caller-specified sort columns.
var orderings = map[string]string{
	"price":       "price ASC",
	"-price":      "price DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

// Scopes translates the filter into query fragments.
func (f Filter) Scopes() []repositories.Scope {
	var scopes []repositories.Scope

	if f.PriceGTE != nil {
		gte := *f.PriceGTE
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("price >= ?", gte)
		})
	}
	if f.PriceLTE != nil {
		lte := *f.PriceLTE
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("price <= ?", lte)
		})
	}
	if f.PropertyType != "" {
		t := f.PropertyType
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("property_type = ?", t)
		})
	}
	if f.ListingType != "" {
		t := f.ListingType
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("listing_type = ?", t)
		})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				db.Session(&gorm.Session{NewDB: true}).
					Where("title ILIKE ?", pattern).
					Or("address_line ILIKE ?", pattern).
					Or("description ILIKE ?", pattern),
			)
		})
	}

	if order, ok := orderings[f.Ordering]; ok {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Order(order)
		})
	} else {
		scopes = append(scopes, NewestFirst())
	}

	return scopes
}

// Documents carries the raw file references, serialized only for the
// owner and staff.
type Documents struct {
	Doc712          string `json:"doc_7_12,omitempty"`
	DocMojani       string `json:"doc_mojani,omitempty"`
	DocNAOrder      string `json:"doc_na_order,omitempty"`
	DocLayoutOrder  string `json:"doc_layout_order,omitempty"`
	DocLayoutCopy   string `json:"doc_layout_copy,omitempty"`
	DocBuildingPerm string `json:"doc_building_perm,omitempty"`
	DocFloorPlan    string `json:"doc_floor_plan,omitempty"`
}

// View is the client-facing shape of a listing. Trust indicators are
// always present; Documents only for principals passing CanSeeDocuments.
type View struct {
	ID                 uuid.UUID              `json:"id"`
	OwnerID            uuid.UUID              `json:"owner_id"`
	OwnerName          string                 `json:"owner_name"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Price              float64                `json:"price"`
	PropertyType       string                 `json:"property_type"`
	ListingType        string                 `json:"listing_type"`
	AddressLine        string                 `json:"address_line"`
	Latitude           *float64               `json:"latitude,omitempty"`
	Longitude          *float64               `json:"longitude,omitempty"`
	VerificationStatus string                 `json:"verification_status"`
	RejectionReason    string                 `json:"rejection_reason,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	Images             []models.PropertyImage `json:"images"`

	// Trust indicators: document presence without content.
	Has712          bool `json:"has_7_12"`
	HasMojani       bool `json:"has_mojani"`
	HasNAOrder      bool `json:"has_na_order"`
	HasLayoutOrder  bool `json:"has_layout_order"`
	HasLayoutCopy   bool `json:"has_layout_copy"`
	HasBuildingPerm bool `json:"has_building_perm"`
	HasFloorPlan    bool `json:"has_floor_plan"`

	Documents *Documents `json:"documents,omitempty"`
}

// NewView serializes a listing for the given principal.
func NewView(p models.Principal, prop *models.Property) View {
	v := View{
		ID:                 prop.ID,
		OwnerID:            prop.OwnerID,
		OwnerName:          prop.Owner.FullName,
		Title:              prop.Title,
		Description:        prop.Description,
		Price:              prop.Price,
		PropertyType:       prop.PropertyType,
		ListingType:        prop.ListingType,
		AddressLine:        prop.AddressLine,
		Latitude:           prop.Latitude,
		Longitude:          prop.Longitude,
		VerificationStatus: prop.VerificationStatus,
		RejectionReason:    prop.RejectionReason,
		CreatedAt:          prop.CreatedAt,
		Images:             prop.Images,

		Has712:          prop.Doc712 != "",
		HasMojani:       prop.DocMojani != "",
		HasNAOrder:      prop.DocNAOrder != "",
		HasLayoutOrder:  prop.DocLayoutOrder != "",
		HasLayoutCopy:   prop.DocLayoutCopy != "",
		HasBuildingPerm: prop.DocBuildingPerm != "",
		HasFloorPlan:    prop.DocFloorPlan != "",
	}
	if v.Images == nil {
		v.Images = []models.PropertyImage{}
	}

	if CanSeeDocuments(p, prop) {
		v.Documents = &Documents{
			Doc712:          prop.Doc712,
			DocMojani:       prop.DocMojani,
			DocNAOrder:      prop.DocNAOrder,
			DocLayoutOrder:  prop.DocLayoutOrder,
			DocLayoutCopy:   prop.DocLayoutCopy,
			DocBuildingPerm: prop.DocBuildingPerm,
			DocFloorPlan:    prop.DocFloorPlan,
		}
	}
	return v
}

// NewViews serializes a result set, preserving order.
func NewViews(p models.Principal, props []models.Property) []View {
	views := make([]View, 0, len(props))
	for i := range props {
		views = append(views, NewView(p, &props[i]))
	}
	return views
}
