// Package moderation implements the admin panel: the listing
// verification state machine, dashboard stats and user management.
// Every operation requires a superuser principal.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"
	"saudapakka/internal/services/property"

	"github.com/google/uuid"
)

// Moderation actions
const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"

	ActionBlock   = "BLOCK"
	ActionUnblock = "UNBLOCK"
)

// Service errors
var (
	ErrInvalidAction     = errors.New("invalid action. Use APPROVE or REJECT")
	ErrInvalidUserAction = errors.New("invalid action. Use BLOCK or UNBLOCK")
)

// Decision is the confirmation returned after a moderation action.
type Decision struct {
	PropertyID uuid.UUID `json:"property_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
}

// DashboardStats aggregates the admin landing page counters.
type DashboardStats struct {
	Users struct {
		Total        int64 `json:"total"`
		Sellers      int64 `json:"sellers"`
		Brokers      int64 `json:"brokers"`
		NewThisMonth int64 `json:"new_this_month"`
	} `json:"users"`
	Properties struct {
		Total    int64 `json:"total"`
		Pending  int64 `json:"pending"`
		Verified int64 `json:"verified"`
		Rejected int64 `json:"rejected"`
	} `json:"properties"`
}

// Service defines the admin moderation interface
type Service interface {
	// Decide applies an APPROVE or REJECT action to a listing.
	Decide(ctx context.Context, principal models.Principal, propertyID uuid.UUID, action, reason string) (*Decision, error)

	// ListByStatus pages listings in a given verification status,
	// newest first.
	ListByStatus(ctx context.Context, principal models.Principal, status string, offset, limit int) ([]property.View, int64, error)

	// History returns the audit trail for a listing, newest first.
	History(ctx context.Context, principal models.Principal, propertyID uuid.UUID) ([]models.ModerationDecision, error)

	Stats(ctx context.Context, principal models.Principal) (*DashboardStats, error)

	ListUsers(ctx context.Context, principal models.Principal, roleFilter string, offset, limit int) ([]models.User, int64, error)

	// SetUserBlocked applies a BLOCK or UNBLOCK action to a user.
	SetUserBlocked(ctx context.Context, principal models.Principal, userID uuid.UUID, action string) error
}

type service struct {
	properties repositories.PropertyRepository
	users      repositories.UserRepository
	audit      repositories.ModerationRepository
	cache      property.ListingCache
}

// NewService creates a new moderation service
func NewService(
	properties repositories.PropertyRepository,
	users repositories.UserRepository,
	audit repositories.ModerationRepository,
	cache property.ListingCache,
) Service {
	if properties == nil {
		panic("property repo is required")
	}
	if users == nil {
		panic("user repo is required")
	}
	if audit == nil {
		panic("moderation repo is required")
	}
	if cache == nil {
		cache = property.NoopListingCache{}
	}
	return &service{
		properties: properties,
		users:      users,
		audit:      audit,
		cache:      cache,
	}
}

func (s *service) Decide(ctx context.Context, principal models.Principal, propertyID uuid.UUID, action, reason string) (*Decision, error) {
	if err := property.CanModerate(principal); err != nil {
		return nil, err
	}

	// Resolve the listing before validating the action token: an
	// unknown id reads as NotFound even when the action is garbage.
	prop, err := s.properties.GetByID(propertyID)
	if err != nil {
		if err == repositories.ErrPropertyNotFound {
			return nil, property.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if action != ActionApprove && action != ActionReject {
		return nil, ErrInvalidAction
	}

	// PENDING, VERIFIED and REJECTED may all move to either decided
	// state; re-setting the current status is a no-op write.
	var message string
	switch action {
	case ActionApprove:
		prop.VerificationStatus = models.VerificationVerified
		prop.RejectionReason = ""
		message = fmt.Sprintf("Property '%s' is now LIVE.", prop.Title)
	case ActionReject:
		prop.VerificationStatus = models.VerificationRejected
		prop.RejectionReason = reason
		message = fmt.Sprintf("Property '%s' rejected.", prop.Title)
	}

	if err := s.properties.Update(prop); err != nil {
		return nil, fmt.Errorf("failed to persist decision: %w", err)
	}

	if err := s.audit.AppendDecision(&models.ModerationDecision{
		PropertyID: prop.ID,
		ReviewerID: principal.ID,
		Action:     action,
		Reason:     reason,
	}); err != nil {
		// The decision itself is persisted; the audit row is not. This
		// must be visible in logs but does not fail the action.
		log.Printf("Failed to append moderation audit row for %s: %v", prop.ID, err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Failed to invalidate listing cache: %v", err)
	}

	return &Decision{
		PropertyID: prop.ID,
		Status:     prop.VerificationStatus,
		Message:    message,
	}, nil
}

func (s *service) ListByStatus(ctx context.Context, principal models.Principal, status string, offset, limit int) ([]property.View, int64, error) {
	if err := property.CanModerate(principal); err != nil {
		return nil, 0, err
	}

	if status == "" {
		status = models.VerificationPending
	}

	props, total, err := s.properties.ListPaginated(offset, limit,
		property.WithStatus(status), property.NewestFirst())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}
	return property.NewViews(principal, props), total, nil
}

func (s *service) History(ctx context.Context, principal models.Principal, propertyID uuid.UUID) ([]models.ModerationDecision, error) {
	if err := property.CanModerate(principal); err != nil {
		return nil, err
	}

	if _, err := s.properties.GetByID(propertyID); err != nil {
		if err == repositories.ErrPropertyNotFound {
			return nil, property.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return s.audit.DecisionsForProperty(propertyID)
}

func (s *service) Stats(ctx context.Context, principal models.Principal) (*DashboardStats, error) {
	if err := property.CanModerate(principal); err != nil {
		return nil, err
	}

	var stats DashboardStats
	var err error

	if stats.Users.Total, err = s.users.CountAll(); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Users.Sellers, err = s.users.CountSellers(); err != nil {
		return nil, fmt.Errorf("failed to count sellers: %w", err)
	}
	if stats.Users.Brokers, err = s.users.CountBrokers(); err != nil {
		return nil, fmt.Errorf("failed to count brokers: %w", err)
	}
	lastMonth := time.Now().AddDate(0, 0, -30)
	if stats.Users.NewThisMonth, err = s.users.CountCreatedSince(lastMonth); err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	counts, err := s.properties.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	stats.Properties.Pending = counts[models.VerificationPending]
	stats.Properties.Verified = counts[models.VerificationVerified]
	stats.Properties.Rejected = counts[models.VerificationRejected]
	stats.Properties.Total = stats.Properties.Pending + stats.Properties.Verified + stats.Properties.Rejected

	return &stats, nil
}

func (s *service) ListUsers(ctx context.Context, principal models.Principal, roleFilter string, offset, limit int) ([]models.User, int64, error) {
	if err := property.CanModerate(principal); err != nil {
		return nil, 0, err
	}
	return s.users.List(roleFilter, offset, limit)
}

func (s *service) SetUserBlocked(ctx context.Context, principal models.Principal, userID uuid.UUID, action string) error {
	if err := property.CanModerate(principal); err != nil {
		return err
	}

	switch action {
	case ActionBlock:
		return s.users.SetActive(userID, false)
	case ActionUnblock:
		return s.users.SetActive(userID, true)
	default:
		return ErrInvalidUserAction
	}
}
