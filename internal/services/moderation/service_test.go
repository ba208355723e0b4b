package moderation

import (
	"context"
	"testing"
	"time"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"
	"saudapakka/internal/services/property"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(p *models.Property) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPropertyRepo) GetByID(id uuid.UUID) (*models.Property, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepo) Update(p *models.Property) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPropertyRepo) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPropertyRepo) List(scopes ...repositories.Scope) ([]models.Property, error) {
	args := m.Called(len(scopes))
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepo) ListPaginated(offset, limit int, scopes ...repositories.Scope) ([]models.Property, int64, error) {
	args := m.Called(offset, limit, len(scopes))
	return args.Get(0).([]models.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepo) CountByStatus() (map[string]int64, error) {
	args := m.Called()
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetOrCreateByEmail(email string) (*models.User, bool, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepo) List(roleFilter string, offset, limit int) ([]models.User, int64, error) {
	args := m.Called(roleFilter, offset, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) Search(query, roleFilter string) ([]models.User, error) {
	args := m.Called(query, roleFilter)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepo) SetActive(id uuid.UUID, active bool) error {
	args := m.Called(id, active)
	return args.Error(0)
}

func (m *MockUserRepo) CountAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) CountSellers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) CountBrokers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) CountCreatedSince(t time.Time) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

type MockModerationRepo struct {
	mock.Mock
}

func (m *MockModerationRepo) AppendDecision(d *models.ModerationDecision) error {
	args := m.Called(d)
	return args.Error(0)
}

func (m *MockModerationRepo) DecisionsForProperty(propertyID uuid.UUID) ([]models.ModerationDecision, error) {
	args := m.Called(propertyID)
	return args.Get(0).([]models.ModerationDecision), args.Error(1)
}

func superuser() models.Principal {
	return models.Principal{
		ID:            uuid.New(),
		Email:         "admin@example.com",
		Authenticated: true,
		IsStaff:       true,
		IsSuperuser:   true,
	}
}

func newTestService(props *MockPropertyRepo, users *MockUserRepo, audit *MockModerationRepo) Service {
	return NewService(props, users, audit, property.NoopListingCache{})
}

func TestModerationService_Decide(t *testing.T) {
	propID := uuid.New()

	tests := []struct {
		name       string
		action     string
		reason     string
		setupMock  func(*MockPropertyRepo, *MockModerationRepo)
		wantStatus string
		wantErr    error
	}{
		{
			name:   "approve publishes and clears the reason",
			action: ActionApprove,
			setupMock: func(props *MockPropertyRepo, audit *MockModerationRepo) {
				props.On("GetByID", propID).Return(&models.Property{
					ID:                 propID,
					Title:              "Lakefront plot",
					VerificationStatus: models.VerificationRejected,
					RejectionReason:    "missing 7/12 extract",
				}, nil)
				props.On("Update", mock.AnythingOfType("*models.Property")).
					Run(func(args mock.Arguments) {
						p := args.Get(0).(*models.Property)
						assert.Equal(t, models.VerificationVerified, p.VerificationStatus)
						assert.Empty(t, p.RejectionReason)
					}).Return(nil)
				audit.On("AppendDecision", mock.AnythingOfType("*models.ModerationDecision")).Return(nil)
			},
			wantStatus: models.VerificationVerified,
		},
		{
			name:   "reject records the reason",
			action: ActionReject,
			reason: "documents do not match the address",
			setupMock: func(props *MockPropertyRepo, audit *MockModerationRepo) {
				props.On("GetByID", propID).Return(&models.Property{
					ID:                 propID,
					Title:              "Lakefront plot",
					VerificationStatus: models.VerificationVerified,
				}, nil)
				props.On("Update", mock.AnythingOfType("*models.Property")).
					Run(func(args mock.Arguments) {
						p := args.Get(0).(*models.Property)
						assert.Equal(t, models.VerificationRejected, p.VerificationStatus)
						assert.Equal(t, "documents do not match the address", p.RejectionReason)
					}).Return(nil)
				audit.On("AppendDecision", mock.AnythingOfType("*models.ModerationDecision")).Return(nil)
			},
			wantStatus: models.VerificationRejected,
		},
		{
			name:   "reject with empty reason is allowed",
			action: ActionReject,
			setupMock: func(props *MockPropertyRepo, audit *MockModerationRepo) {
				props.On("GetByID", propID).Return(&models.Property{
					ID: propID, Title: "Lakefront plot",
					VerificationStatus: models.VerificationPending,
				}, nil)
				props.On("Update", mock.Anything).Return(nil)
				audit.On("AppendDecision", mock.Anything).Return(nil)
			},
			wantStatus: models.VerificationRejected,
		},
		{
			name:   "unknown action is invalid",
			action: "ESCALATE",
			setupMock: func(props *MockPropertyRepo, audit *MockModerationRepo) {
				props.On("GetByID", propID).Return(&models.Property{
					ID: propID, Title: "Lakefront plot",
					VerificationStatus: models.VerificationPending,
				}, nil)
			},
			wantErr: ErrInvalidAction,
		},
		{
			name:   "unknown property",
			action: ActionApprove,
			setupMock: func(props *MockPropertyRepo, audit *MockModerationRepo) {
				props.On("GetByID", propID).Return(nil, repositories.ErrPropertyNotFound)
			},
			wantErr: property.ErrNotFound,
		},
		{
			// The id resolves before the action token is checked, so a
			// bad action on a missing listing still reads as NotFound.
			name:   "unknown property wins over unknown action",
			action: "ESCALATE",
			setupMock: func(props *MockPropertyRepo, audit *MockModerationRepo) {
				props.On("GetByID", propID).Return(nil, repositories.ErrPropertyNotFound)
			},
			wantErr: property.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := new(MockPropertyRepo)
			audit := new(MockModerationRepo)
			if tt.setupMock != nil {
				tt.setupMock(props, audit)
			}

			s := newTestService(props, new(MockUserRepo), audit)
			decision, err := s.Decide(context.Background(), superuser(), propID, tt.action, tt.reason)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, decision.Status)
			}
			props.AssertExpectations(t)
			audit.AssertExpectations(t)
		})
	}
}

func TestModerationService_RequiresSuperuser(t *testing.T) {
	s := newTestService(new(MockPropertyRepo), new(MockUserRepo), new(MockModerationRepo))
	propID := uuid.New()

	// The staff flag widens read visibility but does not grant
	// moderation rights.
	staff := models.Principal{ID: uuid.New(), Authenticated: true, IsStaff: true}

	_, err := s.Decide(context.Background(), staff, propID, ActionApprove, "")
	assert.ErrorIs(t, err, property.ErrModeratorRequired)

	_, _, err = s.ListByStatus(context.Background(), staff, "", 0, 20)
	assert.ErrorIs(t, err, property.ErrModeratorRequired)

	_, err = s.Stats(context.Background(), staff)
	assert.ErrorIs(t, err, property.ErrModeratorRequired)

	err = s.SetUserBlocked(context.Background(), staff, uuid.New(), ActionBlock)
	assert.ErrorIs(t, err, property.ErrModeratorRequired)

	_, err = s.Decide(context.Background(), models.AnonymousPrincipal(), propID, ActionApprove, "")
	assert.ErrorIs(t, err, property.ErrUnauthenticated)
}

func TestModerationService_ListByStatus(t *testing.T) {
	props := new(MockPropertyRepo)
	// Empty status defaults to the PENDING review queue; two scopes:
	// status filter plus newest-first ordering.
	props.On("ListPaginated", 0, 20, 2).Return([]models.Property{
		{ID: uuid.New(), VerificationStatus: models.VerificationPending},
	}, int64(1), nil)

	s := newTestService(props, new(MockUserRepo), new(MockModerationRepo))
	views, total, err := s.ListByStatus(context.Background(), superuser(), "", 0, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, views, 1)
	props.AssertExpectations(t)
}

func TestModerationService_Stats(t *testing.T) {
	users := new(MockUserRepo)
	users.On("CountAll").Return(int64(120), nil)
	users.On("CountSellers").Return(int64(30), nil)
	users.On("CountBrokers").Return(int64(12), nil)
	users.On("CountCreatedSince", mock.AnythingOfType("time.Time")).Return(int64(8), nil)

	props := new(MockPropertyRepo)
	props.On("CountByStatus").Return(map[string]int64{
		models.VerificationPending:  5,
		models.VerificationVerified: 40,
		models.VerificationRejected: 3,
	}, nil)

	s := newTestService(props, users, new(MockModerationRepo))
	stats, err := s.Stats(context.Background(), superuser())

	assert.NoError(t, err)
	assert.Equal(t, int64(120), stats.Users.Total)
	assert.Equal(t, int64(48), stats.Properties.Total)
	assert.Equal(t, int64(5), stats.Properties.Pending)
}

func TestModerationService_SetUserBlocked(t *testing.T) {
	userID := uuid.New()

	t.Run("block deactivates the account", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("SetActive", userID, false).Return(nil)

		s := newTestService(new(MockPropertyRepo), users, new(MockModerationRepo))
		err := s.SetUserBlocked(context.Background(), superuser(), userID, ActionBlock)

		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("unblock reactivates the account", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("SetActive", userID, true).Return(nil)

		s := newTestService(new(MockPropertyRepo), users, new(MockModerationRepo))
		err := s.SetUserBlocked(context.Background(), superuser(), userID, ActionUnblock)

		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("unknown action is invalid", func(t *testing.T) {
		s := newTestService(new(MockPropertyRepo), new(MockUserRepo), new(MockModerationRepo))
		err := s.SetUserBlocked(context.Background(), superuser(), userID, "SUSPEND")
		assert.ErrorIs(t, err, ErrInvalidUserAction)
	})
}
