package user

import (
	"context"
	"testing"
	"time"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

type MockKycRepo struct {
	mock.Mock
}

func (m *MockKycRepo) GetOrCreate(userID uuid.UUID) (*models.KycVerification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KycVerification), args.Error(1)
}

func (m *MockKycRepo) GetByUserID(userID uuid.UUID) (*models.KycVerification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KycVerification), args.Error(1)
}

func (m *MockKycRepo) Update(kyc *models.KycVerification) error {
	args := m.Called(kyc)
	return args.Error(0)
}

func (m *MockKycRepo) EnsureBrokerProfile(userID uuid.UUID) (*models.BrokerProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BrokerProfile), args.Error(1)
}

func TestUserService_Profile(t *testing.T) {
	principal := models.Principal{ID: uuid.New(), Authenticated: true}

	t.Run("kyc status defaults to not submitted", func(t *testing.T) {
		users := new(MockUserRepo)
		kyc := new(MockKycRepo)
		users.On("GetByID", principal.ID).Return(&models.User{ID: principal.ID}, nil)
		kyc.On("GetByUserID", principal.ID).Return(nil, repositories.ErrKycNotFound)

		s := NewService(users, kyc)
		profile, err := s.Profile(context.Background(), principal)

		assert.NoError(t, err)
		assert.Equal(t, models.KycStatusNotSubmitted, profile.KycStatus)
	})

	t.Run("kyc status reflects the record", func(t *testing.T) {
		users := new(MockUserRepo)
		kyc := new(MockKycRepo)
		users.On("GetByID", principal.ID).Return(&models.User{ID: principal.ID}, nil)
		kyc.On("GetByUserID", principal.ID).Return(&models.KycVerification{
			UserID: principal.ID,
			Status: models.KycStatusVerified,
		}, nil)

		s := NewService(users, kyc)
		profile, err := s.Profile(context.Background(), principal)

		assert.NoError(t, err)
		assert.Equal(t, models.KycStatusVerified, profile.KycStatus)
	})
}

func TestUserService_UpgradeRole(t *testing.T) {
	principal := models.Principal{ID: uuid.New(), Authenticated: true}

	verifiedKyc := &models.KycVerification{UserID: principal.ID, Status: models.KycStatusVerified}

	tests := []struct {
		name      string
		role      string
		setupMock func(*MockUserRepo, *MockKycRepo)
		check     func(*testing.T, *models.User)
		wantErr   error
	}{
		{
			name: "verified kyc unlocks seller",
			role: RoleSeller,
			setupMock: func(users *MockUserRepo, kyc *MockKycRepo) {
				kyc.On("GetByUserID", principal.ID).Return(verifiedKyc, nil)
				users.On("GetByID", principal.ID).Return(&models.User{ID: principal.ID}, nil)
				users.On("Update", mock.AnythingOfType("*models.User")).Return(nil)
			},
			check: func(t *testing.T, u *models.User) {
				assert.True(t, u.IsActiveSeller)
				assert.False(t, u.IsActiveBroker)
			},
		},
		{
			name: "broker upgrade also creates the broker profile",
			role: RoleBroker,
			setupMock: func(users *MockUserRepo, kyc *MockKycRepo) {
				kyc.On("GetByUserID", principal.ID).Return(verifiedKyc, nil)
				users.On("GetByID", principal.ID).Return(&models.User{ID: principal.ID}, nil)
				users.On("Update", mock.AnythingOfType("*models.User")).Return(nil)
				kyc.On("EnsureBrokerProfile", principal.ID).Return(&models.BrokerProfile{UserID: principal.ID}, nil)
			},
			check: func(t *testing.T, u *models.User) {
				assert.True(t, u.IsActiveBroker)
			},
		},
		{
			name: "pending kyc blocks the upgrade",
			role: RoleSeller,
			setupMock: func(users *MockUserRepo, kyc *MockKycRepo) {
				kyc.On("GetByUserID", principal.ID).Return(&models.KycVerification{
					UserID: principal.ID,
					Status: models.KycStatusPending,
				}, nil)
			},
			wantErr: ErrKycRequired,
		},
		{
			name: "missing kyc blocks the upgrade",
			role: RoleSeller,
			setupMock: func(users *MockUserRepo, kyc *MockKycRepo) {
				kyc.On("GetByUserID", principal.ID).Return(nil, repositories.ErrKycNotFound)
			},
			wantErr: ErrKycRequired,
		},
		{
			name:    "unknown role",
			role:    "LANDLORD",
			wantErr: ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepo)
			kyc := new(MockKycRepo)
			if tt.setupMock != nil {
				tt.setupMock(users, kyc)
			}

			s := NewService(users, kyc)
			upgraded, err := s.UpgradeRole(context.Background(), principal, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				tt.check(t, upgraded)
			}
			users.AssertExpectations(t)
			kyc.AssertExpectations(t)
		})
	}
}

func TestUserService_SearchProfiles(t *testing.T) {
	users := new(MockUserRepo)
	kyc := new(MockKycRepo)

	// Empty role defaults to the broker directory.
	users.On("Search", "ravi", RoleBroker).Return([]models.User{{FullName: "Ravi Deshmukh"}}, nil)

	s := NewService(users, kyc)
	found, err := s.SearchProfiles(context.Background(), "ravi", "")

	assert.NoError(t, err)
	assert.Len(t, found, 1)
	users.AssertExpectations(t)
}
