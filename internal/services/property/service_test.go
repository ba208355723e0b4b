package property

import (
	"context"
	"testing"

	"saudapakka/internal/models"
	"saudapakka/internal/repositories"

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

type MockInteractionRepo struct {
	mock.Mock
}

func (m *MockInteractionRepo) ToggleSave(userID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionRepo) RecordView(userID, propertyID uuid.UUID) error {
	args := m.Called(userID, propertyID)
	return args.Error(0)
}

func (m *MockInteractionRepo) SavedProperties(userID uuid.UUID) ([]models.Property, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockInteractionRepo) RecentProperties(userID uuid.UUID, limit int) ([]models.Property, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.Property), args.Error(1)
}

func seller() models.Principal {
	return models.Principal{
		ID:             uuid.New(),
		Email:          "seller@example.com",
		Authenticated:  true,
		IsActiveSeller: true,
	}
}

func validCreateInput() CreateInput {
	return CreateInput{
		Title:        "2BHK near lakefront",
		Price:        4500000,
		PropertyType: models.PropertyTypeFlat,
		ListingType:  models.ListingTypeSell,
		AddressLine:  "12 Lake Road, Nagpur",
	}
}

func TestVisibilityRules(t *testing.T) {
	owner := uuid.New()
	pending := &models.Property{OwnerID: owner, VerificationStatus: models.VerificationPending}
	verified := &models.Property{OwnerID: owner, VerificationStatus: models.VerificationVerified}
	rejected := &models.Property{OwnerID: owner, VerificationStatus: models.VerificationRejected}

	tests := []struct {
		name      string
		principal models.Principal
		prop      *models.Property
		visible   bool
	}{
		{"guest sees verified", models.AnonymousPrincipal(), verified, true},
		{"guest cannot see pending", models.AnonymousPrincipal(), pending, false},
		{"guest cannot see rejected", models.AnonymousPrincipal(), rejected, false},
		{"owner sees own pending", models.Principal{ID: owner, Authenticated: true}, pending, true},
		{"owner sees own rejected", models.Principal{ID: owner, Authenticated: true}, rejected, true},
		{"stranger cannot see pending", models.Principal{ID: uuid.New(), Authenticated: true}, pending, false},
		{"stranger sees verified", models.Principal{ID: uuid.New(), Authenticated: true}, verified, true},
		{"staff sees everything", models.Principal{ID: uuid.New(), Authenticated: true, IsStaff: true}, rejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, CanView(tt.principal, tt.prop))
		})
	}
}

func TestPropertyService_Create(t *testing.T) {
	t.Run("new listings always start pending", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		interactions := new(MockInteractionRepo)
		principal := seller()

		id := uuid.New()
		repo.On("Create", mock.AnythingOfType("*models.Property")).
			Run(func(args mock.Arguments) {
				p := args.Get(0).(*models.Property)
				assert.Equal(t, models.VerificationPending, p.VerificationStatus)
				assert.Equal(t, principal.ID, p.OwnerID)
				p.ID = id
			}).Return(nil)
		repo.On("GetByID", id).Return(&models.Property{
			ID:                 id,
			OwnerID:            principal.ID,
			Title:              "2BHK near lakefront",
			VerificationStatus: models.VerificationPending,
		}, nil)

		s := NewService(repo, interactions, nil)
		view, err := s.Create(context.Background(), principal, validCreateInput())

		assert.NoError(t, err)
		assert.Equal(t, models.VerificationPending, view.VerificationStatus)
		repo.AssertExpectations(t)
	})

	t.Run("guests cannot post", func(t *testing.T) {
		s := NewService(new(MockPropertyRepo), new(MockInteractionRepo), nil)
		_, err := s.Create(context.Background(), models.AnonymousPrincipal(), validCreateInput())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("plain users need the seller or broker role", func(t *testing.T) {
		s := NewService(new(MockPropertyRepo), new(MockInteractionRepo), nil)
		principal := models.Principal{ID: uuid.New(), Authenticated: true}
		_, err := s.Create(context.Background(), principal, validCreateInput())
		assert.ErrorIs(t, err, ErrSellerOrBrokerRequired)
	})

	t.Run("unknown property type is rejected", func(t *testing.T) {
		s := NewService(new(MockPropertyRepo), new(MockInteractionRepo), nil)
		input := validCreateInput()
		input.PropertyType = "CASTLE"
		_, err := s.Create(context.Background(), seller(), input)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPropertyService_Get(t *testing.T) {
	owner := uuid.New()
	propID := uuid.New()
	pending := &models.Property{ID: propID, OwnerID: owner, VerificationStatus: models.VerificationPending}

	tests := []struct {
		name      string
		principal models.Principal
		setupMock func(*MockPropertyRepo)
		wantErr   error
	}{
		{
			name:      "hidden listing reads as missing",
			principal: models.AnonymousPrincipal(),
			setupMock: func(repo *MockPropertyRepo) {
				repo.On("GetByID", propID).Return(pending, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "unknown id reads as missing",
			principal: models.AnonymousPrincipal(),
			setupMock: func(repo *MockPropertyRepo) {
				repo.On("GetByID", propID).Return(nil, repositories.ErrPropertyNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "owner reads own pending listing",
			principal: models.Principal{ID: owner, Authenticated: true},
			setupMock: func(repo *MockPropertyRepo) {
				repo.On("GetByID", propID).Return(pending, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPropertyRepo)
			tt.setupMock(repo)

			s := NewService(repo, new(MockInteractionRepo), nil)
			view, err := s.Get(context.Background(), tt.principal, propID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, propID, view.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPropertyService_Update(t *testing.T) {
	owner := uuid.New()
	propID := uuid.New()

	t.Run("only the owner can patch", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		repo.On("GetByID", propID).Return(&models.Property{
			ID: propID, OwnerID: owner, VerificationStatus: models.VerificationVerified,
		}, nil)

		s := NewService(repo, new(MockInteractionRepo), nil)
		stranger := models.Principal{ID: uuid.New(), Authenticated: true}
		title := "new title"
		_, err := s.Update(context.Background(), stranger, propID, UpdateInput{Title: &title})

		assert.ErrorIs(t, err, ErrNotOwner)
		repo.AssertExpectations(t)
	})

	t.Run("nil fields stay untouched", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		repo.On("GetByID", propID).Return(&models.Property{
			ID:                 propID,
			OwnerID:            owner,
			Title:              "old title",
			Price:              100,
			VerificationStatus: models.VerificationVerified,
		}, nil)
		repo.On("Update", mock.AnythingOfType("*models.Property")).
			Run(func(args mock.Arguments) {
				p := args.Get(0).(*models.Property)
				assert.Equal(t, "old title", p.Title)
				assert.Equal(t, float64(250), p.Price)
			}).Return(nil)

		s := NewService(repo, new(MockInteractionRepo), nil)
		price := float64(250)
		view, err := s.Update(context.Background(),
			models.Principal{ID: owner, Authenticated: true}, propID, UpdateInput{Price: &price})

		assert.NoError(t, err)
		assert.Equal(t, float64(250), view.Price)
		repo.AssertExpectations(t)
	})
}

func TestPropertyService_ToggleSave(t *testing.T) {
	owner := uuid.New()
	propID := uuid.New()
	verified := &models.Property{ID: propID, OwnerID: owner, VerificationStatus: models.VerificationVerified}

	t.Run("toggling twice saves then removes", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		repo.On("GetByID", propID).Return(verified, nil)

		interactions := new(MockInteractionRepo)
		principal := seller()
		interactions.On("ToggleSave", principal.ID, propID).Return(true, nil).Once()
		interactions.On("ToggleSave", principal.ID, propID).Return(false, nil).Once()

		s := NewService(repo, interactions, nil)

		saved, err := s.ToggleSave(context.Background(), principal, propID)
		assert.NoError(t, err)
		assert.True(t, saved)

		saved, err = s.ToggleSave(context.Background(), principal, propID)
		assert.NoError(t, err)
		assert.False(t, saved)

		interactions.AssertExpectations(t)
	})

	t.Run("guests cannot save", func(t *testing.T) {
		s := NewService(new(MockPropertyRepo), new(MockInteractionRepo), nil)
		_, err := s.ToggleSave(context.Background(), models.AnonymousPrincipal(), propID)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("hidden listings cannot be saved", func(t *testing.T) {
		repo := new(MockPropertyRepo)
		repo.On("GetByID", propID).Return(&models.Property{
			ID: propID, OwnerID: owner, VerificationStatus: models.VerificationPending,
		}, nil)

		s := NewService(repo, new(MockInteractionRepo), nil)
		_, err := s.ToggleSave(context.Background(), seller(), propID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPropertyService_RecordView(t *testing.T) {
	propID := uuid.New()
	principal := seller()

	repo := new(MockPropertyRepo)
	repo.On("GetByID", propID).Return(&models.Property{
		ID: propID, OwnerID: uuid.New(), VerificationStatus: models.VerificationVerified,
	}, nil)

	interactions := new(MockInteractionRepo)
	interactions.On("RecordView", principal.ID, propID).Return(nil)

	s := NewService(repo, interactions, nil)
	view, err := s.RecordView(context.Background(), principal, propID)

	assert.NoError(t, err)
	assert.Equal(t, propID, view.ID)
	interactions.AssertExpectations(t)
}

func TestPropertyService_MyRecent(t *testing.T) {
	principal := seller()

	interactions := new(MockInteractionRepo)
	interactions.On("RecentProperties", principal.ID, 10).Return([]models.Property{}, nil)

	s := NewService(new(MockPropertyRepo), interactions, nil)
	views, err := s.MyRecent(context.Background(), principal)

	assert.NoError(t, err)
	assert.Empty(t, views)
	interactions.AssertExpectations(t)
}

func TestView_DocumentAccess(t *testing.T) {
	owner := uuid.New()
	prop := &models.Property{
		ID:                 uuid.New(),
		OwnerID:            owner,
		Doc712:             "s3://docs/712.pdf",
		VerificationStatus: models.VerificationVerified,
	}

	t.Run("guests get trust indicators only", func(t *testing.T) {
		v := NewView(models.AnonymousPrincipal(), prop)
		assert.True(t, v.Has712)
		assert.Nil(t, v.Documents)
	})

	t.Run("owner sees document references", func(t *testing.T) {
		v := NewView(models.Principal{ID: owner, Authenticated: true}, prop)
		assert.NotNil(t, v.Documents)
		assert.Equal(t, "s3://docs/712.pdf", v.Documents.Doc712)
	})
}
