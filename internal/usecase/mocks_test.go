package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
	"github.com/ascendhq/concierge-api/internal/infra/token"
)

// MockConsultationRepository
type MockConsultationRepository struct {
	mock.Mock
}

func (m *MockConsultationRepository) Create(ctx context.Context, c *entity.ConsultationRequest) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsultationRepository) FindByID(ctx context.Context, id string) (*entity.ConsultationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ConsultationRequest), args.Error(1)
}

func (m *MockConsultationRepository) List(ctx context.Context, status string) ([]*entity.ConsultationRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ConsultationRequest), args.Error(1)
}

func (m *MockConsultationRepository) Update(ctx context.Context, c *entity.ConsultationRequest) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsultationRepository) MarkTokenUsed(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// MockOnboardingRepository
type MockOnboardingRepository struct {
	mock.Mock
}

func (m *MockOnboardingRepository) Upsert(ctx context.Context, rec *entity.OnboardingRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockOnboardingRepository) FindByID(ctx context.Context, id string) (*entity.OnboardingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OnboardingRecord), args.Error(1)
}

func (m *MockOnboardingRepository) FindByUserID(ctx context.Context, userID string) (*entity.OnboardingRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OnboardingRecord), args.Error(1)
}

func (m *MockOnboardingRepository) Update(ctx context.Context, rec *entity.OnboardingRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockStrategyCallRepository
type MockStrategyCallRepository struct {
	mock.Mock
}

func (m *MockStrategyCallRepository) Create(ctx context.Context, c *entity.StrategyCall) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStrategyCallRepository) FindByID(ctx context.Context, id string) (*entity.StrategyCall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StrategyCall), args.Error(1)
}

func (m *MockStrategyCallRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.StrategyCall, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.StrategyCall), args.Error(1)
}

func (m *MockStrategyCallRepository) Update(ctx context.Context, c *entity.StrategyCall) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockInterviewRepository
type MockInterviewRepository struct {
	mock.Mock
}

func (m *MockInterviewRepository) Create(ctx context.Context, iv *entity.Interview) error {
	args := m.Called(ctx, iv)
	return args.Error(0)
}

func (m *MockInterviewRepository) FindByID(ctx context.Context, id string) (*entity.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Interview), args.Error(1)
}

func (m *MockInterviewRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Interview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Interview), args.Error(1)
}

func (m *MockInterviewRepository) Update(ctx context.Context, iv *entity.Interview) error {
	args := m.Called(ctx, iv)
	return args.Error(0)
}

func (m *MockInterviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, job queue.NotificationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockTokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) NewRegistrationToken(consultationID, email string) (string, time.Time, error) {
	args := m.Called(consultationID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ParseRegistrationToken(raw string) (*token.RegistrationClaims, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.RegistrationClaims), args.Error(1)
}

func (m *MockTokenService) NewSessionToken(u *entity.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}
