package service

import (
	"context"
	"encoding/base64"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Function-field mocks for the repository interfaces. Tests set only the
// methods they expect; an unexpected call panics on the nil func, which
// is exactly the failure we want.

type mockTraineeRepo struct {
	CreateFunc                   func(ctx context.Context, trainee *domain.Trainee) (primitive.ObjectID, error)
	GetByIDFunc                  func(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error)
	GetByUsernameFunc            func(ctx context.Context, username string) (*domain.Trainee, error)
	GetByIDsFunc                 func(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainee, error)
	UpdateFunc                   func(ctx context.Context, trainee *domain.Trainee) error
	DeleteFunc                   func(ctx context.Context, id primitive.ObjectID) error
	ListUsernamesFunc            func(ctx context.Context) ([]string, error)
	AddTrainersToRosterFunc      func(ctx context.Context, traineeID primitive.ObjectID, trainerIDs []primitive.ObjectID) error
	RemoveTrainerFromRostersFunc func(ctx context.Context, trainerID primitive.ObjectID) error
	GetByTrainerIDFunc           func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Trainee, error)
}

func (m *mockTraineeRepo) Create(ctx context.Context, trainee *domain.Trainee) (primitive.ObjectID, error) {
	return m.CreateFunc(ctx, trainee)
}
func (m *mockTraineeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainee, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTraineeRepo) GetByUsername(ctx context.Context, username string) (*domain.Trainee, error) {
	return m.GetByUsernameFunc(ctx, username)
}
func (m *mockTraineeRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainee, error) {
	return m.GetByIDsFunc(ctx, ids)
}
func (m *mockTraineeRepo) Update(ctx context.Context, trainee *domain.Trainee) error {
	return m.UpdateFunc(ctx, trainee)
}
func (m *mockTraineeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockTraineeRepo) ListUsernames(ctx context.Context) ([]string, error) {
	return m.ListUsernamesFunc(ctx)
}
func (m *mockTraineeRepo) AddTrainersToRoster(ctx context.Context, traineeID primitive.ObjectID, trainerIDs []primitive.ObjectID) error {
	return m.AddTrainersToRosterFunc(ctx, traineeID, trainerIDs)
}
func (m *mockTraineeRepo) RemoveTrainerFromRosters(ctx context.Context, trainerID primitive.ObjectID) error {
	return m.RemoveTrainerFromRostersFunc(ctx, trainerID)
}
func (m *mockTraineeRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Trainee, error) {
	return m.GetByTrainerIDFunc(ctx, trainerID)
}

type mockTrainerRepo struct {
	CreateFunc              func(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByIDFunc             func(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetByUsernameFunc       func(ctx context.Context, username string) (*domain.Trainer, error)
	GetByUsernamesFunc      func(ctx context.Context, usernames []string) ([]domain.Trainer, error)
	GetByIDsFunc            func(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error)
	ListActiveExcludingFunc func(ctx context.Context, excludeIDs []primitive.ObjectID) ([]domain.Trainer, error)
	UpdateFunc              func(ctx context.Context, trainer *domain.Trainer) error
	DeleteFunc              func(ctx context.Context, id primitive.ObjectID) error
	ListUsernamesFunc       func(ctx context.Context) ([]string, error)
}

func (m *mockTrainerRepo) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	return m.CreateFunc(ctx, trainer)
}
func (m *mockTrainerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTrainerRepo) GetByUsername(ctx context.Context, username string) (*domain.Trainer, error) {
	return m.GetByUsernameFunc(ctx, username)
}
func (m *mockTrainerRepo) GetByUsernames(ctx context.Context, usernames []string) ([]domain.Trainer, error) {
	return m.GetByUsernamesFunc(ctx, usernames)
}
func (m *mockTrainerRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error) {
	return m.GetByIDsFunc(ctx, ids)
}
func (m *mockTrainerRepo) ListActiveExcluding(ctx context.Context, excludeIDs []primitive.ObjectID) ([]domain.Trainer, error) {
	return m.ListActiveExcludingFunc(ctx, excludeIDs)
}
func (m *mockTrainerRepo) Update(ctx context.Context, trainer *domain.Trainer) error {
	return m.UpdateFunc(ctx, trainer)
}
func (m *mockTrainerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockTrainerRepo) ListUsernames(ctx context.Context) ([]string, error) {
	return m.ListUsernamesFunc(ctx)
}

type mockTrainingRepo struct {
	CreateFunc            func(ctx context.Context, training *domain.Training) (primitive.ObjectID, error)
	FindFunc              func(ctx context.Context, filter repository.TrainingFilter) ([]domain.Training, error)
	DeleteByTraineeIDFunc func(ctx context.Context, traineeID primitive.ObjectID) error
	DeleteByTrainerIDFunc func(ctx context.Context, trainerID primitive.ObjectID) error
}

func (m *mockTrainingRepo) Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error) {
	return m.CreateFunc(ctx, training)
}
func (m *mockTrainingRepo) Find(ctx context.Context, filter repository.TrainingFilter) ([]domain.Training, error) {
	return m.FindFunc(ctx, filter)
}
func (m *mockTrainingRepo) DeleteByTraineeID(ctx context.Context, traineeID primitive.ObjectID) error {
	return m.DeleteByTraineeIDFunc(ctx, traineeID)
}
func (m *mockTrainingRepo) DeleteByTrainerID(ctx context.Context, trainerID primitive.ObjectID) error {
	return m.DeleteByTrainerIDFunc(ctx, trainerID)
}

type mockTrainingTypeRepo struct {
	CreateFunc    func(ctx context.Context, trainingType *domain.TrainingType) (primitive.ObjectID, error)
	GetByIDFunc   func(ctx context.Context, id primitive.ObjectID) (*domain.TrainingType, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.TrainingType, error)
	ListFunc      func(ctx context.Context) ([]domain.TrainingType, error)
}

func (m *mockTrainingTypeRepo) Create(ctx context.Context, trainingType *domain.TrainingType) (primitive.ObjectID, error) {
	return m.CreateFunc(ctx, trainingType)
}
func (m *mockTrainingTypeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingType, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTrainingTypeRepo) GetByName(ctx context.Context, name string) (*domain.TrainingType, error) {
	return m.GetByNameFunc(ctx, name)
}
func (m *mockTrainingTypeRepo) List(ctx context.Context) ([]domain.TrainingType, error) {
	return m.ListFunc(ctx)
}

// mockAuth bypasses credential checking where a test only cares about
// the resolved identity.
type mockAuth struct {
	AuthenticateFunc      func(ctx context.Context, username, password string) (Identity, error)
	AuthenticateTokenFunc func(ctx context.Context, rawToken string) (Identity, error)
}

func (m *mockAuth) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	return m.AuthenticateFunc(ctx, username, password)
}
func (m *mockAuth) AuthenticateToken(ctx context.Context, rawToken string) (Identity, error) {
	return m.AuthenticateTokenFunc(ctx, rawToken)
}

// okAuth resolves every token to the given identity.
func okAuth(identity Identity) AuthService {
	return &mockAuth{
		AuthenticateTokenFunc: func(ctx context.Context, rawToken string) (Identity, error) {
			return identity, nil
		},
	}
}

// basicToken builds the credential token the way a client would.
func basicToken(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
