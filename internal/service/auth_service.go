package service

import (
	"context"
	"errors"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	// ErrUnauthorized covers every authentication failure: missing or
	// malformed token, unknown username, absent stored password, or a
	// password mismatch. The kind and message are deliberately identical
	// across those sub-reasons so callers cannot enumerate users; the log
	// lines keep the distinction for diagnostics.
	ErrUnauthorized = errors.New("invalid username or password")
)

// Identity names an authenticated principal.
type Identity struct {
	ID       primitive.ObjectID
	Username string
	Kind     domain.Kind
}

// AuthService verifies credentials against stored trainee and trainer
// records. Read-only; authenticating never mutates state.
type AuthService interface {
	// Authenticate checks a username/password pair. Trainees are
	// consulted before trainers so the lookup order is deterministic.
	Authenticate(ctx context.Context, username, password string) (Identity, error)
	// AuthenticateToken extracts a Basic credential token and then
	// authenticates the pair it carries.
	AuthenticateToken(ctx context.Context, rawToken string) (Identity, error)
}

// authService implements the AuthService interface.
type authService struct {
	traineeRepo repository.TraineeRepository
	trainerRepo repository.TrainerRepository
	logger      *zap.Logger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(traineeRepo repository.TraineeRepository, trainerRepo repository.TrainerRepository, logger *zap.Logger) AuthService {
	return &authService{
		traineeRepo: traineeRepo,
		trainerRepo: trainerRepo,
		logger:      logger,
	}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)), zap.String("username", username))

	trainee, err := s.traineeRepo.GetByUsername(ctx, username)
	if err == nil {
		if trainee.Password == "" || trainee.Password != password {
			log.Warn("authentication failed: incorrect or missing password for trainee")
			return Identity{}, ErrUnauthorized
		}
		log.Info("authentication successful for trainee")
		return Identity{ID: trainee.ID, Username: trainee.Username, Kind: domain.KindTrainee}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Identity{}, err
	}

	trainer, err := s.trainerRepo.GetByUsername(ctx, username)
	if err == nil {
		if trainer.Password == "" || trainer.Password != password {
			log.Warn("authentication failed: incorrect or missing password for trainer")
			return Identity{}, ErrUnauthorized
		}
		log.Info("authentication successful for trainer")
		return Identity{ID: trainer.ID, Username: trainer.Username, Kind: domain.KindTrainer}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Identity{}, err
	}

	log.Warn("authentication failed: username not found")
	return Identity{}, ErrUnauthorized
}

func (s *authService) AuthenticateToken(ctx context.Context, rawToken string) (Identity, error) {
	creds, err := ExtractCredentials(rawToken)
	if err != nil {
		return Identity{}, err
	}
	return s.Authenticate(ctx, creds.Username, creds.Password)
}
