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
	ErrTrainerNotFound        = errors.New("trainer not found")
	ErrSpecializationNotFound = errors.New("specialization not found")
)

// CreateTrainerRequest carries the fields for trainer registration.
// The specialization must already exist in the catalogue.
type CreateTrainerRequest struct {
	FirstName        string             `json:"firstName"`
	LastName         string             `json:"lastName"`
	SpecializationID primitive.ObjectID `json:"specializationId"`
}

// UpdateTrainerRequest carries a partial profile update. The
// specialization stays as created unless explicitly changed here.
type UpdateTrainerRequest struct {
	FirstName        *string             `json:"firstName,omitempty"`
	LastName         *string             `json:"lastName,omitempty"`
	IsActive         *bool               `json:"isActive,omitempty"`
	SpecializationID *primitive.ObjectID `json:"specializationId,omitempty"`
}

// TraineeSummary is the trainee view embedded in trainer profiles.
type TraineeSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TrainerProfile is the full trainer view, including the back-reference
// set of trainees derived from rosters.
type TrainerProfile struct {
	Username       string           `json:"username"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Specialization string           `json:"specialization"`
	IsActive       bool             `json:"isActive"`
	Trainees       []TraineeSummary `json:"trainees"`
}

// TrainerService covers registration and profile mutation for trainers.
type TrainerService interface {
	Create(ctx context.Context, req CreateTrainerRequest) (*Credentials, error)
	GetProfile(ctx context.Context, token string) (*TrainerProfile, error)
	UpdateProfile(ctx context.Context, token string, req UpdateTrainerRequest) (*TrainerProfile, error)
	ChangePassword(ctx context.Context, token, newPassword string) error
	ToggleStatus(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	trainerRepo      repository.TrainerRepository
	traineeRepo      repository.TraineeRepository
	trainingRepo     repository.TrainingRepository
	trainingTypeRepo repository.TrainingTypeRepository
	auth             AuthService
	logger           *zap.Logger
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	trainerRepo repository.TrainerRepository,
	traineeRepo repository.TraineeRepository,
	trainingRepo repository.TrainingRepository,
	trainingTypeRepo repository.TrainingTypeRepository,
	auth AuthService,
	logger *zap.Logger,
) TrainerService {
	return &trainerService{
		trainerRepo:      trainerRepo,
		traineeRepo:      traineeRepo,
		trainingRepo:     trainingRepo,
		trainingTypeRepo: trainingTypeRepo,
		auth:             auth,
		logger:           logger,
	}
}

// Create registers a new trainer against an existing specialization and
// returns the issued credentials once.
func (s *trainerService) Create(ctx context.Context, req CreateTrainerRequest) (*Credentials, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	if _, err := s.trainingTypeRepo.GetByID(ctx, req.SpecializationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpecializationNotFound
		}
		return nil, err
	}

	existing, err := allUsernames(ctx, s.traineeRepo, s.trainerRepo)
	if err != nil {
		return nil, err
	}
	username, err := GenerateUsername(req.FirstName, req.LastName, existing)
	if err != nil {
		return nil, err
	}
	password := GeneratePassword(PasswordLength)

	trainer := &domain.Trainer{
		User: domain.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  username,
			Password:  password,
			IsActive:  true,
		},
		SpecializationID: req.SpecializationID,
	}

	if _, err := s.trainerRepo.Create(ctx, trainer); err != nil {
		return nil, err
	}

	log.Info("trainer created", zap.String("username", username))
	return &Credentials{Username: username, Password: password}, nil
}

// GetProfile returns the authenticated trainer's profile with the
// derived trainee set.
func (s *trainerService) GetProfile(ctx context.Context, token string) (*TrainerProfile, error) {
	trainer, err := s.authenticatedTrainer(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, trainer)
}

// UpdateProfile applies a partial update, regenerating the username when
// the effective name changes.
func (s *trainerService) UpdateProfile(ctx context.Context, token string, req UpdateTrainerRequest) (*TrainerProfile, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainer, err := s.authenticatedTrainer(ctx, token)
	if err != nil {
		return nil, err
	}

	newFirst := trainer.FirstName
	newLast := trainer.LastName
	if req.FirstName != nil {
		newFirst = *req.FirstName
	}
	if req.LastName != nil {
		newLast = *req.LastName
	}

	if newFirst != trainer.FirstName || newLast != trainer.LastName {
		existing, err := allUsernames(ctx, s.traineeRepo, s.trainerRepo)
		if err != nil {
			return nil, err
		}
		username, err := GenerateUsername(newFirst, newLast, withoutUsername(existing, trainer.Username))
		if err != nil {
			return nil, err
		}
		log.Info("trainer renamed, username regenerated",
			zap.String("oldUsername", trainer.Username), zap.String("newUsername", username))
		trainer.Username = username
	}

	trainer.FirstName = newFirst
	trainer.LastName = newLast
	if req.IsActive != nil {
		trainer.IsActive = *req.IsActive
	}
	if req.SpecializationID != nil {
		if _, err := s.trainingTypeRepo.GetByID(ctx, *req.SpecializationID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSpecializationNotFound
			}
			return nil, err
		}
		trainer.SpecializationID = *req.SpecializationID
	}

	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, err
	}

	log.Info("trainer profile updated", zap.String("username", trainer.Username))
	return s.profileOf(ctx, trainer)
}

// ChangePassword rotates the trainer's password after the fixed-length
// check.
func (s *trainerService) ChangePassword(ctx context.Context, token, newPassword string) error {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainer, err := s.authenticatedTrainer(ctx, token)
	if err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		log.Warn("password validation failed", zap.String("username", trainer.Username))
		return err
	}

	trainer.Password = newPassword
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return err
	}

	log.Info("trainer password changed", zap.String("username", trainer.Username))
	return nil
}

// ToggleStatus flips the active flag and returns the new value.
func (s *trainerService) ToggleStatus(ctx context.Context, token string) (bool, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainer, err := s.authenticatedTrainer(ctx, token)
	if err != nil {
		return false, err
	}

	trainer.IsActive = !trainer.IsActive
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return false, err
	}

	log.Info("trainer status toggled",
		zap.String("username", trainer.Username), zap.Bool("isActive", trainer.IsActive))
	return trainer.IsActive, nil
}

// Delete removes the authenticated trainer unconditionally, cascading to
// its trainings and pulling it from every trainee roster.
func (s *trainerService) Delete(ctx context.Context, token string) error {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainer, err := s.authenticatedTrainer(ctx, token)
	if err != nil {
		return err
	}

	if err := s.trainingRepo.DeleteByTrainerID(ctx, trainer.ID); err != nil {
		return err
	}
	if err := s.traineeRepo.RemoveTrainerFromRosters(ctx, trainer.ID); err != nil {
		return err
	}
	if err := s.trainerRepo.Delete(ctx, trainer.ID); err != nil {
		return err
	}

	log.Info("trainer deleted", zap.String("username", trainer.Username))
	return nil
}

// authenticatedTrainer resolves the credential token to a trainer
// record. A token belonging to a trainee is rejected as unauthorized.
func (s *trainerService) authenticatedTrainer(ctx context.Context, token string) (*domain.Trainer, error) {
	identity, err := s.auth.AuthenticateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity.Kind != domain.KindTrainer {
		return nil, ErrUnauthorized
	}

	trainer, err := s.trainerRepo.GetByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

func (s *trainerService) profileOf(ctx context.Context, trainer *domain.Trainer) (*TrainerProfile, error) {
	trainees, err := s.traineeRepo.GetByTrainerID(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]TraineeSummary, len(trainees))
	for i, trainee := range trainees {
		summaries[i] = TraineeSummary{
			Username:  trainee.Username,
			FirstName: trainee.FirstName,
			LastName:  trainee.LastName,
		}
	}

	// A dangling specialization reference renders empty; any other
	// lookup failure is a real error and propagates.
	specialization := ""
	trainingType, err := s.trainingTypeRepo.GetByID(ctx, trainer.SpecializationID)
	switch {
	case err == nil:
		specialization = trainingType.Name
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	return &TrainerProfile{
		Username:       trainer.Username,
		FirstName:      trainer.FirstName,
		LastName:       trainer.LastName,
		Specialization: specialization,
		IsActive:       trainer.IsActive,
		Trainees:       summaries,
	}, nil
}
