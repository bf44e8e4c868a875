package service

import (
	"context"
	"errors"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrTraineeNotFound = errors.New("trainee not found")
)

// CreateTraineeRequest carries the fields for trainee registration.
// Username and password are system-issued, never supplied.
type CreateTraineeRequest struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Address     string     `json:"address,omitempty"`
}

// UpdateTraineeRequest carries a partial profile update. Nil fields are
// left unchanged regardless of the transport verb.
type UpdateTraineeRequest struct {
	FirstName   *string    `json:"firstName,omitempty"`
	LastName    *string    `json:"lastName,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Address     *string    `json:"address,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// TrainerSummary is the trainer view embedded in profiles and roster
// responses.
type TrainerSummary struct {
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization,omitempty"`
}

// TraineeProfile is the full trainee view, including the roster.
type TraineeProfile struct {
	Username    string           `json:"username"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	DateOfBirth *time.Time       `json:"dateOfBirth,omitempty"`
	Address     string           `json:"address,omitempty"`
	IsActive    bool             `json:"isActive"`
	Trainers    []TrainerSummary `json:"trainers"`
}

// TraineeService covers registration and profile mutation for trainees.
// Every operation except Create authenticates the caller from the raw
// credential token before touching anything.
type TraineeService interface {
	Create(ctx context.Context, req CreateTraineeRequest) (*Credentials, error)
	GetProfile(ctx context.Context, token string) (*TraineeProfile, error)
	UpdateProfile(ctx context.Context, token string, req UpdateTraineeRequest) (*TraineeProfile, error)
	ChangePassword(ctx context.Context, token, newPassword string) error
	ToggleStatus(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// traineeService implements the TraineeService interface.
type traineeService struct {
	traineeRepo      repository.TraineeRepository
	trainerRepo      repository.TrainerRepository
	trainingRepo     repository.TrainingRepository
	trainingTypeRepo repository.TrainingTypeRepository
	auth             AuthService
	logger           *zap.Logger
}

// NewTraineeService creates a new instance of traineeService.
func NewTraineeService(
	traineeRepo repository.TraineeRepository,
	trainerRepo repository.TrainerRepository,
	trainingRepo repository.TrainingRepository,
	trainingTypeRepo repository.TrainingTypeRepository,
	auth AuthService,
	logger *zap.Logger,
) TraineeService {
	return &traineeService{
		traineeRepo:      traineeRepo,
		trainerRepo:      trainerRepo,
		trainingRepo:     trainingRepo,
		trainingTypeRepo: trainingTypeRepo,
		auth:             auth,
		logger:           logger,
	}
}

// Create registers a new trainee with a derived username and a random
// ten-character password, and returns both to the caller once.
func (s *traineeService) Create(ctx context.Context, req CreateTraineeRequest) (*Credentials, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	existing, err := allUsernames(ctx, s.traineeRepo, s.trainerRepo)
	if err != nil {
		return nil, err
	}
	username, err := GenerateUsername(req.FirstName, req.LastName, existing)
	if err != nil {
		return nil, err
	}
	password := GeneratePassword(PasswordLength)

	trainee := &domain.Trainee{
		User: domain.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  username,
			Password:  password,
			IsActive:  true,
		},
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	}

	if _, err := s.traineeRepo.Create(ctx, trainee); err != nil {
		return nil, err
	}

	log.Info("trainee created", zap.String("username", username))
	return &Credentials{Username: username, Password: password}, nil
}

// GetProfile returns the authenticated trainee's profile with the roster
// expanded.
func (s *traineeService) GetProfile(ctx context.Context, token string) (*TraineeProfile, error) {
	trainee, err := s.authenticatedTrainee(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, trainee)
}

// UpdateProfile applies a partial update. When the effective first or
// last name differs from the stored one the username is regenerated
// against the full current username set minus the trainee's own handle.
func (s *traineeService) UpdateProfile(ctx context.Context, token string, req UpdateTraineeRequest) (*TraineeProfile, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainee, err := s.authenticatedTrainee(ctx, token)
	if err != nil {
		return nil, err
	}

	newFirst := trainee.FirstName
	newLast := trainee.LastName
	if req.FirstName != nil {
		newFirst = *req.FirstName
	}
	if req.LastName != nil {
		newLast = *req.LastName
	}

	if newFirst != trainee.FirstName || newLast != trainee.LastName {
		existing, err := allUsernames(ctx, s.traineeRepo, s.trainerRepo)
		if err != nil {
			return nil, err
		}
		username, err := GenerateUsername(newFirst, newLast, withoutUsername(existing, trainee.Username))
		if err != nil {
			return nil, err
		}
		log.Info("trainee renamed, username regenerated",
			zap.String("oldUsername", trainee.Username), zap.String("newUsername", username))
		trainee.Username = username
	}

	trainee.FirstName = newFirst
	trainee.LastName = newLast
	if req.DateOfBirth != nil {
		trainee.DateOfBirth = req.DateOfBirth
	}
	if req.Address != nil {
		trainee.Address = *req.Address
	}
	if req.IsActive != nil {
		trainee.IsActive = *req.IsActive
	}

	if err := s.traineeRepo.Update(ctx, trainee); err != nil {
		return nil, err
	}

	log.Info("trainee profile updated", zap.String("username", trainee.Username))
	return s.profileOf(ctx, trainee)
}

// ChangePassword rotates the trainee's password after the fixed-length
// check.
func (s *traineeService) ChangePassword(ctx context.Context, token, newPassword string) error {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainee, err := s.authenticatedTrainee(ctx, token)
	if err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		log.Warn("password validation failed", zap.String("username", trainee.Username))
		return err
	}

	trainee.Password = newPassword
	if err := s.traineeRepo.Update(ctx, trainee); err != nil {
		return err
	}

	log.Info("trainee password changed", zap.String("username", trainee.Username))
	return nil
}

// ToggleStatus flips the active flag and returns the new value. Calling
// it twice restores the original state.
func (s *traineeService) ToggleStatus(ctx context.Context, token string) (bool, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainee, err := s.authenticatedTrainee(ctx, token)
	if err != nil {
		return false, err
	}

	trainee.IsActive = !trainee.IsActive
	if err := s.traineeRepo.Update(ctx, trainee); err != nil {
		return false, err
	}

	log.Info("trainee status toggled",
		zap.String("username", trainee.Username), zap.Bool("isActive", trainee.IsActive))
	return trainee.IsActive, nil
}

// Delete removes the authenticated trainee unconditionally, cascading to
// its trainings. The roster edges live on the trainee document and are
// removed with it.
func (s *traineeService) Delete(ctx context.Context, token string) error {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	trainee, err := s.authenticatedTrainee(ctx, token)
	if err != nil {
		return err
	}

	if err := s.trainingRepo.DeleteByTraineeID(ctx, trainee.ID); err != nil {
		return err
	}
	if err := s.traineeRepo.Delete(ctx, trainee.ID); err != nil {
		return err
	}

	log.Info("trainee deleted", zap.String("username", trainee.Username))
	return nil
}

// authenticatedTrainee resolves the credential token to a trainee
// record. A token belonging to a trainer is rejected as unauthorized,
// not as not-found.
func (s *traineeService) authenticatedTrainee(ctx context.Context, token string) (*domain.Trainee, error) {
	identity, err := s.auth.AuthenticateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity.Kind != domain.KindTrainee {
		return nil, ErrUnauthorized
	}

	trainee, err := s.traineeRepo.GetByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	return trainee, nil
}

func (s *traineeService) profileOf(ctx context.Context, trainee *domain.Trainee) (*TraineeProfile, error) {
	trainers, err := s.trainerRepo.GetByIDs(ctx, trainee.TrainerIDs)
	if err != nil {
		return nil, err
	}
	summaries, err := s.trainerSummaries(ctx, trainers)
	if err != nil {
		return nil, err
	}

	return &TraineeProfile{
		Username:    trainee.Username,
		FirstName:   trainee.FirstName,
		LastName:    trainee.LastName,
		DateOfBirth: trainee.DateOfBirth,
		Address:     trainee.Address,
		IsActive:    trainee.IsActive,
		Trainers:    summaries,
	}, nil
}

func (s *traineeService) trainerSummaries(ctx context.Context, trainers []domain.Trainer) ([]TrainerSummary, error) {
	typeNames, err := trainingTypeNames(ctx, s.trainingTypeRepo)
	if err != nil {
		return nil, err
	}

	summaries := make([]TrainerSummary, len(trainers))
	for i, trainer := range trainers {
		summaries[i] = TrainerSummary{
			Username:       trainer.Username,
			FirstName:      trainer.FirstName,
			LastName:       trainer.LastName,
			Specialization: typeNames[trainer.SpecializationID],
		}
	}
	return summaries, nil
}
