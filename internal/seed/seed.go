// Package seed loads initial catalogue and demo data from JSON files at
// startup. Records that already exist (by unique name or username) are
// skipped, so seeding is safe to repeat across restarts.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/config"
	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Loader wires the repositories needed to insert seed data.
type Loader struct {
	TraineeRepo      repository.TraineeRepository
	TrainerRepo      repository.TrainerRepository
	TrainingRepo     repository.TrainingRepository
	TrainingTypeRepo repository.TrainingTypeRepository
	Logger           *zap.Logger
}

type seedTrainee struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	IsActive    bool       `json:"isActive"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Address     string     `json:"address,omitempty"`
}

type seedTrainer struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	IsActive       bool   `json:"isActive"`
	Specialization string `json:"specialization"`
}

type seedTraining struct {
	TraineeUsername  string    `json:"traineeUsername"`
	TrainerUsername  string    `json:"trainerUsername"`
	TrainingName     string    `json:"trainingName"`
	TrainingTypeName string    `json:"trainingTypeName"`
	Date             time.Time `json:"trainingDate"`
	Duration         int       `json:"trainingDuration"`
}

// Run loads every configured seed file in dependency order: types,
// then principals, then trainings. A malformed file aborts startup.
func (l *Loader) Run(ctx context.Context, cfg config.SeedConfig) error {
	if err := l.loadTrainingTypes(ctx, cfg.TrainingTypesFile); err != nil {
		return fmt.Errorf("seed training types: %w", err)
	}
	if err := l.loadTrainees(ctx, cfg.TraineesFile); err != nil {
		return fmt.Errorf("seed trainees: %w", err)
	}
	if err := l.loadTrainers(ctx, cfg.TrainersFile); err != nil {
		return fmt.Errorf("seed trainers: %w", err)
	}
	if err := l.loadTrainings(ctx, cfg.TrainingsFile); err != nil {
		return fmt.Errorf("seed trainings: %w", err)
	}
	return nil
}

func (l *Loader) loadTrainingTypes(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	var names []string
	if err := readJSON(path, &names); err != nil {
		return err
	}
	for _, name := range names {
		_, err := l.TrainingTypeRepo.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := l.TrainingTypeRepo.Create(ctx, &domain.TrainingType{Name: name}); err != nil {
			return err
		}
		l.Logger.Info("seeded training type", zap.String("name", name))
	}
	return nil
}

func (l *Loader) loadTrainees(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	var records []seedTrainee
	if err := readJSON(path, &records); err != nil {
		return err
	}
	for _, rec := range records {
		_, err := l.TraineeRepo.GetByUsername(ctx, rec.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		trainee := &domain.Trainee{
			User: domain.User{
				FirstName: rec.FirstName,
				LastName:  rec.LastName,
				Username:  rec.Username,
				Password:  rec.Password,
				IsActive:  rec.IsActive,
			},
			DateOfBirth: rec.DateOfBirth,
			Address:     rec.Address,
		}
		if _, err := l.TraineeRepo.Create(ctx, trainee); err != nil {
			return err
		}
		l.Logger.Info("seeded trainee", zap.String("username", rec.Username))
	}
	return nil
}

func (l *Loader) loadTrainers(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	var records []seedTrainer
	if err := readJSON(path, &records); err != nil {
		return err
	}
	for _, rec := range records {
		_, err := l.TrainerRepo.GetByUsername(ctx, rec.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		trainingType, err := l.TrainingTypeRepo.GetByName(ctx, rec.Specialization)
		if err != nil {
			return fmt.Errorf("trainer %s: specialization %q: %w", rec.Username, rec.Specialization, err)
		}
		trainer := &domain.Trainer{
			User: domain.User{
				FirstName: rec.FirstName,
				LastName:  rec.LastName,
				Username:  rec.Username,
				Password:  rec.Password,
				IsActive:  rec.IsActive,
			},
			SpecializationID: trainingType.ID,
		}
		if _, err := l.TrainerRepo.Create(ctx, trainer); err != nil {
			return err
		}
		l.Logger.Info("seeded trainer", zap.String("username", rec.Username))
	}
	return nil
}

func (l *Loader) loadTrainings(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	var records []seedTraining
	if err := readJSON(path, &records); err != nil {
		return err
	}
	for _, rec := range records {
		trainee, err := l.TraineeRepo.GetByUsername(ctx, rec.TraineeUsername)
		if err != nil {
			return fmt.Errorf("training %q: trainee %q: %w", rec.TrainingName, rec.TraineeUsername, err)
		}
		exists, err := l.trainingExists(ctx, trainee.ID, rec)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		trainer, err := l.TrainerRepo.GetByUsername(ctx, rec.TrainerUsername)
		if err != nil {
			return fmt.Errorf("training %q: trainer %q: %w", rec.TrainingName, rec.TrainerUsername, err)
		}
		trainingType, err := l.TrainingTypeRepo.GetByName(ctx, rec.TrainingTypeName)
		if err != nil {
			return fmt.Errorf("training %q: type %q: %w", rec.TrainingName, rec.TrainingTypeName, err)
		}

		training := &domain.Training{
			TraineeID:      trainee.ID,
			TrainerID:      trainer.ID,
			TrainingTypeID: trainingType.ID,
			Name:           rec.TrainingName,
			Date:           rec.Date,
			Duration:       rec.Duration,
		}
		if _, err := l.TrainingRepo.Create(ctx, training); err != nil {
			return err
		}
		// Seeded trainings imply roster edges the same way recorded ones do.
		if !trainee.HasTrainer(trainer.ID) {
			if err := l.TraineeRepo.AddTrainersToRoster(ctx, trainee.ID, []primitive.ObjectID{trainer.ID}); err != nil {
				return err
			}
		}
	}
	return nil
}

// trainingExists checks for a same-named training of the trainee on the
// same date, which is how a re-run recognizes its own earlier inserts.
func (l *Loader) trainingExists(ctx context.Context, traineeID primitive.ObjectID, rec seedTraining) (bool, error) {
	existing, err := l.TrainingRepo.Find(ctx, repository.TrainingFilter{
		TraineeID: &traineeID,
		From:      &rec.Date,
		To:        &rec.Date,
	})
	if err != nil {
		return false, err
	}
	for _, t := range existing {
		if t.Name == rec.TrainingName {
			return true, nil
		}
	}
	return false, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
