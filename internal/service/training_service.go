package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/domain"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrTrainingTypeNotFound = errors.New("training type not found")
	ErrEmptyTrainerList     = errors.New("trainer usernames list cannot be empty")
	// ErrTrainersUnresolved reports that at least one requested trainer
	// did not resolve, without enumerating which.
	ErrTrainersUnresolved = errors.New("some trainers were not found")
)

// AddTrainingRequest carries the fields for recording a training.
type AddTrainingRequest struct {
	TraineeUsername  string    `json:"traineeUsername"`
	TrainerUsername  string    `json:"trainerUsername"`
	TrainingName     string    `json:"trainingName"`
	TrainingTypeName string    `json:"trainingTypeName"`
	Date             time.Time `json:"trainingDate"`
	Duration         int       `json:"trainingDuration"` // Minutes
}

// TrainingRecord is the caller-facing view of one training.
type TrainingRecord struct {
	TraineeUsername  string    `json:"traineeUsername"`
	TrainerUsername  string    `json:"trainerUsername"`
	TrainingName     string    `json:"trainingName"`
	TrainingTypeName string    `json:"trainingTypeName"`
	Date             time.Time `json:"trainingDate"`
	Duration         int       `json:"trainingDuration"`
}

// TrainingQuery carries the optional history filters. Zero values mean
// "no constraint"; date bounds are inclusive and everything is ANDed.
type TrainingQuery struct {
	From                *time.Time
	To                  *time.Time
	CounterpartUsername string
	TrainingTypeName    string
}

// TrainingService records trainings, answers filtered history queries,
// and maintains the trainee-to-trainers roster.
type TrainingService interface {
	// AddTraining records an immutable training fact on behalf of an
	// authenticated caller of either kind. The first training between a
	// pair not yet linked also places the trainer on the trainee's roster.
	AddTraining(ctx context.Context, token string, req AddTrainingRequest) (*TrainingRecord, error)
	// TraineeTrainings returns the authenticated trainee's history,
	// optionally narrowed by date range, trainer username, and type name.
	TraineeTrainings(ctx context.Context, token string, query TrainingQuery) ([]TrainingRecord, error)
	// TrainerTrainings is the symmetric query for trainers.
	TrainerTrainings(ctx context.Context, token string, query TrainingQuery) ([]TrainingRecord, error)
	// UnassignedActiveTrainers returns active trainers not currently on
	// the authenticated trainee's roster.
	UnassignedActiveTrainers(ctx context.Context, token string) ([]TrainerSummary, error)
	// UpdateTraineeTrainers resolves the usernames and merges them into
	// the trainee's roster. Existing trainers are preserved: despite the
	// operation's transport-level name this is an additive union, not a
	// destructive replace.
	UpdateTraineeTrainers(ctx context.Context, token string, trainerUsernames []string) ([]TrainerSummary, error)
	// TrainingTypes returns the catalogue of training types to an
	// authenticated caller.
	TrainingTypes(ctx context.Context, token string) ([]domain.TrainingType, error)
}

// trainingService implements the TrainingService interface.
type trainingService struct {
	trainingRepo     repository.TrainingRepository
	traineeRepo      repository.TraineeRepository
	trainerRepo      repository.TrainerRepository
	trainingTypeRepo repository.TrainingTypeRepository
	auth             AuthService
	logger           *zap.Logger
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(
	trainingRepo repository.TrainingRepository,
	traineeRepo repository.TraineeRepository,
	trainerRepo repository.TrainerRepository,
	trainingTypeRepo repository.TrainingTypeRepository,
	auth AuthService,
	logger *zap.Logger,
) TrainingService {
	return &trainingService{
		trainingRepo:     trainingRepo,
		traineeRepo:      traineeRepo,
		trainerRepo:      trainerRepo,
		trainingTypeRepo: trainingTypeRepo,
		auth:             auth,
		logger:           logger,
	}
}

func (s *trainingService) AddTraining(ctx context.Context, token string, req AddTrainingRequest) (*TrainingRecord, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	// Recording mutates the roster as a side effect, so it is never open
	// to anonymous callers. Either principal kind may record.
	if _, err := s.auth.AuthenticateToken(ctx, token); err != nil {
		return nil, err
	}

	if req.TraineeUsername == "" || req.TrainerUsername == "" || req.TrainingName == "" {
		return nil, fmt.Errorf("%w: trainee, trainer and training name are required", ErrInvalidArgument)
	}
	if req.Date.IsZero() || req.Duration <= 0 {
		return nil, fmt.Errorf("%w: training date and positive duration are required", ErrInvalidArgument)
	}

	trainee, err := s.traineeRepo.GetByUsername(ctx, req.TraineeUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	trainer, err := s.trainerRepo.GetByUsername(ctx, req.TrainerUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	trainingType, err := s.trainingTypeRepo.GetByName(ctx, req.TrainingTypeName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingTypeNotFound
		}
		return nil, err
	}

	// The relation implied by the training must be reflected in the
	// roster. $addToSet in the repository makes this idempotent even
	// when two trainings for the same new pair land concurrently.
	if !trainee.HasTrainer(trainer.ID) {
		if err := s.traineeRepo.AddTrainersToRoster(ctx, trainee.ID, []primitive.ObjectID{trainer.ID}); err != nil {
			return nil, err
		}
		log.Info("trainer assigned to trainee",
			zap.String("trainer", trainer.Username), zap.String("trainee", trainee.Username))
	}

	training := &domain.Training{
		TraineeID:      trainee.ID,
		TrainerID:      trainer.ID,
		TrainingTypeID: trainingType.ID,
		Name:           req.TrainingName,
		Date:           req.Date,
		Duration:       req.Duration,
	}
	if _, err := s.trainingRepo.Create(ctx, training); err != nil {
		return nil, err
	}

	log.Info("training recorded",
		zap.String("trainingName", req.TrainingName), zap.String("trainee", trainee.Username))

	return &TrainingRecord{
		TraineeUsername:  trainee.Username,
		TrainerUsername:  trainer.Username,
		TrainingName:     training.Name,
		TrainingTypeName: trainingType.Name,
		Date:             training.Date,
		Duration:         training.Duration,
	}, nil
}

func (s *trainingService) TraineeTrainings(ctx context.Context, token string, query TrainingQuery) ([]TrainingRecord, error) {
	identity, err := s.auth.AuthenticateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity.Kind != domain.KindTrainee {
		return nil, ErrUnauthorized
	}

	filter := repository.TrainingFilter{
		TraineeID: &identity.ID,
		From:      query.From,
		To:        query.To,
	}

	if query.CounterpartUsername != "" {
		trainer, err := s.trainerRepo.GetByUsername(ctx, query.CounterpartUsername)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Equality against a nonexistent username matches nothing.
				return []TrainingRecord{}, nil
			}
			return nil, err
		}
		filter.TrainerID = &trainer.ID
	}
	done, err := s.applyTypeFilter(ctx, query.TrainingTypeName, &filter)
	if err != nil {
		return nil, err
	}
	if done {
		return []TrainingRecord{}, nil
	}

	trainings, err := s.trainingRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.toRecords(ctx, trainings)
}

func (s *trainingService) TrainerTrainings(ctx context.Context, token string, query TrainingQuery) ([]TrainingRecord, error) {
	identity, err := s.auth.AuthenticateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity.Kind != domain.KindTrainer {
		return nil, ErrUnauthorized
	}

	filter := repository.TrainingFilter{
		TrainerID: &identity.ID,
		From:      query.From,
		To:        query.To,
	}

	if query.CounterpartUsername != "" {
		trainee, err := s.traineeRepo.GetByUsername(ctx, query.CounterpartUsername)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []TrainingRecord{}, nil
			}
			return nil, err
		}
		filter.TraineeID = &trainee.ID
	}
	done, err := s.applyTypeFilter(ctx, query.TrainingTypeName, &filter)
	if err != nil {
		return nil, err
	}
	if done {
		return []TrainingRecord{}, nil
	}

	trainings, err := s.trainingRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.toRecords(ctx, trainings)
}

func (s *trainingService) UnassignedActiveTrainers(ctx context.Context, token string) ([]TrainerSummary, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

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

	trainers, err := s.trainerRepo.ListActiveExcluding(ctx, trainee.TrainerIDs)
	if err != nil {
		return nil, err
	}

	log.Debug("unassigned active trainers fetched",
		zap.String("trainee", trainee.Username), zap.Int("count", len(trainers)))
	return s.summaries(ctx, trainers)
}

func (s *trainingService) UpdateTraineeTrainers(ctx context.Context, token string, trainerUsernames []string) ([]TrainerSummary, error) {
	log := s.logger.With(zap.String("transactionId", TransactionID(ctx)))

	identity, err := s.auth.AuthenticateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity.Kind != domain.KindTrainee {
		return nil, ErrUnauthorized
	}

	if len(trainerUsernames) == 0 {
		return nil, ErrEmptyTrainerList
	}

	trainee, err := s.traineeRepo.GetByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}

	distinct := dedupe(trainerUsernames)
	trainers, err := s.trainerRepo.GetByUsernames(ctx, distinct)
	if err != nil {
		return nil, err
	}
	if len(trainers) != len(distinct) {
		// Roster stays untouched; no partial merge.
		return nil, ErrTrainersUnresolved
	}

	trainerIDs := make([]primitive.ObjectID, len(trainers))
	for i, trainer := range trainers {
		trainerIDs[i] = trainer.ID
	}
	if err := s.traineeRepo.AddTrainersToRoster(ctx, trainee.ID, trainerIDs); err != nil {
		return nil, err
	}

	log.Info("trainee roster updated", zap.String("trainee", trainee.Username))

	// Re-read to return the merged roster, existing entries included.
	updated, err := s.traineeRepo.GetByID(ctx, trainee.ID)
	if err != nil {
		return nil, err
	}
	roster, err := s.trainerRepo.GetByIDs(ctx, updated.TrainerIDs)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, roster)
}

func (s *trainingService) TrainingTypes(ctx context.Context, token string) ([]domain.TrainingType, error) {
	if _, err := s.auth.AuthenticateToken(ctx, token); err != nil {
		return nil, err
	}
	return s.trainingTypeRepo.List(ctx)
}

// applyTypeFilter resolves a type-name filter onto the repository
// filter. done is true when the name resolves to nothing, meaning the
// whole query matches nothing.
func (s *trainingService) applyTypeFilter(ctx context.Context, typeName string, filter *repository.TrainingFilter) (done bool, err error) {
	if typeName == "" {
		return false, nil
	}
	trainingType, err := s.trainingTypeRepo.GetByName(ctx, typeName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	filter.TrainingTypeID = &trainingType.ID
	return false, nil
}

// toRecords expands the ID references on trainings into usernames and
// type names with batch lookups.
func (s *trainingService) toRecords(ctx context.Context, trainings []domain.Training) ([]TrainingRecord, error) {
	traineeIDs := map[primitive.ObjectID]bool{}
	trainerIDs := map[primitive.ObjectID]bool{}
	for _, t := range trainings {
		traineeIDs[t.TraineeID] = true
		trainerIDs[t.TrainerID] = true
	}

	trainees, err := s.traineeRepo.GetByIDs(ctx, keys(traineeIDs))
	if err != nil {
		return nil, err
	}
	trainers, err := s.trainerRepo.GetByIDs(ctx, keys(trainerIDs))
	if err != nil {
		return nil, err
	}
	typeNames, err := trainingTypeNames(ctx, s.trainingTypeRepo)
	if err != nil {
		return nil, err
	}

	traineeNames := map[primitive.ObjectID]string{}
	for _, t := range trainees {
		traineeNames[t.ID] = t.Username
	}
	trainerNames := map[primitive.ObjectID]string{}
	for _, t := range trainers {
		trainerNames[t.ID] = t.Username
	}

	records := make([]TrainingRecord, len(trainings))
	for i, t := range trainings {
		records[i] = TrainingRecord{
			TraineeUsername:  traineeNames[t.TraineeID],
			TrainerUsername:  trainerNames[t.TrainerID],
			TrainingName:     t.Name,
			TrainingTypeName: typeNames[t.TrainingTypeID],
			Date:             t.Date,
			Duration:         t.Duration,
		}
	}
	return records, nil
}

func (s *trainingService) summaries(ctx context.Context, trainers []domain.Trainer) ([]TrainerSummary, error) {
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

// trainingTypeNames loads the catalogue as an ID-to-name map. The
// catalogue is small and rarely changes, so reloading per call is fine.
func trainingTypeNames(ctx context.Context, repo repository.TrainingTypeRepository) (map[primitive.ObjectID]string, error) {
	types, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

func keys(set map[primitive.ObjectID]bool) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
