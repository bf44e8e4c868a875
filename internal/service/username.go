package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/NazarVavrushchak/Sports-centre/internal/repository"
)

// --- Error Definitions ---
var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// GenerateUsername derives a unique handle from a first and last name.
//
// The base handle is lowercase "first.last" with surrounding whitespace
// trimmed. The existing set is scanned for the base itself and for the
// base followed immediately by a decimal suffix; if the base is free it
// is returned as-is, otherwise the result is the base plus one more than
// the highest suffix currently in use. Suffixes are derived from the
// usernames that exist right now, so deleting the highest-indexed user
// lets its index be issued again.
//
// Pure function of its inputs; the caller supplies the username set of
// both principal kinds.
func GenerateUsername(firstName, lastName string, existing []string) (string, error) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return "", fmt.Errorf("%w: first name and last name cannot be blank", ErrInvalidArgument)
	}

	base := strings.ToLower(first + "." + last)
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(base) + `(\d*)$`)

	baseTaken := false
	maxSuffix := 0
	for _, name := range existing {
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if m[1] == "" {
			baseTaken = true
			continue
		}
		suffix, err := strconv.Atoi(m[1])
		if err != nil {
			// Suffix longer than an int; not something this scheme produces.
			continue
		}
		if suffix > maxSuffix {
			maxSuffix = suffix
		}
	}

	if !baseTaken {
		return base, nil
	}
	return base + strconv.Itoa(maxSuffix+1), nil
}

// allUsernames unions the trainee and trainer username sets. Usernames
// occupy one namespace across both kinds, so uniqueness checks must see
// both collections.
func allUsernames(ctx context.Context, trainees repository.TraineeRepository, trainers repository.TrainerRepository) ([]string, error) {
	traineeNames, err := trainees.ListUsernames(ctx)
	if err != nil {
		return nil, err
	}
	trainerNames, err := trainers.ListUsernames(ctx)
	if err != nil {
		return nil, err
	}
	return append(traineeNames, trainerNames...), nil
}

// withoutUsername filters one username out of the set. Used when a
// rename regenerates a handle: the principal must not collide with its
// own old username.
func withoutUsername(usernames []string, exclude string) []string {
	filtered := make([]string, 0, len(usernames))
	for _, name := range usernames {
		if name != exclude {
			filtered = append(filtered, name)
		}
	}
	return filtered
}
