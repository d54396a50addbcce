package practice

import (
	"context"
	"errors"
	"time"

	bookingRepo "plenura/database/repository/booking"
	practiceRepo "plenura/database/repository/practice"
	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PracticeService manages multi-therapist practices and their rosters.
type PracticeService interface {
	Create(ctx context.Context, ownerUserID, name string) (*models.Practice, error)
	Get(ctx context.Context, practiceID string) (*models.Practice, error)

	// AddTherapist and RemoveTherapist are owner-only roster operations; they
	// keep the therapist's practice reference in sync.
	AddTherapist(ctx context.Context, actorUserID, practiceID, therapistID string) error
	RemoveTherapist(ctx context.Context, actorUserID, practiceID, therapistID string) error

	// ListPracticeBookings returns bookings across the practice roster,
	// owner only.
	ListPracticeBookings(ctx context.Context, actorUserID, practiceID string, limit, offset int64) ([]models.Booking, error)
}

// DefaultPracticeService implements PracticeService.
type DefaultPracticeService struct {
	Repo          practiceRepo.PracticeRepository
	TherapistRepo therapistRepo.TherapistRepository
	BookingRepo   bookingRepo.BookingRepository
}

func (s *DefaultPracticeService) Create(ctx context.Context, ownerUserID, name string) (*models.Practice, error) {
	if name == "" {
		return nil, utils.InvalidInputErr("practice name is required")
	}
	practice := &models.Practice{
		ID:           uuid.New().String(),
		OwnerUserID:  ownerUserID,
		Name:         name,
		TherapistIDs: []string{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, practice); err != nil {
		return nil, utils.UpstreamErr("failed to create practice", err)
	}
	utils.GetLogger().Info("practice created",
		zap.String("practiceID", practice.ID),
		zap.String("ownerUserID", ownerUserID))
	return practice, nil
}

func (s *DefaultPracticeService) Get(ctx context.Context, practiceID string) (*models.Practice, error) {
	practice, err := s.Repo.GetByID(ctx, practiceID)
	if err != nil {
		if errors.Is(err, practiceRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("practice")
		}
		return nil, utils.UpstreamErr("failed to load practice", err)
	}
	return practice, nil
}

func (s *DefaultPracticeService) AddTherapist(ctx context.Context, actorUserID, practiceID, therapistID string) error {
	practice, err := s.ownedPractice(ctx, actorUserID, practiceID)
	if err != nil {
		return err
	}
	therapist, err := s.TherapistRepo.GetByID(ctx, therapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return utils.NotFoundErr("therapist")
		}
		return utils.UpstreamErr("failed to load therapist", err)
	}
	if therapist.PracticeID != "" && therapist.PracticeID != practice.ID {
		return utils.ConflictErr("therapist already belongs to another practice")
	}
	if err := s.Repo.AddTherapist(ctx, practice.ID, therapistID); err != nil {
		return utils.UpstreamErr("failed to add therapist to practice", err)
	}
	if err := s.TherapistRepo.UpdateFields(ctx, therapistID, map[string]interface{}{
		"practice_id": practice.ID,
	}); err != nil {
		return utils.UpstreamErr("failed to link therapist to practice", err)
	}
	return nil
}

func (s *DefaultPracticeService) RemoveTherapist(ctx context.Context, actorUserID, practiceID, therapistID string) error {
	practice, err := s.ownedPractice(ctx, actorUserID, practiceID)
	if err != nil {
		return err
	}
	if err := s.Repo.RemoveTherapist(ctx, practice.ID, therapistID); err != nil {
		if errors.Is(err, practiceRepo.ErrNotFound) {
			return utils.NotFoundErr("practice")
		}
		return utils.UpstreamErr("failed to remove therapist from practice", err)
	}
	if err := s.TherapistRepo.UpdateFields(ctx, therapistID, map[string]interface{}{
		"practice_id": "",
	}); err != nil {
		return utils.UpstreamErr("failed to unlink therapist from practice", err)
	}
	return nil
}

func (s *DefaultPracticeService) ListPracticeBookings(ctx context.Context, actorUserID, practiceID string, limit, offset int64) ([]models.Booking, error) {
	practice, err := s.ownedPractice(ctx, actorUserID, practiceID)
	if err != nil {
		return nil, err
	}
	if len(practice.TherapistIDs) == 0 {
		return []models.Booking{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	bookings, err := s.BookingRepo.ListByTherapists(ctx, practice.TherapistIDs, limit, offset)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list practice bookings", err)
	}
	return bookings, nil
}

func (s *DefaultPracticeService) ownedPractice(ctx context.Context, actorUserID, practiceID string) (*models.Practice, error) {
	practice, err := s.Repo.GetByID(ctx, practiceID)
	if err != nil {
		if errors.Is(err, practiceRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("practice")
		}
		return nil, utils.UpstreamErr("failed to load practice", err)
	}
	if practice.OwnerUserID != actorUserID {
		return nil, utils.ForbiddenErr("only the practice owner may manage the practice")
	}
	return practice, nil
}
