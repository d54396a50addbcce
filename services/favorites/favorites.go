package favorites

import (
	"context"
	"errors"
	"time"

	favoriteRepo "plenura/database/repository/favorite"
	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
)

// FavoritesService lets clients save and unsave therapists.
type FavoritesService interface {
	Add(ctx context.Context, clientID, therapistID string) (*models.Favorite, error)
	Remove(ctx context.Context, clientID, therapistID string) error
	List(ctx context.Context, clientID string) ([]models.Favorite, error)
}

// DefaultFavoritesService implements FavoritesService.
type DefaultFavoritesService struct {
	Repo          favoriteRepo.FavoriteRepository
	TherapistRepo therapistRepo.TherapistRepository
}

func (s *DefaultFavoritesService) Add(ctx context.Context, clientID, therapistID string) (*models.Favorite, error) {
	if _, err := s.TherapistRepo.GetByID(ctx, therapistID); err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("therapist")
		}
		return nil, utils.UpstreamErr("failed to load therapist", err)
	}
	favorite := &models.Favorite{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		TherapistID: therapistID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, favorite); err != nil {
		if errors.Is(err, favoriteRepo.ErrDuplicate) {
			return nil, utils.ConflictErr("therapist already favorited")
		}
		return nil, utils.UpstreamErr("failed to save favorite", err)
	}
	return favorite, nil
}

func (s *DefaultFavoritesService) Remove(ctx context.Context, clientID, therapistID string) error {
	if err := s.Repo.Remove(ctx, clientID, therapistID); err != nil {
		if errors.Is(err, favoriteRepo.ErrNotFound) {
			return utils.NotFoundErr("favorite")
		}
		return utils.UpstreamErr("failed to remove favorite", err)
	}
	return nil
}

func (s *DefaultFavoritesService) List(ctx context.Context, clientID string) ([]models.Favorite, error) {
	favorites, err := s.Repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list favorites", err)
	}
	return favorites, nil
}
