package review

import (
	"context"
	"testing"
	"time"

	bookingRepo "plenura/database/repository/booking"
	"plenura/models"
	"plenura/utils"
)

type mockReviewRepo struct {
	insertFn                func(ctx context.Context, r *models.Review) error
	existsForBookingFn      func(ctx context.Context, bookingID string) (bool, error)
	listPublicByTherapistFn func(ctx context.Context, therapistID string, limit, offset int64) ([]models.Review, error)
	aggregateFn             func(ctx context.Context, therapistID string) (float64, int, error)
}

func (m *mockReviewRepo) Insert(ctx context.Context, r *models.Review) error {
	return m.insertFn(ctx, r)
}

func (m *mockReviewRepo) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	return m.existsForBookingFn(ctx, bookingID)
}

func (m *mockReviewRepo) ListPublicByTherapist(ctx context.Context, therapistID string, limit, offset int64) ([]models.Review, error) {
	return m.listPublicByTherapistFn(ctx, therapistID, limit, offset)
}

func (m *mockReviewRepo) AggregatePublicRating(ctx context.Context, therapistID string) (float64, int, error) {
	return m.aggregateFn(ctx, therapistID)
}

type mockBookingGetter struct {
	getByIDFn func(ctx context.Context, id string) (*models.Booking, error)
}

func (m *mockBookingGetter) CreateExclusive(ctx context.Context, b *models.Booking) error { return nil }
func (m *mockBookingGetter) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockBookingGetter) UpdateStatus(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (m *mockBookingGetter) SetTherapistNotes(ctx context.Context, id, notes string) error {
	return nil
}
func (m *mockBookingGetter) ListActiveInRange(ctx context.Context, therapistID string, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingGetter) ListByClient(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingGetter) ListByTherapist(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingGetter) ListByTherapists(ctx context.Context, therapistIDs []string, limit, offset int64) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingGetter) ListByStatuses(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingGetter) ListEarnings(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error) {
	return nil, nil
}

type mockRatingUpdater struct {
	updateRatingFn func(ctx context.Context, id string, avg float64, count int) error
}

func (m *mockRatingUpdater) Create(ctx context.Context, t *models.Therapist) error { return nil }
func (m *mockRatingUpdater) GetByID(ctx context.Context, id string) (*models.Therapist, error) {
	return nil, nil
}
func (m *mockRatingUpdater) GetByUserID(ctx context.Context, userID string) (*models.Therapist, error) {
	return nil, nil
}
func (m *mockRatingUpdater) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (m *mockRatingUpdater) UpdateRating(ctx context.Context, id string, avg float64, count int) error {
	return m.updateRatingFn(ctx, id, avg, count)
}
func (m *mockRatingUpdater) ListVisible(ctx context.Context, limit, offset int64) ([]models.Therapist, error) {
	return nil, nil
}
func (m *mockRatingUpdater) CreateTreatment(ctx context.Context, t *models.TherapistService) error {
	return nil
}
func (m *mockRatingUpdater) GetTreatment(ctx context.Context, id string) (*models.TherapistService, error) {
	return nil, nil
}
func (m *mockRatingUpdater) UpdateTreatment(ctx context.Context, therapistID, id string, fields map[string]interface{}) error {
	return nil
}
func (m *mockRatingUpdater) ListTreatments(ctx context.Context, therapistID string, activeOnly bool) ([]models.TherapistService, error) {
	return nil, nil
}

func reviewFixture() (*DefaultReviewService, *mockReviewRepo, *mockBookingGetter, *mockRatingUpdater) {
	booking := &models.Booking{
		ID:          "bk1",
		ClientID:    "client1",
		TherapistID: "ther1",
		Status:      models.StatusCompleted,
	}
	rRepo := &mockReviewRepo{
		insertFn:           func(ctx context.Context, r *models.Review) error { return nil },
		existsForBookingFn: func(ctx context.Context, bookingID string) (bool, error) { return false, nil },
		aggregateFn:        func(ctx context.Context, therapistID string) (float64, int, error) { return 4.5, 2, nil },
	}
	bRepo := &mockBookingGetter{
		getByIDFn: func(ctx context.Context, id string) (*models.Booking, error) {
			if id != booking.ID {
				return nil, bookingRepo.ErrNotFound
			}
			copied := *booking
			return &copied, nil
		},
	}
	tRepo := &mockRatingUpdater{
		updateRatingFn: func(ctx context.Context, id string, avg float64, count int) error { return nil },
	}
	svc := &DefaultReviewService{Repo: rRepo, BookingRepo: bRepo, TherapistRepo: tRepo}
	return svc, rRepo, bRepo, tRepo
}

func validReview() CreateReviewInput {
	return CreateReviewInput{BookingID: "bk1", Rating: 5, Comment: "great", IsPublic: true}
}

func TestCreateReviewSuccess(t *testing.T) {
	svc, _, _, tRepo := reviewFixture()
	var gotAvg float64
	var gotCount int
	tRepo.updateRatingFn = func(ctx context.Context, id string, avg float64, count int) error {
		gotAvg, gotCount = avg, count
		return nil
	}

	r, err := svc.CreateReview(context.Background(), "client1", validReview())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TherapistID != "ther1" {
		t.Errorf("therapist = %q, want ther1", r.TherapistID)
	}
	if gotAvg != 4.5 || gotCount != 2 {
		t.Errorf("rating recompute = (%v, %d), want (4.5, 2)", gotAvg, gotCount)
	}
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _, _, _ := reviewFixture()
	for _, rating := range []int{0, 6, -1} {
		in := validReview()
		in.Rating = rating
		_, err := svc.CreateReview(context.Background(), "client1", in)
		if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
			t.Errorf("rating %d: got %v, want INVALID_INPUT", rating, err)
		}
	}
}

func TestCreateReviewOrderedChecks(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		svc, _, bRepo, _ := reviewFixture()
		bRepo.getByIDFn = func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, bookingRepo.ErrNotFound
		}
		_, err := svc.CreateReview(context.Background(), "client1", validReview())
		if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeNotFound {
			t.Errorf("got %v, want NOT_FOUND", err)
		}
	})

	t.Run("other client", func(t *testing.T) {
		svc, _, _, _ := reviewFixture()
		_, err := svc.CreateReview(context.Background(), "stranger", validReview())
		if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeUnauthorized {
			t.Errorf("got %v, want UNAUTHORIZED", err)
		}
	})

	t.Run("not completed", func(t *testing.T) {
		svc, _, bRepo, _ := reviewFixture()
		bRepo.getByIDFn = func(ctx context.Context, id string) (*models.Booking, error) {
			return &models.Booking{ID: "bk1", ClientID: "client1", TherapistID: "ther1", Status: models.StatusConfirmed}, nil
		}
		_, err := svc.CreateReview(context.Background(), "client1", validReview())
		if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidState {
			t.Errorf("got %v, want INVALID_STATE", err)
		}
	})

	t.Run("already reviewed", func(t *testing.T) {
		svc, rRepo, _, _ := reviewFixture()
		rRepo.existsForBookingFn = func(ctx context.Context, bookingID string) (bool, error) { return true, nil }
		_, err := svc.CreateReview(context.Background(), "client1", validReview())
		if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeConflict {
			t.Errorf("got %v, want CONFLICT", err)
		}
	})
}

func TestCreateReviewSkipsRecomputeWithoutPublicReviews(t *testing.T) {
	svc, rRepo, _, tRepo := reviewFixture()
	rRepo.aggregateFn = func(ctx context.Context, therapistID string) (float64, int, error) { return 0, 0, nil }
	tRepo.updateRatingFn = func(ctx context.Context, id string, avg float64, count int) error {
		t.Error("UpdateRating called with zero public reviews")
		return nil
	}

	in := validReview()
	in.IsPublic = false
	if _, err := svc.CreateReview(context.Background(), "client1", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateReviewRoundsAverageToOneDecimal(t *testing.T) {
	svc, rRepo, _, tRepo := reviewFixture()
	rRepo.aggregateFn = func(ctx context.Context, therapistID string) (float64, int, error) {
		return 4.666666, 3, nil
	}
	var gotAvg float64
	tRepo.updateRatingFn = func(ctx context.Context, id string, avg float64, count int) error {
		gotAvg = avg
		return nil
	}

	if _, err := svc.CreateReview(context.Background(), "client1", validReview()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAvg != 4.7 {
		t.Errorf("avg = %v, want 4.7", gotAvg)
	}
}
