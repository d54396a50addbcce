package booking

import (
	"context"
	"time"

	"plenura/models"
)

// mockBookingRepo implements bookingRepo.BookingRepository with swappable
// funcs per test.
type mockBookingRepo struct {
	createExclusiveFn   func(ctx context.Context, b *models.Booking) error
	getByIDFn           func(ctx context.Context, id string) (*models.Booking, error)
	updateStatusFn      func(ctx context.Context, id string, fields map[string]interface{}) error
	setTherapistNotesFn func(ctx context.Context, id, notes string) error
	listActiveInRangeFn func(ctx context.Context, therapistID string, from, to time.Time) ([]models.Booking, error)
	listByClientFn      func(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error)
	listByTherapistFn   func(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error)
	listByTherapistsFn  func(ctx context.Context, therapistIDs []string, limit, offset int64) ([]models.Booking, error)
	listByStatusesFn    func(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error)
	listEarningsFn      func(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error)
}

func (m *mockBookingRepo) CreateExclusive(ctx context.Context, b *models.Booking) error {
	return m.createExclusiveFn(ctx, b)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.updateStatusFn(ctx, id, fields)
}

func (m *mockBookingRepo) SetTherapistNotes(ctx context.Context, id, notes string) error {
	return m.setTherapistNotesFn(ctx, id, notes)
}

func (m *mockBookingRepo) ListActiveInRange(ctx context.Context, therapistID string, from, to time.Time) ([]models.Booking, error) {
	return m.listActiveInRangeFn(ctx, therapistID, from, to)
}

func (m *mockBookingRepo) ListByClient(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error) {
	return m.listByClientFn(ctx, clientID, status, limit, offset)
}

func (m *mockBookingRepo) ListByTherapist(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error) {
	return m.listByTherapistFn(ctx, therapistID, status, limit, offset)
}

func (m *mockBookingRepo) ListByTherapists(ctx context.Context, therapistIDs []string, limit, offset int64) ([]models.Booking, error) {
	return m.listByTherapistsFn(ctx, therapistIDs, limit, offset)
}

func (m *mockBookingRepo) ListByStatuses(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error) {
	return m.listByStatusesFn(ctx, therapistID, statuses)
}

func (m *mockBookingRepo) ListEarnings(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error) {
	return m.listEarningsFn(ctx, therapistID, limit, offset)
}

// mockTherapistRepo implements therapistRepo.TherapistRepository.
type mockTherapistRepo struct {
	createFn          func(ctx context.Context, t *models.Therapist) error
	getByIDFn         func(ctx context.Context, id string) (*models.Therapist, error)
	getByUserIDFn     func(ctx context.Context, userID string) (*models.Therapist, error)
	updateFieldsFn    func(ctx context.Context, id string, fields map[string]interface{}) error
	updateRatingFn    func(ctx context.Context, id string, avg float64, count int) error
	listVisibleFn     func(ctx context.Context, limit, offset int64) ([]models.Therapist, error)
	createTreatmentFn func(ctx context.Context, t *models.TherapistService) error
	getTreatmentFn    func(ctx context.Context, id string) (*models.TherapistService, error)
	updateTreatmentFn func(ctx context.Context, therapistID, id string, fields map[string]interface{}) error
	listTreatmentsFn  func(ctx context.Context, therapistID string, activeOnly bool) ([]models.TherapistService, error)
}

func (m *mockTherapistRepo) Create(ctx context.Context, t *models.Therapist) error {
	return m.createFn(ctx, t)
}

func (m *mockTherapistRepo) GetByID(ctx context.Context, id string) (*models.Therapist, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTherapistRepo) GetByUserID(ctx context.Context, userID string) (*models.Therapist, error) {
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockTherapistRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.updateFieldsFn(ctx, id, fields)
}

func (m *mockTherapistRepo) UpdateRating(ctx context.Context, id string, avg float64, count int) error {
	return m.updateRatingFn(ctx, id, avg, count)
}

func (m *mockTherapistRepo) ListVisible(ctx context.Context, limit, offset int64) ([]models.Therapist, error) {
	return m.listVisibleFn(ctx, limit, offset)
}

func (m *mockTherapistRepo) CreateTreatment(ctx context.Context, t *models.TherapistService) error {
	return m.createTreatmentFn(ctx, t)
}

func (m *mockTherapistRepo) GetTreatment(ctx context.Context, id string) (*models.TherapistService, error) {
	return m.getTreatmentFn(ctx, id)
}

func (m *mockTherapistRepo) UpdateTreatment(ctx context.Context, therapistID, id string, fields map[string]interface{}) error {
	return m.updateTreatmentFn(ctx, therapistID, id, fields)
}

func (m *mockTherapistRepo) ListTreatments(ctx context.Context, therapistID string, activeOnly bool) ([]models.TherapistService, error) {
	return m.listTreatmentsFn(ctx, therapistID, activeOnly)
}

// mockAvailabilityRepo implements availabilityRepo.AvailabilityRepository.
type mockAvailabilityRepo struct {
	getRulesFn            func(ctx context.Context, therapistID string) ([]models.AvailabilityRule, error)
	replaceRulesFn        func(ctx context.Context, therapistID string, rules []models.AvailabilityRule) error
	addBlockedPeriodFn    func(ctx context.Context, blocked *models.BlockedPeriod) error
	removeBlockedPeriodFn func(ctx context.Context, therapistID, blockedID string) error
	listBlockedPeriodsFn  func(ctx context.Context, therapistID string) ([]models.BlockedPeriod, error)
	listBlockedCoveringFn func(ctx context.Context, therapistID, date string) ([]models.BlockedPeriod, error)
}

func (m *mockAvailabilityRepo) GetRules(ctx context.Context, therapistID string) ([]models.AvailabilityRule, error) {
	return m.getRulesFn(ctx, therapistID)
}

func (m *mockAvailabilityRepo) ReplaceRules(ctx context.Context, therapistID string, rules []models.AvailabilityRule) error {
	return m.replaceRulesFn(ctx, therapistID, rules)
}

func (m *mockAvailabilityRepo) AddBlockedPeriod(ctx context.Context, blocked *models.BlockedPeriod) error {
	return m.addBlockedPeriodFn(ctx, blocked)
}

func (m *mockAvailabilityRepo) RemoveBlockedPeriod(ctx context.Context, therapistID, blockedID string) error {
	return m.removeBlockedPeriodFn(ctx, therapistID, blockedID)
}

func (m *mockAvailabilityRepo) ListBlockedPeriods(ctx context.Context, therapistID string) ([]models.BlockedPeriod, error) {
	return m.listBlockedPeriodsFn(ctx, therapistID)
}

func (m *mockAvailabilityRepo) ListBlockedCovering(ctx context.Context, therapistID, date string) ([]models.BlockedPeriod, error) {
	return m.listBlockedCoveringFn(ctx, therapistID, date)
}

// mockReminderScheduler records scheduled reminders.
type mockReminderScheduler struct {
	scheduled []models.ReminderPayload
	fireAts   []time.Time
	err       error
}

func (m *mockReminderScheduler) ScheduleBookingReminder(payload models.ReminderPayload, fireAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.scheduled = append(m.scheduled, payload)
	m.fireAts = append(m.fireAts, fireAt)
	return nil
}

// mockRefundCrediter records wallet refund credits.
type mockRefundCrediter struct {
	credits []refundCredit
	err     error
}

type refundCredit struct {
	userID      string
	amountCents int64
	txType      string
	reference   string
}

func (m *mockRefundCrediter) Credit(ctx context.Context, userID string, amountCents int64, txType, reference string) error {
	if m.err != nil {
		return m.err
	}
	m.credits = append(m.credits, refundCredit{userID, amountCents, txType, reference})
	return nil
}
