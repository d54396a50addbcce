package therapist

import (
	"context"
	"testing"

	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"
	"plenura/utils"
)

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

func TestRegisterCreatesPendingFreeProfile(t *testing.T) {
	var created *models.Therapist
	svc := &DefaultTherapistService{
		Repo: &mockTherapistRepo{
			getByUserIDFn: func(ctx context.Context, userID string) (*models.Therapist, error) {
				return nil, therapistRepo.ErrNotFound
			},
			createFn: func(ctx context.Context, th *models.Therapist) error {
				created = th
				return nil
			},
		},
	}

	th, err := svc.Register(context.Background(), "user1", "Dana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("Create not called")
	}
	if th.VettingStatus != models.VettingPending {
		t.Errorf("vetting = %q, want pending", th.VettingStatus)
	}
	if th.Available {
		t.Error("new therapist should start unavailable")
	}
	if th.SubscriptionTier != models.TierFree {
		t.Errorf("tier = %q, want free", th.SubscriptionTier)
	}
}

func TestRegisterIsIdempotentPerUser(t *testing.T) {
	existing := &models.Therapist{ID: "ther1", UserID: "user1"}
	svc := &DefaultTherapistService{
		Repo: &mockTherapistRepo{
			getByUserIDFn: func(ctx context.Context, userID string) (*models.Therapist, error) {
				return existing, nil
			},
			createFn: func(ctx context.Context, th *models.Therapist) error {
				t.Error("Create called for an existing profile")
				return nil
			},
		},
	}

	th, err := svc.Register(context.Background(), "user1", "Dana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th.ID != "ther1" {
		t.Errorf("got %q, want the existing profile", th.ID)
	}
}

func TestSaveAvailabilityReplacesRuleSet(t *testing.T) {
	var saved []models.AvailabilityRule
	svc := &DefaultTherapistService{
		Availability: &mockAvailabilityRepo{
			replaceRulesFn: func(ctx context.Context, therapistID string, rules []models.AvailabilityRule) error {
				saved = rules
				return nil
			},
		},
	}

	rules, err := svc.SaveAvailability(context.Background(), "ther1", []RuleInput{
		{Weekday: 1, StartMinute: 9 * 60, EndMinute: 17 * 60, Active: true},
		{Weekday: 3, StartMinute: 13 * 60, EndMinute: 18 * 60, Active: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 2 || len(rules) != 2 {
		t.Fatalf("saved %d rules, returned %d, want 2 each", len(saved), len(rules))
	}
	for _, r := range saved {
		if r.ID == "" || r.TherapistID != "ther1" {
			t.Errorf("rule not stamped: %+v", r)
		}
	}
}

func TestSaveAvailabilityValidation(t *testing.T) {
	svc := &DefaultTherapistService{Availability: &mockAvailabilityRepo{}}

	cases := []struct {
		name string
		rule RuleInput
	}{
		{"weekday too large", RuleInput{Weekday: 7, StartMinute: 0, EndMinute: 60}},
		{"negative weekday", RuleInput{Weekday: -1, StartMinute: 0, EndMinute: 60}},
		{"start after end", RuleInput{Weekday: 1, StartMinute: 600, EndMinute: 540}},
		{"empty window", RuleInput{Weekday: 1, StartMinute: 600, EndMinute: 600}},
		{"end past midnight", RuleInput{Weekday: 1, StartMinute: 600, EndMinute: 1441}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveAvailability(context.Background(), "ther1", []RuleInput{tc.rule})
			if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestSaveAvailabilityEmptySetClearsRules(t *testing.T) {
	var saved []models.AvailabilityRule
	called := false
	svc := &DefaultTherapistService{
		Availability: &mockAvailabilityRepo{
			replaceRulesFn: func(ctx context.Context, therapistID string, rules []models.AvailabilityRule) error {
				called = true
				saved = rules
				return nil
			},
		},
	}

	if _, err := svc.SaveAvailability(context.Background(), "ther1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("ReplaceRules not called")
	}
	if len(saved) != 0 {
		t.Errorf("saved %d rules, want 0", len(saved))
	}
}

func TestAddBlockedPeriodValidation(t *testing.T) {
	svc := &DefaultTherapistService{
		Availability: &mockAvailabilityRepo{
			addBlockedPeriodFn: func(ctx context.Context, blocked *models.BlockedPeriod) error { return nil },
		},
	}

	blocked, err := svc.AddBlockedPeriod(context.Background(), "ther1", "2026-12-24", "2026-12-31", "holidays")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked.ID == "" || blocked.TherapistID != "ther1" {
		t.Errorf("blocked period not stamped: %+v", blocked)
	}

	cases := []struct {
		name       string
		start, end string
	}{
		{"bad start format", "24-12-2026", "2026-12-31"},
		{"bad end format", "2026-12-24", "31.12.2026"},
		{"end before start", "2026-12-31", "2026-12-24"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddBlockedPeriod(context.Background(), "ther1", tc.start, tc.end, "")
			if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestChangeSubscriptionTier(t *testing.T) {
	var savedFields map[string]interface{}
	svc := &DefaultTherapistService{
		Repo: &mockTherapistRepo{
			updateFieldsFn: func(ctx context.Context, id string, fields map[string]interface{}) error {
				savedFields = fields
				return nil
			},
		},
	}

	if err := svc.ChangeSubscriptionTier(context.Background(), "ther1", models.TierBusiness); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if savedFields["subscription_tier"] != models.TierBusiness {
		t.Errorf("saved %v", savedFields)
	}

	err := svc.ChangeSubscriptionTier(context.Background(), "ther1", "platinum")
	if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestSetVettingStatusAdminOnly(t *testing.T) {
	svc := &DefaultTherapistService{
		Repo: &mockTherapistRepo{
			updateFieldsFn: func(ctx context.Context, id string, fields map[string]interface{}) error {
				return nil
			},
		},
	}

	if err := svc.SetVettingStatus(context.Background(), "admin", "ther1", models.VettingApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, role := range []string{"therapist", "client", ""} {
		err := svc.SetVettingStatus(context.Background(), role, "ther1", models.VettingApproved)
		if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeForbidden {
			t.Errorf("role %q: got %v, want FORBIDDEN", role, err)
		}
	}

	err := svc.SetVettingStatus(context.Background(), "admin", "ther1", "vetted")
	if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestAddTreatmentValidation(t *testing.T) {
	var created *models.TherapistService
	svc := &DefaultTherapistService{
		Repo: &mockTherapistRepo{
			createTreatmentFn: func(ctx context.Context, tr *models.TherapistService) error {
				created = tr
				return nil
			},
		},
	}

	tr, err := svc.AddTreatment(context.Background(), "ther1", TreatmentInput{
		Name: "Hot stone massage", PriceCents: 9000, DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || !tr.Active || tr.TherapistID != "ther1" {
		t.Errorf("treatment not created properly: %+v", tr)
	}

	cases := []struct {
		name string
		in   TreatmentInput
	}{
		{"missing name", TreatmentInput{PriceCents: 100, DurationMinutes: 30}},
		{"zero price", TreatmentInput{Name: "x", DurationMinutes: 30}},
		{"zero duration", TreatmentInput{Name: "x", PriceCents: 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTreatment(context.Background(), "ther1", tc.in)
			if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestUpdateTreatmentFiltersFields(t *testing.T) {
	var savedFields map[string]interface{}
	svc := &DefaultTherapistService{
		Repo: &mockTherapistRepo{
			updateTreatmentFn: func(ctx context.Context, therapistID, id string, fields map[string]interface{}) error {
				savedFields = fields
				return nil
			},
		},
	}

	err := svc.UpdateTreatment(context.Background(), "ther1", "svc1", map[string]interface{}{
		"price_cents":  int64(12000),
		"active":       false,
		"therapist_id": "hijack", // not an updatable field
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := savedFields["therapist_id"]; ok {
		t.Error("therapist_id must not be updatable")
	}
	if savedFields["price_cents"] != int64(12000) || savedFields["active"] != false {
		t.Errorf("saved %v", savedFields)
	}

	err = svc.UpdateTreatment(context.Background(), "ther1", "svc1", map[string]interface{}{"therapist_id": "x"})
	if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestUpdateProfileRequiresFields(t *testing.T) {
	svc := &DefaultTherapistService{Repo: &mockTherapistRepo{}}

	err := svc.UpdateProfile(context.Background(), "ther1", ProfileUpdate{})
	if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}

	empty := ""
	err = svc.UpdateProfile(context.Background(), "ther1", ProfileUpdate{DisplayName: &empty})
	if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeInvalidInput {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}
