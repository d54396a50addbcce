package booking

import (
	"context"
	"testing"
	"time"

	"plenura/models"
	"plenura/utils"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func transitionFixture(status, escrow string) (*DefaultBookingService, *mockBookingRepo, *models.Booking) {
	b := &models.Booking{
		ID:           "bk1",
		ClientID:     "client1",
		TherapistID:  "ther1",
		ScheduledAt:  time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		Status:       status,
		PriceCents:   50000,
		EscrowStatus: escrow,
	}
	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.Booking, error) {
			copied := *b
			return &copied, nil
		},
		updateStatusFn: func(ctx context.Context, id string, fields map[string]interface{}) error {
			return nil
		},
	}
	svc := &DefaultBookingService{
		Repo:   repo,
		Wallet: &mockRefundCrediter{},
		now:    fixedClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)),
	}
	return svc, repo, b
}

func TestTransitionMatrix(t *testing.T) {
	client := Actor{UserID: "client1", Role: "client"}
	therapist := Actor{UserID: "ther1", Role: "therapist"}

	cases := []struct {
		name     string
		from     string
		to       string
		actor    Actor
		wantCode string // empty means success
	}{
		{"pending confirmed by therapist", models.StatusPending, models.StatusConfirmed, therapist, ""},
		{"pending cancelled by client", models.StatusPending, models.StatusCancelledByClient, client, ""},
		{"pending cancelled by therapist", models.StatusPending, models.StatusCancelledByTherapist, therapist, ""},
		{"confirmed completed", models.StatusConfirmed, models.StatusCompleted, therapist, ""},
		{"confirmed no-show", models.StatusConfirmed, models.StatusNoShow, therapist, ""},
		{"confirmed cancelled by client", models.StatusConfirmed, models.StatusCancelledByClient, client, ""},
		{"pending cannot complete", models.StatusPending, models.StatusCompleted, therapist, utils.CodeInvalidState},
		{"pending cannot no-show", models.StatusPending, models.StatusNoShow, therapist, utils.CodeInvalidState},
		{"completed is terminal", models.StatusCompleted, models.StatusCancelledByClient, client, utils.CodeInvalidState},
		{"cancelled is terminal", models.StatusCancelledByClient, models.StatusConfirmed, therapist, utils.CodeInvalidState},
		{"no backwards transition", models.StatusConfirmed, models.StatusPending, therapist, utils.CodeInvalidState},
		{"client cannot confirm", models.StatusPending, models.StatusConfirmed, client, utils.CodeForbidden},
		{"client cannot complete", models.StatusConfirmed, models.StatusCompleted, client, utils.CodeForbidden},
		{"therapist cannot cancel as client", models.StatusPending, models.StatusCancelledByClient, therapist, utils.CodeForbidden},
		{"wrong client cannot cancel", models.StatusPending, models.StatusCancelledByClient, Actor{UserID: "other", Role: "client"}, utils.CodeForbidden},
		{"wrong therapist cannot confirm", models.StatusPending, models.StatusConfirmed, Actor{UserID: "other", Role: "therapist"}, utils.CodeForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := transitionFixture(tc.from, models.EscrowUnpaid)
			got, err := svc.TransitionStatus(context.Background(), "bk1", tc.to, tc.actor)

			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Status != tc.to {
					t.Errorf("status = %q, want %q", got.Status, tc.to)
				}
				return
			}
			appErr := utils.AsAppError(err)
			if err == nil || appErr.Code != tc.wantCode {
				t.Errorf("got %v, want code %s", err, tc.wantCode)
			}
		})
	}
}

func TestTransitionConfirmStampsTimestampAndSchedulesReminder(t *testing.T) {
	svc, _, _ := transitionFixture(models.StatusPending, models.EscrowUnpaid)
	reminders := &mockReminderScheduler{}
	svc.Reminders = reminders

	got, err := svc.TransitionStatus(context.Background(), "bk1", models.StatusConfirmed, Actor{UserID: "ther1", Role: "therapist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ConfirmedAt == nil {
		t.Error("ConfirmedAt not set")
	}
	if len(reminders.scheduled) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(reminders.scheduled))
	}
	wantFire := got.ScheduledAt.Add(-24 * time.Hour)
	if !reminders.fireAts[0].Equal(wantFire) {
		t.Errorf("reminder fires at %v, want %v", reminders.fireAts[0], wantFire)
	}
}

func TestTransitionCompleteReleasesEscrow(t *testing.T) {
	svc, _, _ := transitionFixture(models.StatusConfirmed, models.EscrowHeld)

	got, err := svc.TransitionStatus(context.Background(), "bk1", models.StatusCompleted, Actor{UserID: "ther1", Role: "therapist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if got.EscrowStatus != models.EscrowReleased {
		t.Errorf("escrow = %q, want %q", got.EscrowStatus, models.EscrowReleased)
	}
}

func TestTransitionCancelRefundsHeldEscrow(t *testing.T) {
	svc, _, _ := transitionFixture(models.StatusConfirmed, models.EscrowHeld)
	crediter := &mockRefundCrediter{}
	svc.Wallet = crediter

	got, err := svc.TransitionStatus(context.Background(), "bk1", models.StatusCancelledByClient, Actor{UserID: "client1", Role: "client"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EscrowStatus != models.EscrowRefunded {
		t.Errorf("escrow = %q, want %q", got.EscrowStatus, models.EscrowRefunded)
	}
	if len(crediter.credits) != 1 {
		t.Fatalf("issued %d credits, want 1", len(crediter.credits))
	}
	credit := crediter.credits[0]
	if credit.userID != "client1" || credit.amountCents != 50000 || credit.txType != models.TxRefund {
		t.Errorf("refund credit %+v", credit)
	}
	if credit.reference != "booking:bk1" {
		t.Errorf("refund reference = %q", credit.reference)
	}
}

func TestTransitionCancelKeepsEscrowHeldWhenRefundFails(t *testing.T) {
	svc, repo, _ := transitionFixture(models.StatusConfirmed, models.EscrowHeld)
	svc.Wallet = &mockRefundCrediter{err: context.DeadlineExceeded}
	updated := false
	repo.updateStatusFn = func(ctx context.Context, id string, fields map[string]interface{}) error {
		updated = true
		return nil
	}

	_, err := svc.TransitionStatus(context.Background(), "bk1", models.StatusCancelledByClient, Actor{UserID: "client1", Role: "client"})
	if appErr := utils.AsAppError(err); err == nil || appErr.Code != utils.CodeUpstream {
		t.Errorf("got %v, want UPSTREAM", err)
	}
	if updated {
		t.Error("booking updated despite failed refund credit")
	}
}

func TestTransitionCancelTherapistSideAlsoRefundsClient(t *testing.T) {
	svc, _, _ := transitionFixture(models.StatusConfirmed, models.EscrowHeld)
	crediter := &mockRefundCrediter{}
	svc.Wallet = crediter

	_, err := svc.TransitionStatus(context.Background(), "bk1", models.StatusCancelledByTherapist, Actor{UserID: "ther1", Role: "therapist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(crediter.credits) != 1 || crediter.credits[0].userID != "client1" {
		t.Errorf("credits %+v, want one to client1", crediter.credits)
	}
}

func TestTransitionCancelLeavesUnpaidEscrowAlone(t *testing.T) {
	svc, _, _ := transitionFixture(models.StatusPending, models.EscrowUnpaid)
	crediter := &mockRefundCrediter{}
	svc.Wallet = crediter

	got, err := svc.TransitionStatus(context.Background(), "bk1", models.StatusCancelledByTherapist, Actor{UserID: "ther1", Role: "therapist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EscrowStatus != models.EscrowUnpaid {
		t.Errorf("escrow = %q, want %q", got.EscrowStatus, models.EscrowUnpaid)
	}
	if len(crediter.credits) != 0 {
		t.Errorf("issued %d credits for unpaid booking", len(crediter.credits))
	}
}
