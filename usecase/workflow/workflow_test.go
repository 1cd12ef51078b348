package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/internal/services"
	"github.com/landgov/backend/repository"
	"github.com/landgov/backend/repository/memory"
)

var (
	citizenA = domain.Identity{UserID: "u-asha", Email: "asha@example.com", Role: domain.RoleCitizen}
	citizenB = domain.Identity{UserID: "u-ravi", Email: "ravi@example.com", Role: domain.RoleCitizen}
	officer  = domain.Identity{UserID: "u-officer", Email: "officer@landrecord.gov", Role: domain.RoleOfficer}
	admin    = domain.Identity{UserID: "u-admin", Email: "admin@landrecord.gov", Role: domain.RoleAdmin}
)

type engineFixture struct {
	engine        *Engine
	applications  repository.ApplicationRepository
	payments      repository.PaymentRepository
	notifications repository.NotificationRepository
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	plots := memory.NewPlotRepository()
	applications := memory.NewApplicationRepository()
	payments := memory.NewPaymentRepository()
	notifications := memory.NewNotificationRepository()

	for _, identity := range []domain.Identity{citizenA, citizenB, officer, admin} {
		require.NoError(t, users.Create(ctx, &domain.User{
			ID:    identity.UserID,
			Email: identity.Email,
			Role:  identity.Role,
		}))
	}
	require.NoError(t, plots.Create(ctx, &domain.Plot{PlotID: "PLOT123", CurrentOwnerEmail: citizenA.Email}))
	require.NoError(t, plots.Create(ctx, &domain.Plot{PlotID: "PLOT789", CurrentOwnerEmail: citizenB.Email}))

	notifier := services.NewStoreNotifier(notifications, nil, nil)
	return &engineFixture{
		engine:        New(applications, plots, users, payments, notifier, nil),
		applications:  applications,
		payments:      payments,
		notifications: notifications,
	}
}

func (f *engineFixture) submit(t *testing.T, caller domain.Identity, plotID string) *domain.Application {
	t.Helper()
	app, err := f.engine.Submit(context.Background(), caller, SubmitRequest{
		Type:      domain.TypeMutation,
		PlotID:    plotID,
		Documents: []string{"doc-1"},
	})
	require.NoError(t, err)
	return app
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission creates pending application and one notification", func(t *testing.T) {
		f := newEngineFixture(t)

		app, err := f.engine.Submit(ctx, citizenA, SubmitRequest{
			Type:      domain.TypeMutation,
			PlotID:    "PLOT123",
			Documents: []string{"deed.pdf", "id-proof.pdf"},
			Reason:    "ownership transfer after sale",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, app.ID)
		assert.Equal(t, domain.StatusSubmitted, app.Status)
		assert.Equal(t, domain.PaymentPending, app.PaymentStatus)
		assert.Empty(t, app.OfficerAssigned)
		assert.Empty(t, app.History)
		assert.Equal(t, citizenA.Email, app.ApplicantEmail)

		notifications, err := f.notifications.ListForUser(ctx, citizenA.UserID)
		require.NoError(t, err)
		assert.Len(t, notifications, 1)
	})

	t.Run("missing fields rejected before anything else", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.engine.Submit(ctx, citizenA, SubmitRequest{Type: domain.TypeMutation, PlotID: "PLOT123"})
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

		_, err = f.engine.Submit(ctx, citizenA, SubmitRequest{PlotID: "PLOT123", Documents: []string{"d"}})
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.engine.Submit(ctx, citizenA, SubmitRequest{
			Type:      "demolition",
			PlotID:    "PLOT123",
			Documents: []string{"d"},
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("non-owner rejected and nothing persisted", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.engine.Submit(ctx, citizenB, SubmitRequest{
			Type:      domain.TypeMutation,
			PlotID:    "PLOT123",
			Documents: []string{"d"},
		})
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

		apps, err := f.applications.List(ctx, repository.ApplicationFilter{})
		require.NoError(t, err)
		assert.Empty(t, apps)

		notifications, err := f.notifications.ListForUser(ctx, citizenB.UserID)
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})

	t.Run("unknown plot collapses into the same rejection", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.engine.Submit(ctx, citizenA, SubmitRequest{
			Type:      domain.TypeMutation,
			PlotID:    "PLOT999",
			Documents: []string{"d"},
		})
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("only citizens may submit", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.engine.Submit(ctx, officer, SubmitRequest{
			Type:      domain.TypeMutation,
			PlotID:    "PLOT123",
			Documents: []string{"d"},
		})
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})
}

func TestCompletePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("first payment completes atomically", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		payment, err := f.engine.CompletePayment(ctx, citizenA, app.ID, 500)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
		assert.Equal(t, citizenA.Email, payment.PaidBy)

		stored, err := f.applications.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentCompleted, stored.PaymentStatus)

		ledger, err := f.payments.ListByApplication(ctx, app.ID)
		require.NoError(t, err)
		assert.Len(t, ledger, 1)
	})

	t.Run("double payment conflicts and creates no second record", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		_, err := f.engine.CompletePayment(ctx, citizenA, app.ID, 500)
		require.NoError(t, err)

		_, err = f.engine.CompletePayment(ctx, citizenA, app.ID, 500)
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

		ledger, err := f.payments.ListByApplication(ctx, app.ID)
		require.NoError(t, err)
		assert.Len(t, ledger, 1)
	})

	t.Run("someone else's application reads as not found", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		_, err := f.engine.CompletePayment(ctx, citizenB, app.ID, 500)
		assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		_, err := f.engine.CompletePayment(ctx, citizenA, app.ID, 0)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("officer update appends exactly one history record", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		updated, err := f.engine.UpdateStatus(ctx, officer, app.ID, "under_review", "documents received")
		require.NoError(t, err)
		assert.Equal(t, "under_review", updated.Status)
		require.Len(t, updated.History, 1)
		assert.Equal(t, domain.RoleOfficer, updated.History[0].ActorRole)
		assert.Equal(t, "under_review", updated.History[0].Status)
		assert.Equal(t, "documents received", updated.History[0].Remarks)
		assert.Equal(t, officer.UserID, updated.OfficerAssigned)
	})

	t.Run("history grows monotonically", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		statuses := []string{"under_review", "approved", "under_review", "approved"}
		for i, status := range statuses {
			updated, err := f.engine.UpdateStatus(ctx, officer, app.ID, status, "")
			require.NoError(t, err)
			assert.Len(t, updated.History, i+1)
		}
	})

	t.Run("admin may update too", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		updated, err := f.engine.UpdateStatus(ctx, admin, app.ID, "rejected", "forged documents")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, updated.History[0].ActorRole)
	})

	t.Run("citizen may not update", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		_, err := f.engine.UpdateStatus(ctx, citizenA, app.ID, "approved", "")
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("missing application", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.engine.UpdateStatus(ctx, officer, "nope", "approved", "")
		assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
	})

	t.Run("empty status rejected", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		_, err := f.engine.UpdateStatus(ctx, officer, app.ID, "", "")
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	t.Run("update notifies the applicant", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		before, err := f.notifications.ListForUser(ctx, citizenA.UserID)
		require.NoError(t, err)

		_, err = f.engine.UpdateStatus(ctx, officer, app.ID, "approved", "verified")
		require.NoError(t, err)

		after, err := f.notifications.ListForUser(ctx, citizenA.UserID)
		require.NoError(t, err)
		assert.Len(t, after, len(before)+1)
	})
}

func TestListApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("citizens see only their own", func(t *testing.T) {
		f := newEngineFixture(t)
		f.submit(t, citizenA, "PLOT123")
		f.submit(t, citizenB, "PLOT789")

		apps, err := f.engine.ListApplications(ctx, citizenA)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		for _, app := range apps {
			assert.Equal(t, citizenA.Email, app.ApplicantEmail)
		}
	})

	t.Run("officers see everything", func(t *testing.T) {
		f := newEngineFixture(t)
		f.submit(t, citizenA, "PLOT123")
		f.submit(t, citizenB, "PLOT789")

		apps, err := f.engine.ListApplications(ctx, officer)
		require.NoError(t, err)
		assert.Len(t, apps, 2)
	})

	t.Run("get hides other citizens' applications", func(t *testing.T) {
		f := newEngineFixture(t)
		app := f.submit(t, citizenA, "PLOT123")

		_, err := f.engine.GetApplication(ctx, citizenB, app.ID)
		assert.ErrorIs(t, err, domain.ErrApplicationNotFound)

		got, err := f.engine.GetApplication(ctx, officer, app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.ID, got.ID)
	})
}

// Full lifecycle: file, pay, approve.
func TestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	app, err := f.engine.Submit(ctx, citizenA, SubmitRequest{
		Type:      domain.TypeMutation,
		PlotID:    "PLOT123",
		Documents: []string{"sale-deed.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, app.Status)
	assert.Equal(t, domain.PaymentPending, app.PaymentStatus)

	payment, err := f.engine.CompletePayment(ctx, citizenA, app.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	assert.InDelta(t, 500, payment.Amount, 0.001)

	updated, err := f.engine.UpdateStatus(ctx, officer, app.ID, "approved", "verified")
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)
	assert.Equal(t, domain.PaymentCompleted, updated.PaymentStatus)
	require.Len(t, updated.History, 1)
	assert.Equal(t, domain.RoleOfficer, updated.History[0].ActorRole)
	assert.Equal(t, "verified", updated.History[0].Remarks)

	// submission + payment + status update
	notifications, err := f.notifications.ListForUser(ctx, citizenA.UserID)
	require.NoError(t, err)
	assert.Len(t, notifications, 3)
}
