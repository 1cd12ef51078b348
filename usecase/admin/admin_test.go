package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
	"github.com/landgov/backend/repository/memory"
)

func TestReset(t *testing.T) {
	ctx := context.Background()
	adminCaller := domain.Identity{UserID: "u-admin", Email: "admin@landrecord.gov", Role: domain.RoleAdmin}

	seed := SeedData{
		Users: []domain.User{{ID: "u-seed", Email: "seed@example.com", Role: domain.RoleCitizen}},
		Plots: []domain.Plot{{PlotID: "PLOT1", CurrentOwnerEmail: "seed@example.com"}},
	}

	newFixture := func(t *testing.T) (*UseCase, repository.ApplicationRepository, repository.NotificationRepository, repository.UserRepository) {
		t.Helper()
		applications := memory.NewApplicationRepository()
		payments := memory.NewPaymentRepository()
		notifications := memory.NewNotificationRepository()
		users := memory.NewUserRepository()
		plots := memory.NewPlotRepository()
		return New(applications, payments, notifications, users, plots, seed, nil), applications, notifications, users
	}

	t.Run("clears workflow state and restores seeds", func(t *testing.T) {
		uc, applications, notifications, users := newFixture(t)

		require.NoError(t, applications.Create(ctx, &domain.Application{ID: "a-1", ApplicantEmail: "x@example.com"}))
		require.NoError(t, notifications.Append(ctx, &domain.Notification{ID: "n-1", ToUserID: "u-1", Message: "m"}))
		require.NoError(t, users.Create(ctx, &domain.User{ID: "u-extra", Email: "extra@example.com", Role: domain.RoleCitizen}))

		require.NoError(t, uc.Reset(ctx, adminCaller))

		apps, err := applications.List(ctx, repository.ApplicationFilter{})
		require.NoError(t, err)
		assert.Empty(t, apps)

		inbox, err := notifications.ListForUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Empty(t, inbox)

		_, err = users.GetByEmail(ctx, "extra@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		restored, err := users.GetByEmail(ctx, "seed@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-seed", restored.ID)
	})

	t.Run("only admins may reset", func(t *testing.T) {
		uc, _, _, _ := newFixture(t)

		officer := domain.Identity{UserID: "u-off", Email: "officer@landrecord.gov", Role: domain.RoleOfficer}
		err := uc.Reset(ctx, officer)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})
}
