package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup by id and email", func(t *testing.T) {
		repo := NewUserRepository()
		user := &domain.User{ID: "u-1", Email: "asha@example.com", Role: domain.RoleCitizen}
		require.NoError(t, repo.Create(ctx, user))

		byID, err := repo.GetByID(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", byID.Email)

		byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", byEmail.ID)
	})

	t.Run("email matching is case-sensitive", func(t *testing.T) {
		repo := NewUserRepository()
		require.NoError(t, repo.Create(ctx, &domain.User{ID: "u-1", Email: "asha@example.com", Role: domain.RoleCitizen}))

		_, err := repo.GetByEmail(ctx, "Asha@Example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := NewUserRepository()
		require.NoError(t, repo.Create(ctx, &domain.User{ID: "u-1", Email: "asha@example.com", Role: domain.RoleCitizen}))

		err := repo.Create(ctx, &domain.User{ID: "u-2", Email: "asha@example.com", Role: domain.RoleCitizen})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("reset restores the seed set", func(t *testing.T) {
		repo := NewUserRepository()
		require.NoError(t, repo.Create(ctx, &domain.User{ID: "u-extra", Email: "extra@example.com", Role: domain.RoleCitizen}))

		seed := []domain.User{{ID: "u-seed", Email: "seed@example.com", Role: domain.RoleAdmin}}
		require.NoError(t, repo.Reset(ctx, seed))

		_, err := repo.GetByEmail(ctx, "extra@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		restored, err := repo.GetByEmail(ctx, "seed@example.com")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, restored.Role)
	})
}

func TestPlotRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by id and owner", func(t *testing.T) {
		repo := NewPlotRepository()
		require.NoError(t, repo.Create(ctx, &domain.Plot{PlotID: "PLOT1", CurrentOwnerEmail: "a@example.com"}))
		require.NoError(t, repo.Create(ctx, &domain.Plot{PlotID: "PLOT2", CurrentOwnerEmail: "b@example.com"}))
		require.NoError(t, repo.Create(ctx, &domain.Plot{PlotID: "PLOT3", CurrentOwnerEmail: "a@example.com"}))

		all, err := repo.List(ctx, repository.PlotFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		byOwner, err := repo.List(ctx, repository.PlotFilter{OwnerEmail: "a@example.com"})
		require.NoError(t, err)
		assert.Len(t, byOwner, 2)

		byID, err := repo.List(ctx, repository.PlotFilter{PlotID: "PLOT2"})
		require.NoError(t, err)
		require.Len(t, byID, 1)
		assert.Equal(t, "b@example.com", byID[0].CurrentOwnerEmail)
	})

	t.Run("missing plot", func(t *testing.T) {
		repo := NewPlotRepository()
		_, err := repo.GetByID(ctx, "PLOT404")
		assert.ErrorIs(t, err, domain.ErrPlotNotFound)
	})
}

func TestApplicationRepository(t *testing.T) {
	ctx := context.Background()

	newApp := func(id, email string) *domain.Application {
		return &domain.Application{
			ID:             id,
			Type:           domain.TypeMutation,
			ApplicantEmail: email,
			PlotID:         "PLOT1",
			Status:         domain.StatusSubmitted,
			PaymentStatus:  domain.PaymentPending,
			Documents:      []string{"doc"},
			History:        []domain.StatusRecord{},
		}
	}

	t.Run("stored applications do not alias caller slices", func(t *testing.T) {
		repo := NewApplicationRepository()
		app := newApp("a-1", "asha@example.com")
		require.NoError(t, repo.Create(ctx, app))

		// mutating the original must not leak into the store
		app.History = append(app.History, domain.StatusRecord{Status: "tampered"})

		stored, err := repo.GetByID(ctx, "a-1")
		require.NoError(t, err)
		assert.Empty(t, stored.History)
	})

	t.Run("list filters by applicant", func(t *testing.T) {
		repo := NewApplicationRepository()
		require.NoError(t, repo.Create(ctx, newApp("a-1", "asha@example.com")))
		require.NoError(t, repo.Create(ctx, newApp("a-2", "ravi@example.com")))

		mine, err := repo.List(ctx, repository.ApplicationFilter{ApplicantEmail: "asha@example.com"})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "a-1", mine[0].ID)
	})

	t.Run("update of a missing application fails", func(t *testing.T) {
		repo := NewApplicationRepository()
		err := repo.Update(ctx, newApp("a-404", "asha@example.com"))
		assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
	})

	t.Run("delete all empties the store", func(t *testing.T) {
		repo := NewApplicationRepository()
		require.NoError(t, repo.Create(ctx, newApp("a-1", "asha@example.com")))
		require.NoError(t, repo.DeleteAll(ctx))

		all, err := repo.List(ctx, repository.ApplicationFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("list is scoped per user", func(t *testing.T) {
		repo := NewNotificationRepository()
		require.NoError(t, repo.Append(ctx, &domain.Notification{ID: "n-1", ToUserID: "u-1", Message: "hello"}))
		require.NoError(t, repo.Append(ctx, &domain.Notification{ID: "n-2", ToUserID: "u-2", Message: "other"}))

		mine, err := repo.ListForUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "hello", mine[0].Message)
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip and delete", func(t *testing.T) {
		repo := NewSessionRepository()
		session := &domain.Session{ID: "s-1", UserID: "u-1", ExpiresAt: farFuture()}
		require.NoError(t, repo.Save(ctx, session))

		got, err := repo.Get(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.UserID)

		require.NoError(t, repo.Delete(ctx, "s-1"))
		_, err = repo.Get(ctx, "s-1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("expired sessions are evicted", func(t *testing.T) {
		repo := NewSessionRepository()
		session := &domain.Session{ID: "s-old", UserID: "u-1", ExpiresAt: farPast()}
		require.NoError(t, repo.Save(ctx, session))

		_, err := repo.Get(ctx, "s-old")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
