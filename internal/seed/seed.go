package seed

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
	"github.com/landgov/backend/usecase/admin"
)

// Sample builds the demo dataset: one admin, one officer, two citizens, and
// a handful of plots owned by the citizens. Passwords are hashed at build
// time so the stores never see plaintext.
func Sample() (admin.SeedData, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return admin.SeedData{}, err
	}

	users := []domain.User{
		{ID: uuid.NewString(), Email: "admin@landrecord.gov", Role: domain.RoleAdmin, Language: "en", PasswordHash: string(hash)},
		{ID: uuid.NewString(), Email: "officer@landrecord.gov", Role: domain.RoleOfficer, Language: "en", PasswordHash: string(hash)},
		{ID: uuid.NewString(), Email: "asha@example.com", Role: domain.RoleCitizen, Language: "hi", PasswordHash: string(hash)},
		{ID: uuid.NewString(), Email: "ravi@example.com", Role: domain.RoleCitizen, Language: "en", PasswordHash: string(hash)},
	}

	plots := []domain.Plot{
		{PlotID: "PLOT123", CurrentOwnerEmail: "asha@example.com", AreaSqm: 1200, PlotType: "agricultural", Village: "Rampur"},
		{PlotID: "PLOT456", CurrentOwnerEmail: "asha@example.com", AreaSqm: 450, PlotType: "residential", Village: "Rampur"},
		{PlotID: "PLOT789", CurrentOwnerEmail: "ravi@example.com", AreaSqm: 2300, PlotType: "agricultural", Village: "Basantpur"},
	}

	return admin.SeedData{Users: users, Plots: plots}, nil
}

// Apply loads the dataset into the user and plot repositories through their
// reset capability. Intended for fresh stores at boot.
func Apply(ctx context.Context, data admin.SeedData, users repository.UserRepository, plots repository.PlotRepository) error {
	if err := users.Reset(ctx, data.Users); err != nil {
		return err
	}
	return plots.Reset(ctx, data.Plots)
}
