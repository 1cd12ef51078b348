package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationTypeIsValid(t *testing.T) {
	assert.True(t, TypeMutation.IsValid())
	assert.True(t, TypeCorrection.IsValid())
	assert.True(t, TypeConversion.IsValid())
	assert.False(t, ApplicationType("demolition").IsValid())
	assert.False(t, ApplicationType("").IsValid())
}

func TestRoleCanReview(t *testing.T) {
	assert.False(t, RoleCitizen.CanReview())
	assert.True(t, RoleOfficer.CanReview())
	assert.True(t, RoleAdmin.CanReview())
}

func TestApplicationClone(t *testing.T) {
	app := &Application{
		ID:        "a-1",
		Documents: []string{"doc"},
		History:   []StatusRecord{{Status: "submitted"}},
	}

	cp := app.Clone()
	cp.History = append(cp.History, StatusRecord{Status: "approved"})
	cp.Documents[0] = "changed"

	assert.Len(t, app.History, 1)
	assert.Equal(t, "doc", app.Documents[0])
}
