package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/hireloop/api/internal/entity"
)

func TestWorkspaceRepository_Settings(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWorkspaceRepository(db)
	ctx := context.Background()

	got, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	name := "Acme"
	require.NoError(t, repo.SaveSettings(ctx, &entity.Settings{CompanyName: &name, EmailNotifications: true}))

	site := "https://acme.test"
	require.NoError(t, repo.SaveSettings(ctx, &entity.Settings{CompanyName: &name, Website: &site}))

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&rows))
	assert.Equal(t, 1, rows)

	got, err = repo.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", *got.CompanyName)
	assert.Equal(t, site, *got.Website)
	assert.False(t, got.EmailNotifications)
}

func TestWorkspaceRepository_Integrations(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWorkspaceRepository(db)
	ctx := context.Background()

	slack := &entity.Integration{ID: "slack", Name: "Slack", Status: entity.IntegrationConnected, Config: map[string]any{"channel": "#hiring"}}
	require.NoError(t, repo.UpsertIntegration(ctx, slack))

	again := &entity.Integration{ID: "slack", Name: "Renamed", Status: entity.IntegrationDisconnected}
	require.NoError(t, repo.UpsertIntegration(ctx, again))
	assert.Equal(t, "Slack", again.Name)
	assert.Equal(t, "#hiring", again.Config["channel"])

	list, err := repo.ListIntegrations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.IntegrationDisconnected, list[0].Status)
}

func TestWorkspaceRepository_ContactRequest(t *testing.T) {
	db := newTestDB(t)
	req := &entity.ContactRequest{Name: "Jo", Email: "jo@example.com", Message: "Demo please"}
	require.NoError(t, NewSQLiteWorkspaceRepository(db).CreateContactRequest(context.Background(), req))
	assert.NotEmpty(t, req.ID)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_requests WHERE company IS NULL`).Scan(&count))
	assert.Equal(t, 1, count)
}
