package themes

import (
	"context"
	"testing"

	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()

	db := setupThemesTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, themesTestLogger())
	require.NoError(t, err)
	return svc, repo
}

func fullInput(name string) Input {
	input := Input{ThemeName: name}
	applyPaletteDefaults(&input)
	return input
}

func TestServiceCreateBackfillsBlankColors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), Input{ThemeName: "উৎসব", PrimaryColor: "#ff0066"})
	require.NoError(t, err)
	require.Equal(t, "#ff0066", created.PrimaryColor)
	require.Equal(t, DefaultPalette().BackgroundColor, created.BackgroundColor)
	require.False(t, created.IsActive)
}

func TestServiceCreateRejectsBadHex(t *testing.T) {
	svc, _ := newTestService(t)

	input := fullInput("bad")
	input.PrimaryColor = "not-a-color"
	_, err := svc.Create(context.Background(), uuid.New(), input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceActivateDeactivatesOthers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	adminID := uuid.New()

	first, err := svc.Create(ctx, adminID, fullInput("first"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, adminID, fullInput("second"))
	require.NoError(t, err)

	_, err = svc.Activate(ctx, first.ID)
	require.NoError(t, err)
	activated, err := svc.Activate(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, activated.IsActive)

	reloaded, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, reloaded.IsActive)

	active, err := svc.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)
}

func TestServiceActivateMissingTheme(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Activate(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteRefusesActiveTheme(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), fullInput("keeper"))
	require.NoError(t, err)
	_, err = svc.Activate(ctx, created.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestServiceDeleteInactiveTheme(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), fullInput("ephemeral"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceGetActiveNilWhenNoneActive(t *testing.T) {
	svc, _ := newTestService(t)

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	require.Nil(t, active)
}

func TestServiceUpdatePreservesActiveFlag(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), fullInput("editable"))
	require.NoError(t, err)
	_, err = svc.Activate(ctx, created.ID)
	require.NoError(t, err)

	input := fullInput("renamed")
	input.PrimaryColor = "#123456"
	updated, err := svc.Update(ctx, created.ID, input)
	require.NoError(t, err)
	require.True(t, updated.IsActive)
	require.Equal(t, "#123456", updated.PrimaryColor)
	require.Equal(t, "renamed", updated.ThemeName)
}
