package service

import (
	"context"
	"testing"
	"time"

	"github.com/expohall/expo-booking-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock LinkRepository ---

type mockLinkRepo struct {
	upsertFn     func(ctx context.Context, link *models.Link) error
	findFn       func(ctx context.Context, companyID, edition string) (*models.Link, error)
	invalidateFn func(ctx context.Context, companyID, edition string) error
}

func (m *mockLinkRepo) Upsert(ctx context.Context, link *models.Link) error {
	return m.upsertFn(ctx, link)
}
func (m *mockLinkRepo) FindByCompanyAndEdition(ctx context.Context, companyID, edition string) (*models.Link, error) {
	return m.findFn(ctx, companyID, edition)
}
func (m *mockLinkRepo) Invalidate(ctx context.Context, companyID, edition string) error {
	return m.invalidateFn(ctx, companyID, edition)
}

const linkTestSecret = "link-test-secret"

// --- Tests ---

func TestLinkCreate_Success(t *testing.T) {
	var stored *models.Link
	repo := &mockLinkRepo{
		upsertFn: func(ctx context.Context, link *models.Link) error {
			stored = link
			return nil
		},
	}

	svc := NewLinkService(repo, linkTestSecret)
	link, err := svc.Create(context.Background(), "acme", "2026", 3,
		models.Activities{models.ActivityWorkshop}, time.Hour)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "acme", link.CompanyID)
	assert.Equal(t, 3, link.ParticipationDays)
	assert.True(t, link.Valid)
	assert.NotEmpty(t, link.Token)
}

func TestLinkCreate_NegativeDays(t *testing.T) {
	svc := NewLinkService(&mockLinkRepo{}, linkTestSecret)

	_, err := svc.Create(context.Background(), "acme", "2026", -1, nil, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidGrant)
}

func TestLinkCreate_UnknownActivityKind(t *testing.T) {
	svc := NewLinkService(&mockLinkRepo{}, linkTestSecret)

	_, err := svc.Create(context.Background(), "acme", "2026", 1,
		models.Activities{"karaoke"}, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidGrant)
}

func TestLinkVerify_Success(t *testing.T) {
	var issued *models.Link
	repo := &mockLinkRepo{
		upsertFn: func(ctx context.Context, link *models.Link) error {
			issued = link
			return nil
		},
		findFn: func(ctx context.Context, companyID, edition string) (*models.Link, error) {
			return issued, nil
		},
	}

	svc := NewLinkService(repo, linkTestSecret)
	_, err := svc.Create(context.Background(), "acme", "2026", 2, nil, time.Hour)
	require.NoError(t, err)

	link, err := svc.Verify(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "acme", link.CompanyID)
	assert.Equal(t, "2026", link.Edition)
}

func TestLinkVerify_GarbageToken(t *testing.T) {
	svc := NewLinkService(&mockLinkRepo{}, linkTestSecret)

	_, err := svc.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrLinkInvalid)
}

func TestLinkVerify_SupersededToken(t *testing.T) {
	// A re-issued link keeps only the newest token; older ones stop working
	// even though their signature is still valid.
	var issued *models.Link
	repo := &mockLinkRepo{
		upsertFn: func(ctx context.Context, link *models.Link) error {
			issued = link
			return nil
		},
		findFn: func(ctx context.Context, companyID, edition string) (*models.Link, error) {
			return issued, nil
		},
	}

	svc := NewLinkService(repo, linkTestSecret)
	_, err := svc.Create(context.Background(), "acme", "2026", 2, nil, time.Hour)
	require.NoError(t, err)
	oldToken := issued.Token

	// Tokens embed issued-at seconds; wait for a distinct signature.
	time.Sleep(1100 * time.Millisecond)
	_, err = svc.Create(context.Background(), "acme", "2026", 2, nil, time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, oldToken, issued.Token)

	_, err = svc.Verify(context.Background(), oldToken)
	assert.ErrorIs(t, err, ErrLinkInvalid)
}

func TestLinkVerify_Revoked(t *testing.T) {
	var issued *models.Link
	repo := &mockLinkRepo{
		upsertFn: func(ctx context.Context, link *models.Link) error {
			issued = link
			return nil
		},
		findFn: func(ctx context.Context, companyID, edition string) (*models.Link, error) {
			return issued, nil
		},
	}

	svc := NewLinkService(repo, linkTestSecret)
	_, err := svc.Create(context.Background(), "acme", "2026", 2, nil, time.Hour)
	require.NoError(t, err)

	issued.Valid = false

	_, err = svc.Verify(context.Background(), issued.Token)
	assert.ErrorIs(t, err, ErrLinkInvalid)
}

func TestLinkRevoke_NotFound(t *testing.T) {
	repo := &mockLinkRepo{
		invalidateFn: func(ctx context.Context, companyID, edition string) error {
			return gorm.ErrRecordNotFound
		},
	}

	svc := NewLinkService(repo, linkTestSecret)
	err := svc.Revoke(context.Background(), "ghost", "2026")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}
