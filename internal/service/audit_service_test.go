package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/repository"
)

type adminLogRepoStub struct {
	entries []models.AdminLog
	err     error
}

func (r *adminLogRepoStub) Create(_ context.Context, entry *models.AdminLog) error {
	if r.err != nil {
		return r.err
	}
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *adminLogRepoStub) List(_ context.Context, filter repository.AdminLogFilter) ([]models.AdminLog, int64, error) {
	var out []models.AdminLog
	for _, entry := range r.entries {
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.AdminID != nil && entry.AdminID != *filter.AdminID {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func TestAuditRecord(t *testing.T) {
	repo := &adminLogRepoStub{}
	svc := NewAuditService(repo, zerolog.Nop())

	targetID := "42"
	entry, err := svc.Record(context.Background(), AuditEntry{
		AdminID:    7,
		Action:     "Add_Minutes",
		TargetType: "User",
		TargetID:   &targetID,
		Details:    map[string]interface{}{"minutes": 30},
	})
	require.NoError(t, err)

	require.Equal(t, uint(7), entry.AdminID)
	require.Equal(t, "add_minutes", entry.Action)
	require.Equal(t, "user", entry.TargetType)
	require.Equal(t, "42", *entry.TargetID)
	require.Len(t, repo.entries, 1)
}

func TestAuditRecordRejectsMissingAdmin(t *testing.T) {
	svc := NewAuditService(&adminLogRepoStub{}, zerolog.Nop())

	_, err := svc.Record(context.Background(), AuditEntry{Action: "view_users", TargetType: "user"})
	require.Error(t, err)
}

func TestAuditRecordRejectsUnknownTargetType(t *testing.T) {
	svc := NewAuditService(&adminLogRepoStub{}, zerolog.Nop())

	_, err := svc.Record(context.Background(), AuditEntry{AdminID: 1, Action: "view_users", TargetType: "invoice"})
	require.Error(t, err)
}

func TestAuditRecordMasksSensitiveDetails(t *testing.T) {
	repo := &adminLogRepoStub{}
	svc := NewAuditService(repo, zerolog.Nop())

	entry, err := svc.Record(context.Background(), AuditEntry{
		AdminID:    7,
		Action:     "export_data",
		TargetType: "system",
		Details: map[string]interface{}{
			"user_email":   "parent@example.com",
			"access_token": "secret",
			"format":       "csv",
		},
	})
	require.NoError(t, err)

	require.Equal(t, "***", entry.Details["user_email"])
	require.Equal(t, "***", entry.Details["access_token"])
	require.Equal(t, "csv", entry.Details["format"])
}

func TestAuditList(t *testing.T) {
	repo := &adminLogRepoStub{}
	svc := NewAuditService(repo, zerolog.Nop())

	for _, action := range []string{"view_users", "view_users", "export_data"} {
		_, err := svc.Record(context.Background(), AuditEntry{AdminID: 1, Action: action, TargetType: "system"})
		require.NoError(t, err)
	}

	listed, err := svc.List(context.Background(), dto.AdminLogListRequest{Action: "view_users", PageSize: 10})
	require.NoError(t, err)
	require.Len(t, listed.Items, 2)
	require.EqualValues(t, 2, listed.Pagination.TotalItems)
}
