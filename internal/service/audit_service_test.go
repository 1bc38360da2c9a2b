package service

import (
	"context"
	"testing"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/repository"
	"clinic-booking/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServiceWritesMetadata(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(quietLogger(), repo)
	ctx := context.Background()

	require.NoError(t, svc.LogCreate(ctx, db, entity.AuditActionPatientCreate, "patient", "1", map[string]string{"email": "a@x.com"}))
	require.NoError(t, svc.LogUpdate(ctx, db, entity.AuditActionPatientUpdate, "patient", "1", "old", "new"))
	require.NoError(t, svc.LogDelete(ctx, db, entity.AuditActionPatientDelete, "patient", "1", "old"))

	logs, err := repo.FindAll(ctx, db, 0, 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)

	deleted := logs[0]
	assert.Equal(t, entity.AuditActionPatientDelete, deleted.Action)
	assert.Equal(t, "old", deleted.Metadata["old_value"])
	assert.Nil(t, deleted.Metadata["new_value"])

	created := logs[2]
	assert.Equal(t, "1", created.Metadata["entity_id"])
	assert.Nil(t, created.Metadata["old_value"])
	assert.Equal(t, map[string]interface{}{"email": "a@x.com"}, created.Metadata["new_value"])
}
