package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-ledger/backend/internal/domain/entity"
	"github.com/project-ledger/backend/internal/integration/persistence/model"
)

func newDigestJob(recipient string) *entity.EmailJob {
	return entity.NewEmailJob(entity.TemplateDeadlineDigest, recipient, "Rina", "Pengingat tenggat", map[string]interface{}{
		"upcoming": []interface{}{
			map[string]interface{}{"project_name": "Gardu Induk Sangatta", "days": 4},
		},
	})
}

func TestEmailQueueRepository_DueAndSave(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailQueueRepository(openTestDB(t))
	now := time.Now().UTC()

	due := newDigestJob("admin@permata.test")
	later := newDigestJob("direksi@permata.test")
	later.ScheduledAt = now.Add(time.Hour)
	require.NoError(t, repo.Enqueue(ctx, due))
	require.NoError(t, repo.Enqueue(ctx, later))

	jobs, err := repo.Due(ctx, now.Add(time.Second), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, due.ID, jobs[0].ID)
	assert.Equal(t, "Gardu Induk Sangatta", jobs[0].TemplateData["upcoming"].([]interface{})[0].(map[string]interface{})["project_name"])

	jobs[0].MarkSent("re_123")
	require.NoError(t, repo.Save(ctx, jobs[0]))

	jobs, err = repo.Due(ctx, now.Add(2*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, later.ID, jobs[0].ID)
}

func TestEmailQueueRepository_PurgeSent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewEmailQueueRepository(db)
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -30)

	oldSent := newDigestJob("admin@permata.test")
	oldSent.MarkSent("re_old")
	*oldSent.ProcessedAt = now.AddDate(0, 0, -45)

	recentSent := newDigestJob("admin@permata.test")
	recentSent.MarkSent("re_recent")
	*recentSent.ProcessedAt = now.AddDate(0, 0, -2)

	oldFailed := newDigestJob("admin@permata.test")
	oldFailed.MarkFailed(errors.New("422 invalid recipient"), true)
	*oldFailed.ProcessedAt = now.AddDate(0, 0, -45)

	pending := newDigestJob("admin@permata.test")

	for _, job := range []*entity.EmailJob{oldSent, recentSent, oldFailed, pending} {
		require.NoError(t, repo.Enqueue(ctx, job))
	}

	removed, err := repo.PurgeSent(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var remaining []model.EmailJobModel
	require.NoError(t, db.Order("created_at").Find(&remaining).Error)
	ids := make(map[string]bool)
	for _, row := range remaining {
		ids[row.ID.String()] = true
	}
	assert.Len(t, remaining, 3)
	assert.False(t, ids[oldSent.ID.String()])
	assert.True(t, ids[recentSent.ID.String()])
	assert.True(t, ids[oldFailed.ID.String()])
	assert.True(t, ids[pending.ID.String()])

	removed, err = repo.PurgeSent(ctx, cutoff)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
