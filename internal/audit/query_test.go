package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

func seedLog(t *testing.T, db *gorm.DB, row models.AuditLog) {
	t.Helper()
	require.NoError(t, db.Create(&row).Error)
}

func seedQueryFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	now := time.Now()
	alice, bob := uint64(1), uint64(2)

	seedLog(t, db, models.AuditLog{
		UserID: &alice, Action: models.AuditActionLogin,
		EntityType: "users", EntityID: "1",
		CreatedAt: now.Add(-3 * time.Hour),
	})
	seedLog(t, db, models.AuditLog{
		UserID: &alice, Action: models.AuditActionCreate,
		EntityType: "news", EntityID: "10",
		CreatedAt: now.Add(-2 * time.Hour),
	})
	seedLog(t, db, models.AuditLog{
		UserID: &bob, Action: models.AuditActionUpdate,
		EntityType: "news", EntityID: "10",
		CreatedAt: now.Add(-time.Hour),
	})
	seedLog(t, db, models.AuditLog{
		Action:     models.AuditActionDelete,
		EntityType: "news", EntityID: "11",
		CreatedAt: now.Add(-40 * 24 * time.Hour), // outside the default stats window
	})
}

func TestQueryByUser(t *testing.T) {
	db := setupTestDB(t)
	seedQueryFixture(t, db)
	q := NewQuery(db)

	logs, err := q.ByUser(1, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// newest first
	assert.Equal(t, models.AuditActionCreate, logs[0].Action)
	assert.Equal(t, models.AuditActionLogin, logs[1].Action)
}

func TestQueryByEntity(t *testing.T) {
	db := setupTestDB(t)
	seedQueryFixture(t, db)
	q := NewQuery(db)

	logs, err := q.ByEntity("news", "", 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	logs, err = q.ByEntity("news", "10", 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.AuditActionUpdate, logs[0].Action)
}

func TestQueryByAction(t *testing.T) {
	db := setupTestDB(t)
	seedQueryFixture(t, db)
	q := NewQuery(db)

	logs, err := q.ByAction(models.AuditActionLogin, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "users", logs[0].EntityType)
}

func TestQueryRecentLimit(t *testing.T) {
	db := setupTestDB(t)
	seedQueryFixture(t, db)
	q := NewQuery(db)

	logs, err := q.Recent(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.AuditActionUpdate, logs[0].Action)
}

func TestGetStatistics(t *testing.T) {
	db := setupTestDB(t)
	seedQueryFixture(t, db)
	q := NewQuery(db)

	stats, err := q.GetStatistics(0)
	require.NoError(t, err)

	// the 40 day old delete falls outside the default 30 day window
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, 30, stats.PeriodDays)
	assert.Equal(t, int64(2), stats.UniqueUsers)
	assert.Equal(t, int64(1), stats.Actions[string(models.AuditActionLogin)])
	assert.Equal(t, int64(1), stats.Actions[string(models.AuditActionCreate)])
	assert.Zero(t, stats.Actions[string(models.AuditActionDelete)])
}

func TestUserTrail(t *testing.T) {
	db := setupTestDB(t)
	seedQueryFixture(t, db)
	q := NewQuery(db)

	trail, err := q.UserTrail(1, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), trail.UserID)
	assert.Equal(t, int64(2), trail.TotalActions)
	assert.Equal(t, int64(1), trail.ActionsByType[string(models.AuditActionLogin)])
	require.NotNil(t, trail.FirstActivity)
	require.NotNil(t, trail.LastActivity)
	assert.True(t, trail.LastActivity.After(*trail.FirstActivity))

	// recent list honors the limit while totals count everything
	assert.Len(t, trail.Recent, 1)
	assert.Equal(t, models.AuditActionCreate, trail.Recent[0].Action)
}
