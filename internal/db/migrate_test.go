package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

const seedUser = `INSERT INTO users (id, email, full_name, created_at)
	VALUES ('u1', 'ada@example.com', 'Ada', '2025-01-01T00:00:00.000000Z')`

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; ALTER TABLE re-runs must be tolerated.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"users", "work_sessions", "meetings", "emails", "journal_entries", "burnout_scores"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_work_sessions_user_start",
		"idx_meetings_user_start",
		"idx_emails_user_sent",
		"idx_journal_entries_user_created",
		"idx_burnout_scores_user_calculated",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func TestMigrate_BurnoutLevelCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(seedUser)
	require.NoError(t, err)

	insert := `INSERT INTO burnout_scores (id, user_id, overall_score, work_hours_score, sentiment_score,
		meeting_load_score, email_stress_score, burnout_level, calculated_at)
		VALUES (?, 'u1', 0.1, 0.1, 0.1, 0.1, 0.1, ?, '2025-01-01T00:00:00.000000Z')`

	_, err = db.Exec(insert, "s1", "extreme")
	assert.Error(t, err, "unknown burnout level should be rejected by CHECK constraint")

	_, err = db.Exec(insert, "s1", "low")
	assert.NoError(t, err)
}

func TestMigrate_UserDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(seedUser)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO journal_entries (id, user_id, content, created_at)
		VALUES ('j1', 'u1', 'long day', '2025-01-01T00:00:00.000000Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM users WHERE id = 'u1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM journal_entries`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestMigrate_RejectsOrphanRecords(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO meetings (id, user_id, title, start_time, end_time, duration_minutes, created_at)
		VALUES ('m1', 'ghost', 'Standup', '2025-01-01T09:00:00.000000Z', '2025-01-01T09:15:00.000000Z', 15, '2025-01-01T00:00:00.000000Z')`)
	assert.Error(t, err, "meeting for unknown user should violate the foreign key")
}

func TestMigrate_EmailDefaults(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(seedUser)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO emails (id, user_id, sent_at, created_at)
		VALUES ('e1', 'u1', '2025-01-01T09:00:00.000000Z', '2025-01-01T09:00:00.000000Z')`)
	require.NoError(t, err)

	var isSent, afterHours int
	var indicators string
	var sentiment sql.NullFloat64
	var stress float64
	err = db.QueryRow(`SELECT is_sent, is_after_hours, stress_indicators, sentiment_score, stress_level FROM emails WHERE id = 'e1'`).
		Scan(&isSent, &afterHours, &indicators, &sentiment, &stress)
	require.NoError(t, err)
	assert.Equal(t, 1, isSent)
	assert.Equal(t, 0, afterHours)
	assert.Equal(t, "{}", indicators)
	assert.False(t, sentiment.Valid)
	assert.Equal(t, 0.0, stress)
}

func TestNumberPlaceholders(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`SELECT 1`, `SELECT 1`},
		{`SELECT * FROM t WHERE a = ? AND b = ?`, `SELECT * FROM t WHERE a = $1 AND b = $2`},
		{`SELECT '?' FROM t WHERE a = ?`, `SELECT '?' FROM t WHERE a = $1`},
		{`INSERT INTO t (a, b, c) VALUES (?, ?, ?)`, `INSERT INTO t (a, b, c) VALUES ($1, $2, $3)`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, numberPlaceholders(tt.in))
	}
}

func TestRebind_PassThroughForSQLite(t *testing.T) {
	db := openTestDB(t)

	assert.Same(t, db, Rebind(DialectSQLite, db))
	assert.Same(t, db, Rebind(DialectLibSQL, db))

	wrapped := Rebind(DialectPostgres, db)
	assert.IsType(t, rebinder{}, wrapped)
	assert.Equal(t, wrapped, Rebind(DialectPostgres, wrapped), "rebinding twice should not double-wrap")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database driver")
}

func TestOpen_SQLiteStore(t *testing.T) {
	store, err := Open(Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	assert.Equal(t, DialectSQLite, store.Dialect)
	assert.NotNil(t, store.Conn())
	assert.NotNil(t, store.UnitOfWork())
}
