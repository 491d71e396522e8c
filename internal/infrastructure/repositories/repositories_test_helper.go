package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		bio TEXT,
		skills TEXT,
		is_active BOOLEAN DEFAULT 1,
		telegram_id TEXT,
		telegram_username TEXT,
		telegram_linked BOOLEAN DEFAULT 0,
		telegram_linked_at DATETIME,
		investment_interests TEXT,
		investment_regions TEXT,
		mentor_specialties TEXT,
		mentor_experience INTEGER,
		mentor_hourly_rate REAL,
		mentor_availability BOOLEAN DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createStartupTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE startups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		short_description TEXT,
		stage TEXT NOT NULL,
		category TEXT NOT NULL,
		team_size INTEGER,
		project_cost REAL,
		monthly_expenses REAL,
		investment_asked REAL,
		traction_metrics TEXT,
		traction_score REAL DEFAULT 0,
		market_size TEXT,
		target_audience TEXT,
		region TEXT,
		telegram_contact TEXT NOT NULL,
		website TEXT,
		github TEXT,
		contact_email TEXT,
		views_count INTEGER DEFAULT 0,
		likes_count INTEGER DEFAULT 0,
		comments_count INTEGER DEFAULT 0,
		ai_score REAL DEFAULT 0,
		investment_readiness TEXT DEFAULT 'low',
		owner_id TEXT NOT NULL,
		is_published BOOLEAN DEFAULT 0,
		is_approved BOOLEAN DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createScoreRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE score_records (
		id TEXT PRIMARY KEY,
		startup_id TEXT UNIQUE NOT NULL,
		overall_score REAL NOT NULL,
		team_score REAL,
		market_score REAL,
		traction_score REAL,
		financial_score REAL,
		technology_score REAL,
		strengths TEXT,
		weaknesses TEXT,
		recommendations TEXT,
		matched_investors TEXT,
		matched_mentors TEXT,
		match_reasons TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createEngagementTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE likes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		startup_id TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE(user_id, startup_id)
	);`)
	mustExec(t, db, `CREATE TABLE comments (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		author_id TEXT NOT NULL,
		startup_id TEXT NOT NULL,
		is_public BOOLEAN DEFAULT 1,
		created_at DATETIME
	);`)
}

func createAnalyticsEventTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE analytics_events (
		id TEXT PRIMARY KEY,
		event_type TEXT NOT NULL,
		user_id TEXT,
		user_role TEXT,
		startup_id TEXT NOT NULL,
		metadata TEXT,
		created_at DATETIME
	);`)
}

func createMentorshipRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE mentorship_requests (
		id TEXT PRIMARY KEY,
		mentee_id TEXT NOT NULL,
		mentor_id TEXT NOT NULL,
		startup_id TEXT,
		request_message TEXT,
		goals TEXT,
		duration TEXT DEFAULT '1 month',
		status TEXT NOT NULL DEFAULT 'pending',
		response_message TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		completed_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTelegramEventTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE telegram_events (
		id TEXT PRIMARY KEY,
		event_type TEXT NOT NULL,
		user_id TEXT,
		related_user_id TEXT,
		startup_id TEXT,
		metadata TEXT,
		created_at DATETIME
	);`)
}
