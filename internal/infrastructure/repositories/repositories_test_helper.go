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
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		full_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'client',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		failed_login_attempts INTEGER NOT NULL DEFAULT 0,
		last_login DATETIME,
		password_changed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createClientTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER UNIQUE NOT NULL,
		business_name TEXT NOT NULL,
		business_address TEXT,
		business_type TEXT,
		registration_number TEXT,
		phone TEXT,
		alternate_phone TEXT,
		services_requested TEXT NOT NULL DEFAULT '',
		onboarding_status TEXT NOT NULL DEFAULT 'pending_verification',
		account_manager_id INTEGER,
		terms_accepted BOOLEAN NOT NULL DEFAULT 0,
		privacy_policy_accepted BOOLEAN NOT NULL DEFAULT 0,
		kyc_uploaded BOOLEAN NOT NULL DEFAULT 0,
		payment_verified BOOLEAN NOT NULL DEFAULT 0,
		onboarding_completed BOOLEAN NOT NULL DEFAULT 0,
		engagement_letter_signed BOOLEAN NOT NULL DEFAULT 0,
		registration_date DATETIME NOT NULL,
		verification_date DATETIME,
		activation_date DATETIME,
		admin_notes TEXT,
		rejection_reason TEXT,
		temp_password_sent BOOLEAN NOT NULL DEFAULT 0,
		temp_password_sent_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createKYCDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE kyc_documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		document_type TEXT NOT NULL,
		document_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		mime_type TEXT NOT NULL,
		uploaded_at DATETIME NOT NULL,
		verification_status TEXT NOT NULL DEFAULT 'pending',
		verified_by_id INTEGER,
		verification_date DATETIME,
		admin_comments TEXT,
		rejection_reason TEXT,
		is_resubmission BOOLEAN NOT NULL DEFAULT 0,
		resubmission_count INTEGER NOT NULL DEFAULT 0,
		previous_document_id INTEGER,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'GHS',
		payment_reference TEXT,
		payment_method TEXT NOT NULL,
		payment_date DATETIME,
		payment_type TEXT NOT NULL DEFAULT 'onboarding_fee',
		description TEXT,
		receipt_file_path TEXT,
		receipt_filename TEXT,
		receipt_file_size INTEGER,
		receipt_mime_type TEXT,
		uploaded_at DATETIME NOT NULL,
		verification_status TEXT NOT NULL DEFAULT 'pending',
		verified_by_id INTEGER,
		verification_date DATETIME,
		admin_notes TEXT,
		rejection_reason TEXT,
		bank_statement_matched BOOLEAN NOT NULL DEFAULT 0,
		bank_statement_reference TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		category TEXT NOT NULL,
		filename TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		mime_type TEXT NOT NULL,
		year TEXT NOT NULL,
		quarter TEXT NOT NULL,
		document_date DATETIME,
		description TEXT,
		uploaded_by_id INTEGER,
		uploaded_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createMessageTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender_id INTEGER NOT NULL,
		receiver_id INTEGER NOT NULL,
		content TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT 0,
		read_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createRefreshTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE refresh_tokens (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		token TEXT UNIQUE NOT NULL,
		user_id INTEGER NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
