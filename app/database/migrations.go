package database

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// RunMigrations creates missing tables and indexes. Every statement is
// idempotent so the server can apply them on every start.
func RunMigrations(db *sqlx.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			email_verified BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			role TEXT NOT NULL CHECK (role IN ('master_admin', 'staff')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			sort_order INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			class TEXT NOT NULL,
			section TEXT,
			status TEXT NOT NULL DEFAULT 'active'
				CHECK (status IN ('active', 'inactive', 'alumni', 'left')),
			admission_date DATE NOT NULL DEFAULT CURRENT_DATE,
			date_of_birth DATE,
			gender TEXT,
			guardian_name TEXT NOT NULL,
			guardian_phone TEXT NOT NULL,
			guardian_relation TEXT,
			phone TEXT,
			address TEXT,
			notes TEXT,
			created_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_students_class ON students(class)`,
		`CREATE INDEX IF NOT EXISTS idx_students_status ON students(status)`,

		`CREATE TABLE IF NOT EXISTS fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			paid_amount NUMERIC NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'overdue', 'paid')),
			due_date DATE NOT NULL,
			month_year TEXT,
			payment_method TEXT,
			paid_date DATE,
			receipt_number TEXT,
			notes TEXT,
			created_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_student ON fees(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_status_due ON fees(status, due_date)`,

		`CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			class TEXT NOT NULL,
			date DATE NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('present', 'absent', 'leave')),
			notes TEXT,
			recorded_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (student_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_class_date ON attendance(class, date)`,

		`CREATE TABLE IF NOT EXISTS exams (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			class TEXT NOT NULL,
			academic_year TEXT NOT NULL,
			exam_date DATE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS exam_marks (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			exam_id UUID NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			subject TEXT NOT NULL,
			marks_obtained NUMERIC NOT NULL,
			total_marks NUMERIC NOT NULL DEFAULT 100,
			grade TEXT NOT NULL DEFAULT '',
			remarks TEXT,
			recorded_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exam_marks_exam ON exam_marks(exam_id)`,

		`CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID,
			user_email TEXT,
			action TEXT NOT NULL CHECK (action IN ('INSERT', 'UPDATE', 'DELETE')),
			table_name TEXT NOT NULL,
			record_id TEXT,
			old_data JSONB,
			new_data JSONB,
			ip_address TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_ts ON audit_logs(timestamp DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	log.Info("database migrations completed")
	return nil
}
