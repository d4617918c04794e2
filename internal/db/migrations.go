package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'project_status') THEN
			CREATE TYPE project_status AS ENUM ('Planned', 'Ongoing', 'Completed', 'Flagged');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'project_category') THEN
			CREATE TYPE project_category AS ENUM ('Education', 'Health', 'Water', 'Infrastructure', 'Security', 'Environment', 'Other');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('admin', 'moderator', 'viewer');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_status') THEN
			CREATE TYPE user_status AS ENUM ('active', 'disabled');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS constituencies (
		code VARCHAR(16) PRIMARY KEY,
		name VARCHAR(160) NOT NULL,
		county VARCHAR(120) NOT NULL,
		mp_name VARCHAR(160) NOT NULL,
		population BIGINT,
		pas_score NUMERIC(5,2)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_constituencies_name ON constituencies (name);`,
	`CREATE INDEX IF NOT EXISTS idx_constituencies_county ON constituencies (county);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		category project_category NOT NULL,
		status project_status NOT NULL DEFAULT 'Planned',
		budget NUMERIC(18,2) NOT NULL,
		spent NUMERIC(18,2),
		progress NUMERIC(5,2),
		constituency_code VARCHAR(16) NOT NULL REFERENCES constituencies(code),
		start_date TIMESTAMPTZ,
		completion_date TIMESTAMPTZ,
		is_mock BOOLEAN NOT NULL DEFAULT TRUE,
		source_name VARCHAR(120),
		source_url VARCHAR(500),
		source_doc_ref VARCHAR(120),
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_title ON projects (title);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_constituency ON projects (constituency_code);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects (status);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_is_mock ON projects (is_mock);`,
	`CREATE TABLE IF NOT EXISTS contractors (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(160) NOT NULL,
		phone VARCHAR(40),
		email VARCHAR(160),
		registration_no VARCHAR(120),
		address VARCHAR(240),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contractors_name ON contractors (name);`,
	`CREATE TABLE IF NOT EXISTS procurement_awards (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		contractor_id BIGINT NOT NULL REFERENCES contractors(id),
		tender_id VARCHAR(120),
		procurement_method VARCHAR(80),
		contract_value NUMERIC(18,2),
		award_date DATE,
		contractor_share_hint NUMERIC(6,3),
		performance_flag BOOLEAN NOT NULL DEFAULT FALSE,
		performance_flag_reason VARCHAR(500),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_awards_project_id ON procurement_awards (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_awards_contractor_id ON procurement_awards (contractor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_awards_tender_id ON procurement_awards (tender_id);`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name VARCHAR(100),
		email VARCHAR(255),
		message VARCHAR(2000) NOT NULL,
		ip_address VARCHAR(45),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_project_id ON feedback (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_status ON feedback (status);`,
	`CREATE TABLE IF NOT EXISTS project_images (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		filename VARCHAR(255) NOT NULL,
		object_name VARCHAR(500) NOT NULL,
		caption VARCHAR(500),
		uploaded_by VARCHAR(50) NOT NULL DEFAULT 'admin',
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_project_images_project_id ON project_images (project_id);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(120) NOT NULL,
		password_hash VARCHAR(200) NOT NULL,
		full_name VARCHAR(160),
		email VARCHAR(160),
		role user_role NOT NULL DEFAULT 'moderator',
		status user_status NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login TIMESTAMPTZ
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_username ON users (username);`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
