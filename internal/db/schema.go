package db

// SchemaSQL is the complete schema for fresh installs.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(); if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column".
//
// The DDL is restricted to types and clauses that SQLite and PostgreSQL both
// accept (TEXT, INTEGER, BIGINT, BOOLEAN, TIMESTAMP, inline REFERENCES).
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `go test ./...` to verify alignment
const SchemaSQL = `
-- Reference data: seeded from the static catalog in core/workflow
CREATE TABLE IF NOT EXISTS stages (
	id INTEGER PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	sort_order INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transitions (
	id INTEGER PRIMARY KEY,
	from_stage_id INTEGER NOT NULL REFERENCES stages(id),
	to_stage_id INTEGER NOT NULL REFERENCES stages(id),
	guard_name TEXT NOT NULL,
	sort_order INTEGER NOT NULL,
	UNIQUE (from_stage_id, to_stage_id)
);

-- Cases
CREATE TABLE IF NOT EXISTS cases (
	id TEXT PRIMARY KEY,
	current_stage_id INTEGER NOT NULL REFERENCES stages(id),
	previous_stage_id INTEGER REFERENCES stages(id),
	status TEXT NOT NULL DEFAULT 'active',
	applicant_name TEXT NOT NULL,
	seller_ref TEXT NOT NULL,
	buyer_ref TEXT NOT NULL,
	plot_ref TEXT NOT NULL,
	owner_ref TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cases_stage ON cases(current_stage_id);
CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status);

-- Intake documents
CREATE TABLE IF NOT EXISTS case_documents (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL REFERENCES cases(id),
	doc_type TEXT NOT NULL,
	original_seen BOOLEAN NOT NULL DEFAULT FALSE,
	seen_by TEXT,
	seen_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (case_id, doc_type)
);

-- Section clearances: at most one live row per (case, section)
CREATE TABLE IF NOT EXISTS clearances (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL REFERENCES cases(id),
	section TEXT NOT NULL CHECK (section IN ('BCA', 'HOUSING', 'ACCOUNTS', 'WATER')),
	status TEXT NOT NULL CHECK (status IN ('PENDING', 'CLEAR', 'OBJECTION')),
	remarks TEXT,
	updated_by TEXT,
	cleared_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (case_id, section)
);

-- Reviewer verdicts, upserted per (case, section)
CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL REFERENCES cases(id),
	section TEXT NOT NULL,
	reviewer_id TEXT NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED')),
	remarks TEXT,
	reviewed_at TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (case_id, section)
);

-- Accounts breakdown, one per case
CREATE TABLE IF NOT EXISTS accounts_breakdowns (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL UNIQUE REFERENCES cases(id),
	transfer_fee BIGINT NOT NULL DEFAULT 0,
	stamp_duty BIGINT NOT NULL DEFAULT 0,
	registration_fee BIGINT NOT NULL DEFAULT 0,
	mutation_fee BIGINT NOT NULL DEFAULT 0,
	processing_fee BIGINT NOT NULL DEFAULT 0,
	development_charges BIGINT NOT NULL DEFAULT 0,
	arrears BIGINT NOT NULL DEFAULT 0,
	penalty BIGINT NOT NULL DEFAULT 0,
	total_amount BIGINT NOT NULL DEFAULT 0,
	paid_amount BIGINT NOT NULL DEFAULT 0,
	remaining_amount BIGINT NOT NULL DEFAULT 0,
	payment_verified BOOLEAN NOT NULL DEFAULT FALSE,
	status TEXT NOT NULL CHECK (status IN ('PENDING', 'AWAITING_PAYMENT', 'ON_HOLD')),
	objection_reason TEXT,
	objection_at TIMESTAMP,
	resolved_at TIMESTAMP,
	calculated_by TEXT,
	verified_by TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Transfer deed, one per case, immutable once finalized
CREATE TABLE IF NOT EXISTS transfer_deeds (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL UNIQUE REFERENCES cases(id),
	witness1 TEXT,
	witness2 TEXT,
	content TEXT,
	photo_url TEXT,
	signature_url TEXT,
	is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
	content_hash TEXT,
	finalized_by TEXT,
	finalized_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Append-only audit trail; provenance is written with the row
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL REFERENCES cases(id),
	actor_id TEXT NOT NULL,
	actor_role TEXT NOT NULL,
	action TEXT NOT NULL,
	from_stage_id INTEGER REFERENCES stages(id),
	to_stage_id INTEGER REFERENCES stages(id),
	detail TEXT,
	ip_address TEXT,
	user_agent TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_log_case ON audit_log(case_id, created_at);
CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
