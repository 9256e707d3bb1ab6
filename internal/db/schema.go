package db

// SchemaSQL is the complete schema for fresh Sentinel stores.
//
// This is the single source of truth for the database schema: repository
// tests load it through GetSchemaSQL() so test and production schemas
// cannot drift. Keep it in sync with migrations when columns change.
const SchemaSQL = `
-- Waves (file-lock declarations per checkpointed batch)
CREATE TABLE IF NOT EXISTS waves (
	id TEXT PRIMARY KEY,
	file_locks TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Tasks (flat task store; sentinel tasks reference parents by id only)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	agent_role TEXT NOT NULL,
	title TEXT,
	wave_id TEXT,
	dependencies TEXT NOT NULL DEFAULT '[]',
	check_command TEXT,
	status TEXT NOT NULL CHECK(status IN ('pending', 'done')) DEFAULT 'pending',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (wave_id) REFERENCES waves(id)
);

-- Runs (one row per Sentinel run, mirroring the manifest)
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	result TEXT NOT NULL CHECK(result IN ('PASS', 'FAIL', 'ERROR')),
	tier_used INTEGER NOT NULL,
	iterations INTEGER NOT NULL,
	cost_usd REAL NOT NULL DEFAULT 0,
	files_changed TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (task_id) REFERENCES tasks(id)
);

CREATE INDEX IF NOT EXISTS idx_tasks_agent_role ON tasks(agent_role);
CREATE INDEX IF NOT EXISTS idx_runs_task_id ON runs(task_id);

-- Schema version tracking for migrations
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema. Tests must use this
// rather than hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
