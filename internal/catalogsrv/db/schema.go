package db

var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS ratings (
		ratings_id integer PRIMARY KEY AUTOINCREMENT,
		userid text NOT NULL,
		modelid text,
		rating int,
		comment text,
		UNIQUE (userid, modelid)
	)`,
	`CREATE TABLE IF NOT EXISTS models (
		modelid text NOT NULL PRIMARY KEY,
		version text,
		author text,
		keywords text,
		readme text,
		package_json text
	)`,
	`CREATE TABLE IF NOT EXISTS schemas (
		schema_path text NOT NULL PRIMARY KEY,
		modelid text NOT NULL,
		schema_name text,
		schema_json text
	)`,
	`CREATE TABLE IF NOT EXISTS stats (
		modelid text NOT NULL PRIMARY KEY,
		monthly_downloads int,
		npm_score real,
		npm_quality real,
		num_streams int,
		last_updated text
	)`,
	`CREATE TABLE IF NOT EXISTS user_models (
		modelid text NOT NULL PRIMARY KEY,
		userid text NOT NULL,
		npm_package text NOT NULL,
		repo_url text NOT NULL,
		status text NOT NULL,
		last_updated text
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		application_id integer PRIMARY KEY AUTOINCREMENT,
		name text NOT NULL,
		image_url text,
		description text NOT NULL,
		userid text NOT NULL,
		app_url text,
		last_updated text
	)`,
	`CREATE TABLE IF NOT EXISTS application_models (
		application_models_id integer PRIMARY KEY AUTOINCREMENT,
		application_id integer,
		modelid text
	)`,
}
