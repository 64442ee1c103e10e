// Package models defines the row types stored by the catalog.
package models

/*
   Column    | Type | Nullable
-------------+------+----------
 modelid     | text | not null (PK)
 version     | text |
 author      | text |
 keywords    | text | comma-joined list
 readme      | text |
 package_json| text | raw manifest document
*/

// Model is one data-model package. The modelid is the package's directory
// name in the source monorepo and joins its schemas, stat and user-model
// rows. A model is always replaced wholesale, never patched.
type Model struct {
	ModelID     string `db:"modelid" json:"modelid"`
	Version     string `db:"version" json:"version"`
	Author      string `db:"author" json:"author"`
	Keywords    string `db:"keywords" json:"keywords"`
	Readme      string `db:"readme" json:"readme"`
	PackageJSON string `db:"package_json" json:"package_json"`
}

// Schema is one JSON schema document owned by a model. The path is unique
// across the whole catalog and acts as the primary key.
type Schema struct {
	SchemaPath string `db:"schema_path" json:"schema_path"`
	ModelID    string `db:"modelid" json:"modelid"`
	SchemaName string `db:"schema_name" json:"schema_name"`
	SchemaJSON string `db:"schema_json" json:"schema_json"`
}

// ModelWithSchemas is the read shape of GetModel.
type ModelWithSchemas struct {
	Model
	Schemas []Schema `json:"schemas"`
}

// SearchResult is a model row decorated with its registry statistics.
type SearchResult struct {
	Model
	MonthlyDownloads int     `json:"monthly_downloads"`
	NpmScore         float64 `json:"npm_score"`
}
