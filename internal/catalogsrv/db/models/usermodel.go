package models

// UserModel records who registered a model through the submission path,
// along with the published package name and source repository.
type UserModel struct {
	ModelID     string `db:"modelid" json:"modelid"`
	UserID      string `db:"userid" json:"userid"`
	NPMPackage  string `db:"npm_package" json:"npm_package"`
	RepoURL     string `db:"repo_url" json:"repo_url"`
	Status      string `db:"status" json:"status"`
	LastUpdated string `db:"last_updated" json:"last_updated"`
}
