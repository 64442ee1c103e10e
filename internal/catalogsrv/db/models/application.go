package models

// Application is a registered app that consumes one or more models. The
// id is generated by the store on insert.
type Application struct {
	ApplicationID int64    `db:"application_id" json:"application_id"`
	Name          string   `db:"name" json:"name"`
	ImageURL      string   `db:"image_url" json:"image_url"`
	Description   string   `db:"description" json:"description"`
	UserID        string   `db:"userid" json:"userid"`
	AppURL        string   `db:"app_url" json:"app_url"`
	LastUpdated   string   `db:"last_updated" json:"last_updated"`
	ModelIDs      []string `json:"modelid"`
}
