package models

// Rating is a user's verdict on a model, at most one per (user, model).
// Only two values are accepted on the wire: 0 (down) and 10 (up).
type Rating struct {
	UserID  string `db:"userid" json:"userid"`
	ModelID string `db:"modelid" json:"modelid"`
	Rating  int    `db:"rating" json:"rating"`
	Comment string `db:"comment" json:"comment"`
}

// RatingTotal is the per-model sum of all submitted ratings.
type RatingTotal struct {
	ModelID string `db:"modelid" json:"modelid"`
	Total   int    `db:"total" json:"total"`
}
