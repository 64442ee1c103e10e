package models

// Stat holds one model's registry statistics. Refreshed independently of
// the model row; zero-valued fresh values fall back to the stored value.
type Stat struct {
	ModelID          string  `db:"modelid" json:"modelid"`
	MonthlyDownloads int     `db:"monthly_downloads" json:"monthly_downloads"`
	NpmScore         float64 `db:"npm_score" json:"npm_score"`
	NpmQuality       float64 `db:"npm_quality" json:"npm_quality"`
	NumStreams       int     `db:"num_streams" json:"num_streams"`
	LastUpdated      string  `db:"last_updated" json:"last_updated"`
}
