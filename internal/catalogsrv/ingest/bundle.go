package ingest

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
)

// Record converts the bundle into store rows. Version, author and
// keywords are pulled from the raw manifest; keywords are comma-joined.
func (b *Bundle) Record() (models.Model, []models.Schema) {
	manifest := string(b.Manifest)
	model := models.Model{
		ModelID:     b.ModelID,
		Version:     gjson.Get(manifest, "version").String(),
		Author:      manifestAuthor(manifest),
		Keywords:    manifestKeywords(manifest),
		Readme:      b.Readme,
		PackageJSON: manifest,
	}

	schemas := make([]models.Schema, 0, len(b.Schemas))
	for _, s := range b.Schemas {
		schemas = append(schemas, models.Schema{
			SchemaPath: s.Path,
			ModelID:    b.ModelID,
			SchemaName: s.Name,
			SchemaJSON: string(s.Document),
		})
	}
	return model, schemas
}

// manifestAuthor handles both manifest author shapes: a plain string and
// an object with a name field.
func manifestAuthor(manifest string) string {
	author := gjson.Get(manifest, "author")
	if author.IsObject() {
		return author.Get("name").String()
	}
	return author.String()
}

func manifestKeywords(manifest string) string {
	keywords := gjson.Get(manifest, "keywords")
	if !keywords.IsArray() {
		return keywords.String()
	}
	parts := []string{}
	for _, k := range keywords.Array() {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, ",")
}
