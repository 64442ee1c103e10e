// Package ingest reconstructs model bundles from the source monorepo and
// reconciles them, along with registry statistics, into the catalog store.
package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/github"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

const packagesDir = "packages"

var ErrAssembly apperrors.Error = apperrors.New("error-assembling-bundle").SetStatusCode(http.StatusInternalServerError)

// Bundle is the assembled in-memory representation of one model prior to
// persistence: manifest, README and schema set.
type Bundle struct {
	ModelID  string          `json:"model_id"`
	Manifest json.RawMessage `json:"package_json"`
	Readme   string          `json:"readme_md"`
	Schemas  []BundleSchema  `json:"schemas"`
}

// BundleSchema is one schema document inside a bundle. Name is the path
// remainder after the model's schemas directory prefix.
type BundleSchema struct {
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Document json.RawMessage `json:"schema_json"`
}

// Failure records why one model's bundle could not be assembled.
type Failure struct {
	ModelID string `json:"model_id"`
	Reason  string `json:"reason"`
}

// Assembler builds bundles for one repository on one branch.
type Assembler struct {
	gh     *github.Client
	branch string
}

func NewAssembler(gh *github.Client, branch string) *Assembler {
	if branch == "" {
		branch = "main"
	}
	return &Assembler{gh: gh, branch: branch}
}

// AssembleBundle fetches and assembles one model's bundle from the fixed
// packages/<modelID>/ directory convention. Assembly is all-or-nothing:
// any fetch or parse failure aborts the whole bundle. A nil tree is
// listed on demand; batch callers pass their already-fetched tree to
// avoid one listing per model.
func (a *Assembler) AssembleBundle(ctx context.Context, modelID string, tree []github.TreeEntry) (*Bundle, apperrors.Error) {
	base := packagesDir + "/" + modelID

	if tree == nil {
		var err apperrors.Error
		tree, err = a.gh.ListTree(ctx, "", a.branch)
		if err != nil {
			return nil, ErrAssembly.Err(err)
		}
	}

	manifest, err := a.gh.FetchRawJSON(ctx, a.branch, base+"/package.json")
	if err != nil {
		return nil, ErrAssembly.Err(err)
	}

	readme, err := a.gh.FetchRawText(ctx, a.branch, base+"/README.md")
	if err != nil {
		return nil, ErrAssembly.Err(err)
	}

	schemasBase := base + "/schemas"
	schemas := []BundleSchema{}
	for _, entry := range tree {
		if !strings.HasPrefix(entry.Path, schemasBase) {
			continue
		}
		name := strings.TrimPrefix(entry.Path, schemasBase)
		if name == "" {
			continue // the schemas directory itself
		}
		doc, err := a.gh.FetchRawJSON(ctx, a.branch, entry.Path)
		if err != nil {
			// one bad schema aborts the whole bundle
			return nil, ErrAssembly.Err(err)
		}
		schemas = append(schemas, BundleSchema{
			Name:     name,
			Path:     entry.Path,
			Document: doc,
		})
	}

	return &Bundle{
		ModelID:  modelID,
		Manifest: manifest,
		Readme:   readme,
		Schemas:  schemas,
	}, nil
}

// AssembleNewModels lists the repository tree once, takes the immediate
// children of the packages directory as candidate model ids, and
// assembles a bundle for every candidate not already in existingIDs.
// Successes and per-model failures are returned separately; one failing
// model never aborts the batch.
func (a *Assembler) AssembleNewModels(ctx context.Context, existingIDs []string) ([]Bundle, []Failure, apperrors.Error) {
	tree, err := a.gh.ListTree(ctx, "", a.branch)
	if err != nil {
		return nil, nil, err
	}

	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	bundles := []Bundle{}
	failures := []Failure{}
	for _, modelID := range candidateModelIDs(tree) {
		if existing[modelID] {
			continue
		}
		bundle, err := a.AssembleBundle(ctx, modelID, tree)
		if err != nil {
			log.Ctx(ctx).Warn().Str("modelid", modelID).Str("reason", err.ErrorAll()).Msg("skipping model")
			failures = append(failures, Failure{ModelID: modelID, Reason: err.ErrorAll()})
			continue
		}
		bundles = append(bundles, *bundle)
	}
	return bundles, failures, nil
}

// candidateModelIDs returns the directory names directly under packages/.
func candidateModelIDs(tree []github.TreeEntry) []string {
	prefix := packagesDir + "/"
	ids := []string{}
	for _, entry := range tree {
		if entry.Type != "tree" || !strings.HasPrefix(entry.Path, prefix) {
			continue
		}
		rest := strings.TrimPrefix(entry.Path, prefix)
		if rest != "" && !strings.Contains(rest, "/") {
			ids = append(ids, rest)
		}
	}
	return ids
}
