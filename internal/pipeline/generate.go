package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/policyengine/sb60calc/internal/chart"
	"github.com/policyengine/sb60calc/internal/impact"
	"github.com/policyengine/sb60calc/internal/model"
	"github.com/policyengine/sb60calc/internal/post"
	"github.com/policyengine/sb60calc/internal/store"
)

// Options controls a Generate run.
type Options struct {
	Scenario     model.Scenario
	ScenarioName string
	OutputDir    string
	BaseURL      string
	PostSlug     string

	// Force rewrites artifacts even when their content is unchanged.
	Force bool

	// Store is optional. Without it every artifact is written.
	Store *store.Store
	Log   logrus.FieldLogger
}

// Status is what happened to one artifact.
type Status string

// Artifact statuses.
const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
)

// ArtifactResult reports one output file.
type ArtifactResult struct {
	Path   string
	Status Status
	Bytes  int
}

// Result summarizes a Generate run.
type Result struct {
	RunID     string
	Samples   int
	Artifacts []ArtifactResult
}

// Count returns how many artifacts ended with status st.
func (r *Result) Count(st Status) int {
	n := 0
	for _, a := range r.Artifacts {
		if a.Status == st {
			n++
		}
	}
	return n
}

// Output is one rendered file, with its path relative to the output dir.
type Output struct {
	Rel     string
	Content []byte
}

// Generate renders every chart page and the post, then writes them under
// opts.OutputDir. Rendering finishes before any file is touched, so a
// scenario error leaves the output directory as it was.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.WithField("module", "pipeline")
	}

	artifacts, samples, err := Render(opts)
	if err != nil {
		return nil, err
	}

	run := store.NewRun(opts.ScenarioName, opts.OutputDir)
	result := &Result{RunID: run.ID, Samples: samples}
	if opts.Store != nil {
		if err := opts.Store.SaveRun(run); err != nil {
			log.WithError(err).Warn("artifact store unavailable, writing all files")
			opts.Store = nil
		}
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("generate interrupted: %w", err)
		}

		path := filepath.Join(opts.OutputDir, a.Rel)
		sum := sha256.Sum256(a.Content)
		hash := hex.EncodeToString(sum[:])

		if !opts.Force && unchanged(opts.Store, path, hash) {
			log.WithField("path", path).Debug("unchanged, skipping")
			result.Artifacts = append(result.Artifacts, ArtifactResult{Path: path, Status: StatusUnchanged, Bytes: len(a.Content)})
			continue
		}

		if err := writeFile(path, a.Content); err != nil {
			return result, err
		}
		log.WithField("path", path).Info("generated")
		result.Artifacts = append(result.Artifacts, ArtifactResult{Path: path, Status: StatusWritten, Bytes: len(a.Content)})

		if opts.Store != nil {
			err := opts.Store.RecordArtifact(store.Artifact{
				Path:      path,
				SHA256:    hash,
				SizeBytes: int64(len(a.Content)),
				RunID:     run.ID,
				WrittenAt: time.Now(),
			})
			if err != nil {
				log.WithError(err).WithField("path", path).Warn("could not record artifact")
			}
		}
	}

	if opts.Store != nil {
		run.Written = result.Count(StatusWritten)
		run.Unchanged = result.Count(StatusUnchanged)
		if err := opts.Store.SaveRun(run); err != nil {
			log.WithError(err).Warn("could not record run")
		}
	}

	return result, nil
}

// Render builds all artifacts in memory. It returns them with paths relative
// to the output directory, plus the number of curve samples.
func Render(opts Options) ([]Output, int, error) {
	sc := opts.Scenario

	points, err := impact.Curve(sc.Household)
	if err != nil {
		return nil, 0, fmt.Errorf("household curve: %w", err)
	}
	rows := DecileRows(sc.Statewide)

	figures := map[string]chart.Figure{
		chart.NetIncomeChangePage:    chart.NetIncomeChange(chart.NetIncomeChangeTitle(), points),
		chart.WinnersByDecilePage:    chart.WinnersByDecile(chart.WinnersTitle(sc.Bill), sc.Statewide.AllOutcome, rows),
		chart.AvgBenefitByDecilePage: chart.AvgBenefitByDecile(chart.AvgBenefitTitle(sc.Bill), rows),
	}

	artifacts := make([]Output, 0, len(chart.Pages)+1)
	for _, page := range chart.Pages {
		var buf bytes.Buffer
		if err := chart.WriteHTML(&buf, figures[page]); err != nil {
			return nil, 0, fmt.Errorf("chart %s: %w", page, err)
		}
		artifacts = append(artifacts, Output{
			Rel:     filepath.Join("charts", page+".html"),
			Content: buf.Bytes(),
		})
	}

	slug := opts.PostSlug
	if slug == "" {
		slug = "post"
	}
	var md bytes.Buffer
	if err := post.Render(&md, post.Input{Scenario: sc, BaseURL: opts.BaseURL}); err != nil {
		return nil, 0, err
	}
	artifacts = append(artifacts, Output{Rel: slug + ".md", Content: md.Bytes()})

	return artifacts, len(points), nil
}

// unchanged reports whether path was recorded with hash and still has it.
func unchanged(st *store.Store, path, hash string) bool {
	if st == nil {
		return false
	}
	recorded, err := st.ArtifactHash(path)
	if err != nil || recorded != hash {
		return false
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is under the output dir
	if err != nil {
		return false
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) == hash
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gosec // published artifacts are world-readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
