package lint

import (
	"context"
	"fmt"
	"sync"

	"github.com/marcusbikes/storefront/pkg/catalog"
	"github.com/marcusbikes/storefront/pkg/logging"
	"github.com/marcusbikes/storefront/pkg/pubsub"
)

// Runner orchestrates the catalog load pipeline: read the files, lint, and
// swap the result into the live store. The same pipeline serves startup and
// watcher-triggered reloads.
type Runner struct {
	dir       string
	store     *catalog.Store
	publisher pubsub.Publisher

	mu     sync.Mutex // serializes reloads and guards issues
	issues []Issue
}

// ReloadOptions annotates one pipeline run
type ReloadOptions struct {
	Reason string // e.g., "startup", "catalog file changed"
}

// NewRunner creates a runner for a catalog directory
func NewRunner(dir string, store *catalog.Store, publisher pubsub.Publisher) *Runner {
	return &Runner{
		dir:       dir,
		store:     store,
		publisher: publisher,
	}
}

// Issues returns the issues found by the most recent run
func (r *Runner) Issues() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// Run executes the pipeline. A load failure leaves the previous catalog in
// place; lint issues are logged and published but never block serving, since
// unresolved references degrade to inactive rules at evaluation time.
func (r *Runner) Run(ctx context.Context, opts ReloadOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logging.Info("loading catalog", "dir", r.dir, "reason", opts.Reason)
	r.publishStatus("loading", "Loading catalog files...", 1, 0, 0)

	cat, err := catalog.LoadDir(r.dir)
	if err != nil {
		logging.Error("catalog load failed, keeping previous catalog", "error", err)
		r.publishStatus("error", fmt.Sprintf("Catalog load failed: %v", err), 1, 0, 0)
		return fmt.Errorf("loading catalog: %w", err)
	}

	r.publishStatus("linting", "Checking catalog...", 2, len(cat.Products), 0)
	issues := CheckCatalog(cat)
	r.issues = issues

	for _, issue := range issues {
		if issue.Severity == SeverityError {
			logging.Error("catalog issue", "product", issue.ProductID.String(), "check", issue.Check, "detail", issue.Message)
		} else {
			logging.Warn("catalog issue", "product", issue.ProductID.String(), "check", issue.Check, "detail", issue.Message)
		}
	}

	r.store.Replace(cat)

	logging.Info("catalog ready", "products", len(cat.Products), "issues", len(issues))
	r.publishStatus("ready", "Catalog ready", 3, len(cat.Products), len(issues))
	return nil
}

func (r *Runner) publishStatus(state, message string, step, products, issues int) {
	if r.publisher == nil {
		return
	}
	status := pubsub.CatalogStatus{
		State:    state,
		Message:  message,
		Step:     step,
		Total:    3,
		Products: products,
		Issues:   issues,
	}
	if err := r.publisher.Publish(pubsub.TopicCatalogStatus, state, status); err != nil {
		logging.Warn("failed to publish catalog status", "error", err)
	}
}
