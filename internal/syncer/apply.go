package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/registry"
)

// DefaultJobs is the default number of packages processed concurrently.
const DefaultJobs = 4

// ApplyOptions controls ApplyAll.
type ApplyOptions struct {
	// Jobs bounds concurrent installer calls. Values below 1 select DefaultJobs.
	Jobs int
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// Outcome records the result of one package action.
type Outcome struct {
	Name   string
	Action registry.Action
	Err    error
}

// Pending returns the statuses whose resolved action is not none, in order.
func Pending(statuses []registry.PackageStatus) []registry.PackageStatus {
	pending := make([]registry.PackageStatus, 0, len(statuses))
	for _, status := range statuses {
		if registry.ResolveAction(status) != registry.ActionNone {
			pending = append(pending, status)
		}
	}
	return pending
}

// ApplyAll applies the resolved action of every pending status.
// Failures do not stop other packages; outcomes follow input order and the
// returned error joins every failure.
func (s *Session) ApplyAll(ctx context.Context, statuses []registry.PackageStatus, opts ApplyOptions) ([]Outcome, error) {
	pending := Pending(statuses)
	outcomes := make([]Outcome, len(pending))
	if len(pending) == 0 {
		return outcomes, nil
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = DefaultJobs
	}
	bar := newProgressBar(opts.Progress, len(pending))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, status := range pending {
		action := registry.ResolveAction(status)
		group.Go(func() error {
			bar.describe(fmt.Sprintf(messages.SyncerProgressFmt, action, status.Name))
			err := s.Apply(ctx, status, action)
			if err != nil {
				s.log.Errorw("package action failed", "package", status.Name, "action", action, "error", err)
			} else {
				s.log.Infow("package action completed", "package", status.Name, "action", action)
			}
			outcomes[i] = Outcome{Name: status.Name, Action: action, Err: err}
			bar.add()
			return nil
		})
	}
	_ = group.Wait()
	bar.finish()

	var errs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf(messages.SyncerOutcomeErrFmt, outcome.Action, outcome.Name, outcome.Err))
		}
	}
	return outcomes, errors.Join(errs...)
}

type progress struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newProgressBar(w io.Writer, total int) *progress {
	if w == nil {
		return &progress{}
	}
	return &progress{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(messages.SyncerProgressStart),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)}
}

func (p *progress) describe(text string) {
	if p.bar == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe(text)
}

func (p *progress) add() {
	if p.bar == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	if p.bar == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}
