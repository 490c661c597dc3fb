package vendorsync

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Service runs jobs and remembers the last result of each one.
type Service struct {
	runner *Runner
	logger *zap.Logger

	mu   sync.RWMutex
	last map[string]Result
}

// NewService creates a Service.
func NewService(runner *Runner, logger *zap.Logger) *Service {
	return &Service{runner: runner, logger: logger, last: make(map[string]Result)}
}

// Trigger runs job with feed. Busy results do not replace the stored status of
// the run that is in progress.
func (s *Service) Trigger(ctx context.Context, job Job, feed string) (*Result, error) {
	res, err := s.runner.Run(ctx, job, feed)
	if res != nil && !res.Busy {
		s.mu.Lock()
		s.last[job.Key()] = *res
		s.mu.Unlock()
	}
	return res, err
}

// Status returns the last result of every job, ordered by vendor and scope.
func (s *Service) Status() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Result, 0, len(s.last))
	for _, r := range s.last {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Vendor != out[j].Vendor {
			return out[i].Vendor < out[j].Vendor
		}
		return out[i].Scope < out[j].Scope
	})
	return out
}
