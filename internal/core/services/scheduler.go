package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyKeep is the number of results retained per task.
const historyKeep = 100

// Scheduler runs ingestion and matching on fixed intervals.
type Scheduler struct {
	config     domain.SchedulerConfig
	store      driven.SchedulerStore
	ingest     driving.IngestService
	matcher    driving.MatchingService
	matchLimit int

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// taskMu keeps a task from overlapping with itself.
	taskMu   sync.Mutex
	inFlight map[string]bool
}

// NewScheduler creates a scheduler with configuration.
// Either service may be nil, in which case its task is a no-op.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	ingest driving.IngestService,
	matcher driving.MatchingService,
	matchLimit int,
) *Scheduler {
	return &Scheduler{
		config:     config,
		store:      store,
		ingest:     ingest,
		matcher:    matcher,
		matchLimit: matchLimit,
		inFlight:   make(map[string]bool),
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Error("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()

	return nil
}

// initialiseTasks ensures all configured tasks exist in the store.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	tasks := []struct {
		id   string
		name string
	}{
		{domain.TaskIDIngest, "Reddit Ingest"},
		{domain.TaskIDMatching, "Term Matching"},
	}

	for _, t := range tasks {
		taskCfg := s.config.GetTaskConfig(t.id)
		if !taskCfg.Enabled {
			continue
		}
		if err := s.ensureTask(ctx, t.id, t.name, taskCfg); err != nil {
			return err
		}
	}

	return nil
}

// ensureTask creates or updates a task in the store. New tasks are due
// immediately.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = time.Now().Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context) error {
	s.checkAndRunDueTasks(ctx)

	tick := s.config.TickInterval
	if tick <= 0 {
		tick = time.Minute
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Error("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := tasks[i]
		if task.IsDue(now) {
			s.runTask(ctx, &task)
		}
	}
}

// runTask executes a single task in the background.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.taskMu.Lock()
	if s.inFlight[task.ID] {
		s.taskMu.Unlock()
		return
	}
	s.inFlight[task.ID] = true
	s.taskMu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.taskMu.Lock()
			delete(s.inFlight, task.ID)
			s.taskMu.Unlock()
		}()

		result := &domain.TaskResult{
			RunID:     uuid.NewString(),
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		var err error
		switch task.ID {
		case domain.TaskIDIngest:
			result.ItemsProcessed, err = s.runIngest(ctx)
		case domain.TaskIDMatching:
			result.ItemsProcessed, err = s.runMatching(ctx)
		default:
			logger.Warn("scheduler: unknown task ID: %s", task.ID)
			return
		}

		result.EndedAt = time.Now()
		if err != nil {
			result.Success = false
			result.Error = err.Error()
			task.LastError = err.Error()
			logger.Warn("scheduler: task %s failed: %v", task.ID, err)
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Error("scheduler: failed to save task %s: %v", task.ID, saveErr)
		}

		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Error("scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}

		if pruneErr := s.store.PruneHistory(ctx, historyKeep); pruneErr != nil {
			logger.Error("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}

// runIngest fetches posts without matching; matching has its own task.
func (s *Scheduler) runIngest(ctx context.Context) (int, error) {
	if s.ingest == nil {
		return 0, nil
	}
	report, err := s.ingest.Ingest(ctx, false)
	return report.Inserted, err
}

// runMatching processes unmatched documents.
func (s *Scheduler) runMatching(ctx context.Context) (int, error) {
	if s.matcher == nil {
		return 0, nil
	}
	report, err := s.matcher.Run(ctx, domain.MatchOptions{Limit: s.matchLimit})
	return report.Created, err
}
