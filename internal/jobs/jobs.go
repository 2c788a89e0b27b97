package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
)

const (
	jobStatsRefresh = "stats_refresh"
	jobTimeout      = 30 * time.Second
)

// Runner периодически обновляет доменные метрики и чистит лимитер запросов
type Runner struct {
	cron      *cron.Cron
	parser    cron.Parser
	tasks     TaskStatsSource
	deadlines DeadlineCounter
	cleaner   IdleCleaner
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    Logger
}

// New создает Runner. metrics и cleaner могут быть nil.
func New(tasks TaskStatsSource, deadlines DeadlineCounter, cleaner IdleCleaner, m *metrics.Metrics, location *time.Location, logger Logger) *Runner {
	if location == nil {
		location = time.UTC
	}
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	return &Runner{
		cron:      cron.New(cron.WithParser(parser), cron.WithLocation(location)),
		parser:    parser,
		tasks:     tasks,
		deadlines: deadlines,
		cleaner:   cleaner,
		metrics:   m,
		now:       time.Now,
		logger:    logger,
	}
}

// Start регистрирует задание по cron выражению и запускает планировщик.
// Первое обновление выполняется сразу, не дожидаясь расписания.
func (r *Runner) Start(spec string) error {
	if _, err := r.parser.Parse(spec); err != nil {
		return fmt.Errorf("jobs: invalid schedule %q: %w", spec, err)
	}

	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return fmt.Errorf("jobs: add %s: %w", jobStatsRefresh, err)
	}

	go r.run()
	r.cron.Start()
	r.logger.Info("Jobs: %s scheduled (%s)", jobStatsRefresh, spec)
	return nil
}

// Stop останавливает планировщик и ждет завершения запущенных заданий
func (r *Runner) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		r.logger.Info("Jobs: stopped")
	case <-ctx.Done():
		r.logger.Error("Jobs: stop timed out: %v", ctx.Err())
	}
}

func (r *Runner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result := "ok"
	if err := r.RefreshStats(ctx); err != nil {
		r.logger.Error("Jobs: %s failed: %v", jobStatsRefresh, err)
		result = "error"
	}

	if r.metrics != nil {
		r.metrics.JobRuns.WithLabelValues(jobStatsRefresh, result).Inc()
	}
}

// RefreshStats пересчитывает открытые и просроченные задачи и просроченные дедлайны
func (r *Runner) RefreshStats(ctx context.Context) error {
	stats, err := r.tasks.DomainStats(ctx)
	if err != nil {
		return fmt.Errorf("task stats: %w", err)
	}

	overdueDeadlines, err := r.deadlines.CountOverdue(ctx, r.now())
	if err != nil {
		return fmt.Errorf("overdue deadlines: %w", err)
	}

	open := stats.Pending + stats.InProgress + stats.Scheduled
	if r.metrics != nil {
		r.metrics.OpenTasks.WithLabelValues().Set(float64(open))
		r.metrics.OverdueTasks.WithLabelValues().Set(float64(stats.Overdue))
		r.metrics.OverdueDeadlines.WithLabelValues().Set(float64(overdueDeadlines))
	}

	removed := 0
	if r.cleaner != nil {
		removed = r.cleaner.Cleanup()
	}

	r.logger.Debug("Jobs: stats refreshed: open=%d, overdue_tasks=%d, overdue_deadlines=%d, idle_clients_removed=%d",
		open, stats.Overdue, overdueDeadlines, removed)
	return nil
}
