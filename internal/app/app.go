package app

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SmartScheduler/internal/config"
	"github.com/m04kA/SMC-SmartScheduler/internal/infra/database"
	"github.com/m04kA/SMC-SmartScheduler/internal/infra/migrations"
	deadlineRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/deadline"
	notificationRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/notification"
	projectRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/project"
	settingsRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/settings"
	taskRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/task"
	userRepo "github.com/m04kA/SMC-SmartScheduler/internal/infra/storage/user"
	deadlinesService "github.com/m04kA/SMC-SmartScheduler/internal/service/deadlines"
	notificationsService "github.com/m04kA/SMC-SmartScheduler/internal/service/notifications"
	projectsService "github.com/m04kA/SMC-SmartScheduler/internal/service/projects"
	scheduleService "github.com/m04kA/SMC-SmartScheduler/internal/service/schedule"
	settingsService "github.com/m04kA/SMC-SmartScheduler/internal/service/settings"
	tasksService "github.com/m04kA/SMC-SmartScheduler/internal/service/tasks"
	usersService "github.com/m04kA/SMC-SmartScheduler/internal/service/users"
	checkConflictsUC "github.com/m04kA/SMC-SmartScheduler/internal/usecase/check_conflicts"
	createTaskUC "github.com/m04kA/SMC-SmartScheduler/internal/usecase/create_task"
	getAvailableSlotsUC "github.com/m04kA/SMC-SmartScheduler/internal/usecase/get_available_slots"
	scheduleTaskUC "github.com/m04kA/SMC-SmartScheduler/internal/usecase/schedule_task"
	updateTaskUC "github.com/m04kA/SMC-SmartScheduler/internal/usecase/update_task"
	"github.com/m04kA/SMC-SmartScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
	"github.com/m04kA/SMC-SmartScheduler/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SmartScheduler/pkg/txmanager"
)

// App собранные зависимости: база, репозитории, сервисы и use cases.
// Используется HTTP сервером и CLI.
type App struct {
	Driver database.Driver
	DB     *dbmetrics.DB
	Tx     *txmanager.TransactionManager

	TaskRepo     *taskRepo.Repository
	DeadlineRepo *deadlineRepo.Repository

	Tasks         *tasksService.Service
	Deadlines     *deadlinesService.Service
	Projects      *projectsService.Service
	Notifications *notificationsService.Service
	Users         *usersService.Service
	Settings      *settingsService.Service
	Schedule      *scheduleService.Service

	CheckConflicts    *checkConflictsUC.UseCase
	CreateTask        *createTaskUC.UseCase
	UpdateTask        *updateTaskUC.UseCase
	ScheduleTask      *scheduleTaskUC.UseCase
	GetAvailableSlots *getAvailableSlotsUC.UseCase
}

// Options параметры сборки
type Options struct {
	// Migrate применяет миграции сразу после подключения
	Migrate bool
	// Metrics nil отключает метрики базы и планировщика
	Metrics *metrics.Metrics
	// StopPoolStats останавливает сбор статистики пула, если метрики включены
	StopPoolStats <-chan struct{}
}

// New подключается к базе и собирает граф зависимостей
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	driver, err := database.ParseDriver(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	location, err := cfg.Schedule.Location()
	if err != nil {
		return nil, fmt.Errorf("app: timezone: %w", err)
	}

	db, err := database.Open(ctx, database.Options{
		Driver:          driver,
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Connected to database (driver=%s)", driver)

	if opts.Migrate {
		applied, err := migrations.Run(ctx, db, driver, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Migrations applied: %d", applied)
	}

	// Обертка с метриками используется всегда, без метрик она только прокидывает вызовы
	var wrapped *dbmetrics.DB
	if opts.Metrics != nil && opts.StopPoolStats != nil {
		wrapped = dbmetrics.WrapWithDefault(db, opts.Metrics, opts.StopPoolStats)
	} else {
		wrapped = dbmetrics.Wrap(db, opts.Metrics)
	}

	var txOpts []txmanager.Option
	if driver == database.DriverSQLite {
		txOpts = append(txOpts, txmanager.WithoutIsolationLevels())
	}
	txMgr := txmanager.NewTransactionManager(wrapped, txOpts...)

	qb := sqlbuilder.New(driver.Dialect())

	// Репозитории
	tasks := taskRepo.NewRepository(wrapped, qb)
	deadlines := deadlineRepo.NewRepository(wrapped, qb)
	projects := projectRepo.NewRepository(wrapped, qb)
	notifications := notificationRepo.NewRepository(wrapped, qb)
	users := userRepo.NewRepository(wrapped, qb)
	settings := settingsRepo.NewRepository(wrapped, qb)

	// Сервисы
	workStart, workEnd := cfg.Schedule.WorkWindow()
	checkConflicts := checkConflictsUC.NewUseCase(tasks, opts.Metrics, log)
	taskSvc := tasksService.NewService(tasks, projects, checkConflicts, txMgr, opts.Metrics, location, log)
	settingsSvc := settingsService.NewService(settings, settingsService.Defaults{
		WorkStart:              workStart,
		WorkEnd:                workEnd,
		DefaultDurationMinutes: cfg.Schedule.DefaultDurationMinutes,
	}, log)

	return &App{
		Driver: driver,
		DB:     wrapped,
		Tx:     txMgr,

		TaskRepo:     tasks,
		DeadlineRepo: deadlines,

		Tasks:         taskSvc,
		Deadlines:     deadlinesService.NewService(deadlines, log),
		Projects:      projectsService.NewService(projects, tasks, location, log),
		Notifications: notificationsService.NewService(notifications, log),
		Users:         usersService.NewService(users, log),
		Settings:      settingsSvc,
		Schedule:      scheduleService.NewService(tasks, deadlines, location, log),

		CheckConflicts:    checkConflicts,
		CreateTask:        createTaskUC.NewUseCase(tasks, projects, checkConflicts, txMgr, opts.Metrics, log),
		UpdateTask:        updateTaskUC.NewUseCase(tasks, projects, taskSvc, checkConflicts, txMgr, opts.Metrics, log),
		ScheduleTask:      scheduleTaskUC.NewUseCase(tasks, checkConflicts, txMgr, opts.Metrics, log),
		GetAvailableSlots: getAvailableSlotsUC.NewUseCase(tasks, settingsSvc, opts.Metrics, log),
	}, nil
}

// Close закрывает соединение с базой
func (a *App) Close() error {
	return a.DB.Close()
}
