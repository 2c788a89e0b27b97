package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/dashboard"
	checkConflictsHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/check_conflicts"
	createTaskHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/create_task"
	deadlinesHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/deadlines"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/get_available_slots"
	healthHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/health"
	notificationsHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/notifications"
	projectsHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/projects"
	scheduleHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/schedule"
	scheduleTaskHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/schedule_task"
	settingsHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/settings"
	tasksHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/tasks"
	updateTaskHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/update_task"
	usersHandler "github.com/m04kA/SMC-SmartScheduler/internal/api/handlers/users"
	"github.com/m04kA/SMC-SmartScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SmartScheduler/internal/app"
	"github.com/m04kA/SMC-SmartScheduler/internal/config"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
)

// Dependencies все, что нужно для сборки роутера
type Dependencies struct {
	App         *app.App
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.Metrics        // nil - метрики выключены
	RateLimiter *middleware.RateLimiter // nil - без ограничения частоты
}

// NewRouter регистрирует маршруты API, дашборда и служебные эндпоинты
func NewRouter(deps Dependencies) (*mux.Router, error) {
	a, log := deps.App, deps.Logger

	// Инициализируем handlers
	createTask := createTaskHandler.NewHandler(a.CreateTask, log)
	updateTask := updateTaskHandler.NewHandler(a.UpdateTask, log)
	scheduleTask := scheduleTaskHandler.NewHandler(a.ScheduleTask, log)
	checkConflicts := checkConflictsHandler.NewHandler(a.CheckConflicts, log)
	availableSlots := getAvailableSlotsHandler.NewHandler(a.GetAvailableSlots, log)
	tasks := tasksHandler.NewHandler(a.Tasks, log)
	deadlines := deadlinesHandler.NewHandler(a.Deadlines, log)
	projects := projectsHandler.NewHandler(a.Projects, log)
	notifications := notificationsHandler.NewHandler(a.Notifications, log)
	users := usersHandler.NewHandler(a.Users, log)
	settings := settingsHandler.NewHandler(a.Settings, log)
	feed := scheduleHandler.NewHandler(a.Schedule, log)
	health := healthHandler.NewHandler(a.DB, log)

	pages, err := dashboard.NewHandler(a.Tasks, a.Projects, log)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
		r.Handle(deps.Config.Metrics.Path, deps.Metrics.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", deps.Config.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware)
	}
	api.Use(middleware.UserContext(deps.Config.Schedule.DefaultUserID))

	// --- Задачи ---
	// Статические пути регистрируются раньше /tasks/{taskId}
	api.HandleFunc("/tasks", createTask.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tasks", tasks.List).Methods(http.MethodGet)
	api.HandleFunc("/tasks/stats", tasks.Stats).Methods(http.MethodGet)
	api.HandleFunc("/tasks/calendar", tasks.Calendar).Methods(http.MethodGet)
	api.HandleFunc("/tasks/today", tasks.Today).Methods(http.MethodGet)
	api.HandleFunc("/tasks/week", tasks.Week).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskId}", tasks.Get).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskId}", updateTask.Handle).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{taskId}", tasks.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{taskId}/status", tasks.UpdateStatus).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{taskId}/progress", tasks.UpdateProgress).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{taskId}/schedule", scheduleTask.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{taskId}/complete", tasks.Complete).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskId}/start", tasks.Start).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskId}/pause", tasks.Pause).Methods(http.MethodPost)

	// --- Расписание ---
	api.HandleFunc("/schedule", feed.Feed).Methods(http.MethodGet)
	api.HandleFunc("/schedule/available-slots", availableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/conflicts", checkConflicts.Handle).Methods(http.MethodGet)

	// --- Дедлайны ---
	api.HandleFunc("/deadlines", deadlines.Create).Methods(http.MethodPost)
	api.HandleFunc("/deadlines", deadlines.List).Methods(http.MethodGet)
	api.HandleFunc("/deadlines/analytics", deadlines.Analytics).Methods(http.MethodGet)
	api.HandleFunc("/deadlines/recurring", deadlines.Recurring).Methods(http.MethodGet)
	api.HandleFunc("/deadlines/{deadlineId}", deadlines.Get).Methods(http.MethodGet)
	api.HandleFunc("/deadlines/{deadlineId}", deadlines.Update).Methods(http.MethodPut)
	api.HandleFunc("/deadlines/{deadlineId}", deadlines.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/deadlines/{deadlineId}/complete", deadlines.Complete).Methods(http.MethodPatch)
	api.HandleFunc("/deadlines/{deadlineId}/extend", deadlines.Extend).Methods(http.MethodPatch)

	// --- Проекты ---
	api.HandleFunc("/projects", projects.Create).Methods(http.MethodPost)
	api.HandleFunc("/projects", projects.List).Methods(http.MethodGet)
	api.HandleFunc("/projects/upcoming", projects.Upcoming).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}", projects.Get).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectId}/recalculate", projects.Recalculate).Methods(http.MethodPost)

	// --- Уведомления ---
	api.HandleFunc("/notifications", notifications.Create).Methods(http.MethodPost)
	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationId}", notifications.Get).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationId}", notifications.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/notifications/{notificationId}/sent", notifications.MarkSent).Methods(http.MethodPatch)
	api.HandleFunc("/notifications/{notificationId}/read", notifications.MarkRead).Methods(http.MethodPatch)

	// --- Пользователи и настройки ---
	api.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId}", users.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings/schedule", settings.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings/schedule", settings.Update).Methods(http.MethodPut)

	// --- Дашборд ---
	r.HandleFunc("/", pages.Index).Methods(http.MethodGet)
	r.HandleFunc("/tasks", pages.Tasks).Methods(http.MethodGet)
	r.HandleFunc("/projects", pages.Projects).Methods(http.MethodGet)

	return r, nil
}
