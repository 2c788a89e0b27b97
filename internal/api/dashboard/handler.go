package dashboard

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	projectModels "github.com/m04kA/SMC-SmartScheduler/internal/service/projects/models"
	taskModels "github.com/m04kA/SMC-SmartScheduler/internal/service/tasks/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageLimit = 100

	msgRenderFailed = "не удалось построить страницу"
)

// Handler HTML страницы поверх тех же сервисов, что и JSON API
type Handler struct {
	tasks    TaskService
	projects ProjectService
	pages    map[string]*template.Template
	logger   Logger
}

func NewHandler(tasks TaskService, projects ProjectService, logger Logger) (*Handler, error) {
	pages := make(map[string]*template.Template, 3)
	for _, name := range []string{"index.html", "tasks.html", "projects.html"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}

	return &Handler{
		tasks:    tasks,
		projects: projects,
		pages:    pages,
		logger:   logger,
	}, nil
}

type indexPage struct {
	Stats *taskModels.StatsResponse
	Today []taskModels.TaskResponse
}

type tasksPage struct {
	Tasks  []taskModels.TaskResponse
	Status string
}

type projectsPage struct {
	Projects []projectModels.ProjectResponse
}

// Index GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tasks.Stats(r.Context())
	if err != nil {
		h.fail(w, "GET /", err)
		return
	}
	today, err := h.tasks.Today(r.Context())
	if err != nil {
		h.fail(w, "GET /", err)
		return
	}

	h.render(w, "index.html", indexPage{Stats: stats, Today: today.Tasks})
}

// Tasks GET /tasks?status=pending
func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	req := &taskModels.ListTasksRequest{Limit: pageLimit}
	status := r.URL.Query().Get("status")
	if status != "" {
		req.Status = &status
	}

	list, err := h.tasks.List(r.Context(), req)
	if err != nil {
		h.fail(w, "GET /tasks (html)", err)
		return
	}

	h.render(w, "tasks.html", tasksPage{Tasks: list.Tasks, Status: status})
}

// Projects GET /projects
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	list, err := h.projects.List(r.Context(), &projectModels.ListProjectsRequest{IncludeCompleted: true})
	if err != nil {
		h.fail(w, "GET /projects (html)", err)
		return
	}

	h.render(w, "projects.html", projectsPage{Projects: list.Projects})
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.fail(w, name, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error("%s - Failed to render page: %v", op, err)
	http.Error(w, msgRenderFailed, http.StatusInternalServerError)
}
