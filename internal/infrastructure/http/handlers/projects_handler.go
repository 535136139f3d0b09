package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/personaltask/taskmanager/internal/application/project"
	"github.com/personaltask/taskmanager/internal/infrastructure/http/middleware"
)

// ProjectsHandler handles /api/projects/*. Requires Gate.
type ProjectsHandler struct {
	create   *project.CreateProject
	list     *project.ListProjects
	update   *project.UpdateProject
	delete   *project.DeleteProject
	errs     ErrorWriter
	validate *validator.Validate
}

func NewProjectsHandler(create *project.CreateProject, list *project.ListProjects, update *project.UpdateProject, del *project.DeleteProject, errs ErrorWriter) *ProjectsHandler {
	return &ProjectsHandler{
		create:   create,
		list:     list,
		update:   update,
		delete:   del,
		errs:     errs,
		validate: newValidator(),
	}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	projects, err := h.list.Execute(r.Context(), identity.UserID)
	if err != nil {
		h.errs.write(w, r, "list projects", err)
		return
	}
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create ignores any userId in the body; the owner is the caller.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body struct {
		Name        string `json:"name" validate:"max=200"`
		Description string `json:"description" validate:"max=10000"`
	}
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "create project", err)
		return
	}
	p, err := h.create.Execute(r.Context(), project.CreateProjectInput{
		Owner:       identity.UserID,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		h.errs.write(w, r, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, projectResponse(p))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body struct {
		ID          string  `json:"id"`
		Name        string  `json:"name" validate:"max=200"`
		Description *string `json:"description" validate:"omitempty,max=10000"`
	}
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "update project", err)
		return
	}
	p, err := h.update.Execute(r.Context(), project.UpdateProjectInput{
		Owner:       identity.UserID,
		ID:          body.ID,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		h.errs.write(w, r, "update project", err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(p))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "delete project", err)
		return
	}
	p, err := h.delete.Execute(r.Context(), identity.UserID, body.ID)
	if err != nil {
		h.errs.write(w, r, "delete project", err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(p))
}
