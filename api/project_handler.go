package api

import (
	"net/http"
	"strings"

	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/Sandanu06/citf-backend-v1/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxProjectImages caps the images of one project upload.
const maxProjectImages = 5

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	database       database.Database
	receiver       *storage.Receiver
	cleaner        *storage.Cleaner
	maxUploadBytes int64
}

func newProjectHandler(db database.Database, receiver *storage.Receiver, cleaner *storage.Cleaner, maxUploadBytes int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		database:       db,
		receiver:       receiver,
		cleaner:        cleaner,
		maxUploadBytes: maxUploadBytes,
	}
}

// ProjectWithImages is a project as the site renders it.
type ProjectWithImages struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type projectForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type projectCreatedResponse struct {
	Message   string `json:"message"`
	ProjectID uint   `json:"projectId"`
	Images    int    `json:"images"`
}

type projectUpdatedResponse struct {
	Message         string `json:"message"`
	ImagesUnchanged bool   `json:"imagesUnchanged"`
}

// groupProjects folds joined rows into projects, keeping the order in which
// each project first appears. Projects without images get an empty list.
func groupProjects(rows []database.ProjectRow) []ProjectWithImages {
	projects := make([]ProjectWithImages, 0)
	index := make(map[uint]int)

	for _, row := range rows {
		i, seen := index[row.ID]
		if !seen {
			i = len(projects)
			index[row.ID] = i
			projects = append(projects, ProjectWithImages{
				ID:          row.ID,
				Title:       row.Title,
				Description: row.Description,
				Images:      []string{},
			})
		}
		if row.ImageURL.Valid && row.ImageURL.String != "" {
			projects[i].Images = append(projects[i].Images, row.ImageURL.String)
		}
	}
	return projects
}

// getAllProjects lists every project with its images, newest first
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.database.ProjectRepo().FindAllWithImages()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Failed to fetch projects", "find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, groupProjects(rows))
	}
}

// getProject returns one project with its images
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rows, err := h.database.ProjectRepo().FindByIDWithImages(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Failed to fetch project", "find", "project", err))
			return
		}

		projects := groupProjects(rows)
		if len(projects) == 0 {
			h.responder.WriteError(w, errs.NewNotFound("Project"))
			return
		}

		h.responder.WriteJSON(w, projects[0])
	}
}

// readProjectForm reads title and description from a multipart, urlencoded or
// JSON body. Values are stored as sent; whitespace-only counts as missing.
func (h projectHandler) readProjectForm(r *http.Request) (projectForm, error) {
	var form projectForm
	if isJSON(r) {
		if err := decodeJSON(r, h.maxUploadBytes, &form); err != nil {
			return projectForm{}, err
		}
	} else {
		if err := parseMultipart(r, h.maxUploadBytes); err != nil {
			return projectForm{}, err
		}
		form = projectForm{Title: r.FormValue("title"), Description: r.FormValue("description")}
	}

	trimmed := projectForm{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
	}
	if err := validateRequest(trimmed, "Title and Description are required"); err != nil {
		return projectForm{}, err
	}
	return form, nil
}

// createProject stores a project, then one image row per uploaded file
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer cleanupForm(r)

		form, err := h.readProjectForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		uploads, err := h.receiver.Receive(r.MultipartForm, "images", maxProjectImages)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		urls := storage.URLs(uploads)

		project := models.Project{Title: form.Title, Description: form.Description}
		err = h.database.Transaction(func(tx database.Database) error {
			if err := tx.ProjectRepo().Add(&project); err != nil {
				return err
			}
			return tx.ProjectImageRepo().AddAll(project.ID, urls)
		})
		if err != nil {
			h.cleaner.Remove(urls...)
			h.responder.WriteError(w, errs.NewDatabaseError("Error inserting project", "insert", "project", err))
			return
		}

		msg := "Project and images saved successfully"
		if len(urls) == 0 {
			msg = "Project saved without images"
		}
		h.logger.Info().Uint("projectID", project.ID).Int("images", len(urls)).Msg("project created")
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, projectCreatedResponse{
			Message:   msg,
			ProjectID: project.ID,
			Images:    len(urls),
		})
	}
}

// updateProject rewrites title and description. Uploaded files replace the
// whole image set; without files the images are left alone.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer cleanupForm(r)

		projectID, err := parseID(r, "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		form, err := h.readProjectForm(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		uploads, err := h.receiver.Receive(r.MultipartForm, "images", maxProjectImages)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		urls := storage.URLs(uploads)

		project := models.Project{ID: projectID, Title: form.Title, Description: form.Description}
		if len(urls) == 0 {
			if _, err := h.database.ProjectRepo().Update(&project); err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("Error updating project", "update", "project", err))
				return
			}
			h.responder.WriteJSON(w, projectUpdatedResponse{
				Message:         "Project updated successfully (images unchanged)",
				ImagesUnchanged: true,
			})
			return
		}

		var oldURLs []string
		err = h.database.Transaction(func(tx database.Database) error {
			if _, err := tx.ProjectRepo().Update(&project); err != nil {
				return err
			}
			old, err := tx.ProjectImageRepo().FindURLsByProject(projectID)
			if err != nil {
				return err
			}
			if _, err := tx.ProjectImageRepo().DeleteByProject(projectID); err != nil {
				return err
			}
			if err := tx.ProjectImageRepo().AddAll(projectID, urls); err != nil {
				return err
			}
			oldURLs = old
			return nil
		})
		if err != nil {
			h.cleaner.Remove(urls...)
			h.responder.WriteError(w, errs.NewDatabaseError("Error updating project", "update", "project", err))
			return
		}

		// Old files go only once the new rows are committed.
		h.cleaner.Remove(oldURLs...)
		h.logger.Info().Uint("projectID", projectID).Int("images", len(urls)).Int("replaced", len(oldURLs)).Msg("project images replaced")
		h.responder.WriteJSON(w, projectUpdatedResponse{
			Message:         "Project and images updated successfully",
			ImagesUnchanged: false,
		})
	}
}

// deleteProject removes a project, its image rows and its files. Unknown ids succeed.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseID(r, "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var urls []string
		err = h.database.Transaction(func(tx database.Database) error {
			found, err := tx.ProjectImageRepo().FindURLsByProject(projectID)
			if err != nil {
				return err
			}
			if _, err := tx.ProjectImageRepo().DeleteByProject(projectID); err != nil {
				return err
			}
			if err := tx.ProjectRepo().Delete(projectID); err != nil {
				return err
			}
			urls = found
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("Error deleting project", "delete", "project", err))
			return
		}

		h.cleaner.Remove(urls...)
		h.responder.WriteMessage(w, http.StatusOK, "Project and images deleted successfully")
	}
}
