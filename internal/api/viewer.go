package api

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/MikeSquared-Agency/backupviewer/internal/export"
)

//go:embed templates/viewer.html
var templateFS embed.FS

func parseViewerTemplate(webRoot string) *template.Template {
	funcs := template.FuncMap{
		"attachments": func(files []export.Attachment) []export.ResolvedAttachment {
			return export.ResolveAttachments(files, webRoot)
		},
	}
	return template.Must(template.New("viewer.html").Funcs(funcs).ParseFS(templateFS, "templates/viewer.html"))
}

type viewerPage struct {
	Notice       string
	Loaded       bool
	Source       string
	MessageCount int
	Skipped      int
	PrimaryName  string
	Days         []export.DayGroup
}

func (s *Server) viewer(w http.ResponseWriter, r *http.Request) {
	s.renderViewer(w, http.StatusOK, "")
}

// upload handles POST /upload from the viewer form (multipart field "file").
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.renderViewer(w, http.StatusRequestEntityTooLarge, "File too large.")
			return
		}
		s.renderViewer(w, http.StatusBadRequest, "Choose a JSON export to upload.")
		return
	}
	defer file.Close()

	if _, err := s.loader.Load(r.Context(), filepath.Base(header.Filename), file); err != nil {
		status, _ := loadErrorStatus(err)
		notice := "Could not load the file."
		if status == http.StatusBadRequest {
			notice = "Invalid file: this is not a JSON chat export."
		}
		s.renderViewer(w, status, notice)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderViewer(w http.ResponseWriter, status int, notice string) {
	page := viewerPage{Notice: notice}
	if snap, ok := s.store.Current(); ok {
		conv := snap.Conversation
		page.Loaded = true
		page.Source = snap.Source
		page.MessageCount = len(conv.Messages)
		page.Skipped = len(conv.Skipped)
		if user, ok := conv.Primary(); ok {
			page.PrimaryName = conv.DisplayName(user)
		}
		page.Days = export.GroupByDay(conv.Entries())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, page); err != nil {
		s.logger.Error("render viewer", "error", err)
	}
}
