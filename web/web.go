// Package web serves the server-rendered pages. The pages are thin shells
// over the JSON API: data loads client-side with the session cookie, so every
// contract lives in the api package and the templates stay derivative.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hackercoop/coop/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	tmpl *template.Template
	cfg  *config.Config
}

// Register parses the embedded templates and mounts the page routes on r.
func Register(r *mux.Router, cfg *config.Config) error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}

	h := &Handler{tmpl: tmpl, cfg: cfg}

	r.HandleFunc("/", h.page("index", "The Hacker Co-op")).Methods("GET")
	r.HandleFunc("/apply", h.page("apply", "Apply")).Methods("GET")
	r.HandleFunc("/submissions", h.page("submissions", "Your application")).Methods("GET")
	r.HandleFunc("/homework", h.page("homework", "Homework")).Methods("GET")
	r.HandleFunc("/login", h.page("login", "Log in")).Methods("GET")
	r.HandleFunc("/dashboard", h.page("dashboard", "Dashboard")).Methods("GET")
	r.HandleFunc("/members", h.page("members", "Members")).Methods("GET")
	r.HandleFunc("/members/{username}", h.memberPage).Methods("GET")
	r.HandleFunc("/profile", h.page("profile", "Your profile")).Methods("GET")
	r.HandleFunc("/profile/edit", h.page("profile_edit", "Edit profile")).Methods("GET")
	r.HandleFunc("/submissions/admin", h.page("admin", "Review queue")).Methods("GET")

	return nil
}

type pageData struct {
	Title    string
	BaseURL  string
	Username string
}

func (h *Handler) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, name, pageData{Title: title, BaseURL: h.cfg.BaseURL})
	}
}

func (h *Handler) memberPage(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	h.render(w, "member", pageData{Title: username, BaseURL: h.cfg.BaseURL, Username: username})
}

func (h *Handler) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
