package rest

import (
	"encoding/json"
	"net/http"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Landing handles GET /.
func (h *PagesHandler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"app":     "CodeCraft Employee Directory",
		"version": Version,
	})
}

// About handles GET /about.
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"app":         "CodeCraft Employee Directory",
		"description": "Browse the employee directory, search by name, phone or age, and manage your account.",
	})
}
