package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/erp-records-backend/api/responses"
	"github.com/angelmondragon/erp-records-backend/internal/navigation"
	"github.com/angelmondragon/erp-records-backend/pkg/logger"
)

type navigationResponse struct {
	navigation.Tree
	Breadcrumbs []string `json:"breadcrumbs"`
}

// Navigation returns the sidebar tree. An optional active query parameter selects the leaf.
func Navigation(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree := navigation.Default()
		if active := strings.TrimSpace(r.URL.Query().Get("active")); active != "" {
			activated, err := tree.Activate(active)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			tree = activated
		}

		responses.WriteSuccess(w, navigationResponse{
			Tree:        tree,
			Breadcrumbs: tree.Path(tree.Active),
		})
	}
}
