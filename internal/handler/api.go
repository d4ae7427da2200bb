package handler

import (
	"customerwizard/wizard/internal/domain"
	"customerwizard/wizard/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// APIHandler exposes the catalog and the session result as JSON
type APIHandler struct {
	wizard *service.Wizard
}

func NewAPIHandler(wizard *service.Wizard) *APIHandler {
	return &APIHandler{wizard: wizard}
}

func (h *APIHandler) RegisterCatalogRoutes(g *gin.RouterGroup) {
	g.GET("/categories", h.CustomerTypes)
	g.GET("/categories/:type", h.Subtree)
}

func (h *APIHandler) CustomerTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customerTypes": h.wizard.CustomerTypes()})
}

func (h *APIHandler) Subtree(c *gin.Context) {
	customerType := c.Param("type")
	tree, ok := h.wizard.Subtree(customerType)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown customer type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customerType": customerType, "tree": tree})
}

type resultResponse struct {
	CustomerName string       `json:"customerName"`
	CustomerType string       `json:"customerType"`
	SelectedTree *domain.Node `json:"selectedTree"`
}

func (h *APIHandler) Result(c *gin.Context) {
	st, err := h.wizard.Result(c.Request.Context(), sessionID(c))
	switch {
	case errors.Is(err, service.ErrNoSession), errors.Is(err, service.ErrNotSubmitted):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Errorf("❌ Failed to read result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, resultResponse{
		CustomerName: st.CustomerName,
		CustomerType: st.CustomerType,
		SelectedTree: st.Selected,
	})
}
