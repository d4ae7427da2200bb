package handler

import (
	"customerwizard/wizard/internal/domain"
	"customerwizard/wizard/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// page is the data every template renders from
type page struct {
	Title        string
	Error        string
	Flash        string
	CustomerName string
	CustomerType string
	Types        []string
	Tree         *domain.Node
}

// WizardHandler serves the HTML steps of the wizard
type WizardHandler struct {
	wizard *service.Wizard
}

func NewWizardHandler(wizard *service.Wizard) *WizardHandler {
	return &WizardHandler{wizard: wizard}
}

// Index shows the customer name form, prefilled when a run is in progress.
func (h *WizardHandler) Index(c *gin.Context) {
	data := page{Title: "New customer"}
	if st, err := h.wizard.State(c.Request.Context(), sessionID(c)); err == nil {
		data.CustomerName = st.CustomerName
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *WizardHandler) SubmitName(c *gin.Context) {
	name := c.PostForm("customer_name")
	err := h.wizard.Start(c.Request.Context(), sessionID(c), name)
	if errors.Is(err, service.ErrMissingName) {
		c.HTML(http.StatusBadRequest, "index.html", page{
			Title: "New customer",
			Error: "Please enter the customer name.",
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/select_type")
}

func (h *WizardHandler) SelectType(c *gin.Context) {
	st, err := h.wizard.State(c.Request.Context(), sessionID(c))
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}
	c.HTML(http.StatusOK, "select_type.html", page{
		Title:        "Customer type",
		CustomerName: st.CustomerName,
		CustomerType: st.CustomerType,
		Types:        h.wizard.CustomerTypes(),
	})
}

func (h *WizardHandler) SubmitType(c *gin.Context) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	err := h.wizard.ChooseType(ctx, sid, c.PostForm("customer_type"))
	if errors.Is(err, service.ErrUnknownCustomerType) {
		st, stErr := h.wizard.State(ctx, sid)
		if stErr != nil {
			h.redirectOrFail(c, stErr)
			return
		}
		c.HTML(http.StatusBadRequest, "select_type.html", page{
			Title:        "Customer type",
			Error:        "Please choose one of the listed customer types.",
			CustomerName: st.CustomerName,
			CustomerType: st.CustomerType,
			Types:        h.wizard.CustomerTypes(),
		})
		return
	}
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/select_options")
}

func (h *WizardHandler) SelectOptions(c *gin.Context) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	tree, err := h.wizard.Options(ctx, sid)
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}
	flash, err := h.wizard.TakeFlash(ctx, sid)
	if err != nil {
		h.fail(c, err)
		return
	}
	st, err := h.wizard.State(ctx, sid)
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}

	c.HTML(http.StatusOK, "select_options.html", page{
		Title:        "Options",
		Flash:        flash,
		CustomerName: st.CustomerName,
		CustomerType: st.CustomerType,
		Tree:         tree,
	})
}

func (h *WizardHandler) SubmitOptions(c *gin.Context) {
	_, err := h.wizard.Submit(c.Request.Context(), sessionID(c), c.PostFormArray("options"))
	if errors.Is(err, service.ErrEmptySelection) {
		c.Redirect(http.StatusSeeOther, "/select_options")
		return
	}
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/result")
}

func (h *WizardHandler) Result(c *gin.Context) {
	st, err := h.wizard.Result(c.Request.Context(), sessionID(c))
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}
	c.HTML(http.StatusOK, "result.html", page{
		Title:        "Summary",
		CustomerName: st.CustomerName,
		CustomerType: st.CustomerType,
		Tree:         st.Selected,
	})
}

// NewCustomer drops the session state and starts over.
func (h *WizardHandler) NewCustomer(c *gin.Context) {
	if err := h.wizard.Reset(c.Request.Context(), sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// redirectOrFail sends the user back to the first step they still have to
// complete, or fails the request for store errors.
func (h *WizardHandler) redirectOrFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrTypeNotChosen):
		c.Redirect(http.StatusSeeOther, "/select_type")
	case errors.Is(err, service.ErrNotSubmitted):
		c.Redirect(http.StatusSeeOther, "/select_options")
	default:
		h.fail(c, err)
	}
}

func (h *WizardHandler) fail(c *gin.Context, err error) {
	log.Errorf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "Something went wrong, please try again.")
}
