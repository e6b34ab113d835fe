package handler

import (
	"bytes"
	"context"
	"fmt"
	"isp-billing/internal/api/handler/dto"
	"isp-billing/internal/api/middleware"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/infrastructure/monitoring"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const emptyExportMessage = "No customers to export."

type CustomerHandler struct {
	sessions *customer.Sessions
	logger   *slog.Logger
	now      func() time.Time
}

func NewCustomerHandler(sessions *customer.Sessions, l *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		sessions: sessions,
		logger:   l.With("component", "CustomerHandler"),
		now:      time.Now,
	}
}

func getCustomerIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "customerID")
	if id == "" {
		return "", fmt.Errorf("customerID not found in URL path")
	}
	return id, nil
}

func currentUserID(ctx context.Context) string {
	if user, ok := middleware.UserFromContext(ctx); ok {
		return user.ID
	}
	return middleware.AnonymousUser.ID
}

// run executes op on the caller's list session and captures the controller
// state that the rendered view does not carry.
func (h *CustomerHandler) run(r *http.Request, op func(*customer.ListController) error) (customer.View, dto.ListContext, error) {
	var lc dto.ListContext
	session := h.sessions.Get(currentUserID(r.Context()))
	view, err := session.Do(r.Context(), func(c *customer.ListController) error {
		opErr := op(c)
		lc = dto.ListContext{
			Filter:   c.Filter(),
			PageSize: c.PageSize(),
			Total:    len(customer.ApplyFilters(c.Records(), c.Filter())),
		}
		return opErr
	})
	return view, lc, err
}

func listResponse(view customer.View, lc dto.ListContext) (int, dto.CustomerListResponse) {
	if view.State == customer.ViewError {
		status, message, _ := classifyError(view.Err)
		return status, dto.NewCustomerListResponse(view, lc, message)
	}
	return http.StatusOK, dto.NewCustomerListResponse(view, lc, "")
}

func (h *CustomerHandler) respondView(w http.ResponseWriter, r *http.Request, op func(*customer.ListController) error) {
	view, lc, err := h.run(r, op)
	if err != nil {
		respondError(w, err)
		return
	}
	status, resp := listResponse(view, lc)
	respondJSON(w, status, resp)
}

// GetView returns the current page of the customer list.
//
// @Summary Current customer list page
// @Description Renders the administrator's customer list with the active filters and page. The list is loaded from the database on first use. When the database cannot be reached the response carries state "error".
// @Tags Customer List
// @Produce json
// @Success 200 {object} dto.CustomerListResponse "Rendered page"
// @Failure 403 {object} dto.CustomerListResponse "Database refused the read"
// @Failure 503 {object} dto.CustomerListResponse "Database unreachable"
// @Router /customers/view [get]
// @Security BearerAuth
func (h *CustomerHandler) GetView(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, func(c *customer.ListController) error {
		c.Render()
		return nil
	})
}

// Reload refetches every customer and renders the current page.
//
// @Summary Reload the customer list
// @Tags Customer List
// @Produce json
// @Success 200 {object} dto.CustomerListResponse "Rendered page"
// @Failure 403 {object} dto.CustomerListResponse "Database refused the read"
// @Failure 503 {object} dto.CustomerListResponse "Database unreachable"
// @Router /customers/view/reload [post]
// @Security BearerAuth
func (h *CustomerHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, func(c *customer.ListController) error {
		if err := c.Load(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "Customer list reload failed", slog.Any("error", err))
		}
		return nil
	})
}

// SetFilters replaces the list filters and returns to the first page.
//
// @Summary Filter the customer list
// @Description Replaces all filter criteria. Search matches name, email or phone case-insensitively; status and package must match exactly. Empty values disable a criterion.
// @Tags Customer List
// @Accept json
// @Produce json
// @Param request body dto.FilterRequest true "Filter criteria"
// @Success 200 {object} dto.CustomerListResponse "First page of the filtered list"
// @Failure 400 {object} dto.ErrorResponse "Unknown status or malformed request"
// @Router /customers/view/filters [put]
// @Security BearerAuth
func (h *CustomerHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req dto.FilterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		respondError(w, err)
		return
	}

	h.respondView(w, r, func(c *customer.ListController) error {
		c.SetFilters(filter)
		return nil
	})
}

// ClearFilters removes every filter and returns to the first page.
//
// @Summary Clear customer list filters
// @Tags Customer List
// @Produce json
// @Success 200 {object} dto.CustomerListResponse "First page of the unfiltered list"
// @Router /customers/view/filters [delete]
// @Security BearerAuth
func (h *CustomerHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, func(c *customer.ListController) error {
		c.ClearFilters()
		return nil
	})
}

// GoToPage moves to a page of the filtered list.
//
// @Summary Go to a list page
// @Description Pages outside 1..pageCount leave the current page unchanged.
// @Tags Customer List
// @Accept json
// @Produce json
// @Param request body dto.PageRequest true "Page number"
// @Success 200 {object} dto.CustomerListResponse "Rendered page"
// @Failure 400 {object} dto.ErrorResponse "Invalid page number"
// @Router /customers/view/page [put]
// @Security BearerAuth
func (h *CustomerHandler) GoToPage(w http.ResponseWriter, r *http.Request) {
	var req dto.PageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	h.respondView(w, r, func(c *customer.ListController) error {
		c.GoToPage(req.Page)
		return nil
	})
}

// NextPage advances one page unless already on the last.
//
// @Summary Next list page
// @Tags Customer List
// @Produce json
// @Success 200 {object} dto.CustomerListResponse "Rendered page"
// @Router /customers/view/next [post]
// @Security BearerAuth
func (h *CustomerHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, func(c *customer.ListController) error {
		c.NextPage()
		return nil
	})
}

// PrevPage goes back one page unless already on the first.
//
// @Summary Previous list page
// @Tags Customer List
// @Produce json
// @Success 200 {object} dto.CustomerListResponse "Rendered page"
// @Router /customers/view/prev [post]
// @Security BearerAuth
func (h *CustomerHandler) PrevPage(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, func(c *customer.ListController) error {
		c.PrevPage()
		return nil
	})
}

// Export downloads every loaded customer as CSV.
//
// @Summary Export customers
// @Description Exports the whole loaded list in load order, ignoring filters and paging. Every field is double-quoted.
// @Tags Customer List
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} dto.ErrorResponse "No customers to export"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /customers/export [get]
// @Security BearerAuth
func (h *CustomerHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	count := 0
	view, _, err := h.run(r, func(c *customer.ListController) error {
		count = c.Len()
		if count == 0 {
			return nil
		}
		return c.ExportAll(&buf)
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write export", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if view.State == customer.ViewError {
		respondError(w, view.Err)
		return
	}
	if count == 0 {
		respondJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: dto.ErrorDetail{Message: emptyExportMessage}})
		return
	}

	monitoring.RecordExport()
	h.logger.InfoContext(r.Context(), "Exported customers", slog.Int("count", count))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", customer.ExportFileName(h.now())))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// CreateCustomer adds a customer and reloads the list.
//
// @Summary Create a customer
// @Description Text fields are trimmed, an unparsable monthly fee is stored as 0 and a missing connection date defaults to today.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer form"
// @Success 201 {object} dto.CustomerMutationResponse "Created customer id and the refreshed list"
// @Failure 400 {object} dto.ErrorResponse "Invalid form"
// @Failure 409 {object} dto.ErrorResponse "Duplicate customer"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

// UpdateCustomer replaces every field of a customer and reloads the list.
//
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param request body dto.CustomerRequest true "Customer form"
// @Success 200 {object} dto.CustomerMutationResponse "Customer id and the refreshed list"
// @Failure 400 {object} dto.ErrorResponse "Invalid form"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	h.save(w, r, customerID, http.StatusOK)
}

func (h *CustomerHandler) save(w http.ResponseWriter, r *http.Request, editingID string, successStatus int) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var customerID string
	view, lc, err := h.run(r, func(c *customer.ListController) error {
		var saveErr error
		customerID, saveErr = c.Save(r.Context(), req.ToForm(), editingID)
		return saveErr
	})
	if err != nil {
		respondError(w, err)
		return
	}

	_, list := listResponse(view, lc)
	respondJSON(w, successStatus, dto.CustomerMutationResponse{CustomerID: customerID, View: list})
}

// GetCustomer returns one customer from the loaded list, for prefilling the edit form.
//
// @Summary Retrieve a customer
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer details"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var found customer.Customer
	_, _, err = h.run(r, func(c *customer.ListController) error {
		if err := c.LoadErr(); err != nil {
			return err
		}
		var ok bool
		if found, ok = c.Find(customerID); !ok {
			return fmt.Errorf("%w: %s", customer.ErrNotFound, customerID)
		}
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(found))
}

// ConfirmDelete records the administrator's confirmation for deleting a customer.
//
// @Summary Confirm a deletion
// @Description A DELETE for the same customer must follow; any other DELETE consumes the confirmation.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.DeleteConfirmationResponse "Deletion confirmed"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /customers/{customerID}/confirm-delete [post]
// @Security BearerAuth
func (h *CustomerHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var name string
	_, _, err = h.run(r, func(c *customer.ListController) error {
		if err := c.ConfirmDelete(customerID); err != nil {
			return err
		}
		found, _ := c.Find(customerID)
		name = found.Name
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.DeleteConfirmationResponse{CustomerID: customerID, Name: name, Confirmed: true})
}

// DeleteCustomer removes a confirmed customer and reloads the list.
//
// @Summary Delete a customer
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerMutationResponse "Deleted customer id and the refreshed list"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Deletion not confirmed"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	view, lc, err := h.run(r, func(c *customer.ListController) error {
		return c.Delete(r.Context(), customerID)
	})
	if err != nil {
		respondError(w, err)
		return
	}

	_, list := listResponse(view, lc)
	respondJSON(w, http.StatusOK, dto.CustomerMutationResponse{CustomerID: customerID, View: list})
}
