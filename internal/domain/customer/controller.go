package customer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

type ListOptions struct {
	PageSize int
	Policy   FormPolicy
}

// ListController is one administrator's view of the customer list: a cached
// working set, the active filter and the current page. It is not safe for
// concurrent use; Sessions serializes access per administrator.
type ListController struct {
	source   DataSource
	sink     RenderSink
	pageSize int
	policy   FormPolicy
	logger   *slog.Logger

	records       []Customer
	filter        Filter
	page          int
	loadErr       error
	pendingDelete string
}

func NewListController(source DataSource, sink RenderSink, opts ListOptions, logger *slog.Logger) *ListController {
	if source == nil {
		panic("customer data source cannot be nil")
	}
	if sink == nil {
		panic("render sink cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListController{
		source:   source,
		sink:     sink,
		pageSize: pageSize,
		policy:   opts.Policy,
		logger:   logger.With(slog.String("component", "ListController")),
		page:     1,
	}
}

func (c *ListController) Page() int      { return c.page }
func (c *ListController) PageSize() int  { return c.pageSize }
func (c *ListController) Filter() Filter { return c.filter }
func (c *ListController) Len() int       { return len(c.records) }

// LoadErr is the error of the last failed load, nil once a load succeeds.
func (c *ListController) LoadErr() error { return c.loadErr }

// Records returns a copy of the working set in its current order.
func (c *ListController) Records() []Customer {
	return slices.Clone(c.records)
}

func (c *ListController) filtered() []Customer {
	return ApplyFilters(c.records, c.filter)
}

func (c *ListController) PageCount() int {
	return PageCount(len(c.filtered()), c.pageSize)
}

// Load replaces the working set with a fresh copy from the data source and
// renders. A failed fetch leaves the working set empty and renders the error.
func (c *ListController) Load(ctx context.Context) error {
	err := c.reload(ctx)
	c.Render()
	return err
}

func (c *ListController) reload(ctx context.Context) error {
	records, err := c.source.FetchAll(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to load customers", slog.Any("error", err))
		c.records = nil
		c.loadErr = err
		return err
	}

	SortByConnectionDate(records)
	c.records = records
	c.loadErr = nil
	c.logger.DebugContext(ctx, "Loaded customers", slog.Int("count", len(records)))
	return nil
}

func (c *ListController) Render() {
	if c.loadErr != nil {
		c.sink.RenderError(c.loadErr)
		return
	}

	view := c.filtered()
	pageCount := PageCount(len(view), c.pageSize)
	page := Paginate(view, c.page, c.pageSize)
	if len(page) == 0 {
		c.sink.RenderEmpty(c.page, pageCount)
		return
	}
	c.sink.RenderPage(page, c.page, pageCount)
}

// SetFilters replaces all criteria and returns to the first page.
func (c *ListController) SetFilters(f Filter) {
	c.filter = f
	c.page = 1
	c.Render()
}

func (c *ListController) ClearFilters() {
	c.SetFilters(Filter{})
}

func (c *ListController) NextPage() {
	if HasNext(c.page, c.PageCount()) {
		c.page++
	}
	c.Render()
}

func (c *ListController) PrevPage() {
	if HasPrev(c.page) {
		c.page--
	}
	c.Render()
}

// GoToPage moves to page when it exists in the filtered view.
func (c *ListController) GoToPage(page int) {
	if page >= 1 && page <= c.PageCount() {
		c.page = page
	}
	c.Render()
}

// Find looks a record up in the working set.
func (c *ListController) Find(customerID string) (Customer, bool) {
	i := slices.IndexFunc(c.records, func(r Customer) bool { return r.ID == customerID })
	if i < 0 {
		return Customer{}, false
	}
	return c.records[i], true
}

// Save creates a customer when editingID is empty and otherwise resubmits the
// full field set for editingID. Only a successful write reloads the working set.
func (c *ListController) Save(ctx context.Context, form Form, editingID string) (string, error) {
	fields, err := c.policy.Normalize(form)
	if err != nil {
		return "", err
	}

	customerID := editingID
	if editingID != "" {
		if err := c.source.Update(ctx, editingID, fields); err != nil {
			return "", err
		}
	} else {
		customerID, err = c.source.Create(ctx, fields)
		if err != nil {
			return "", err
		}
	}

	c.refreshAfterMutation(ctx)
	return customerID, nil
}

// ConfirmDelete records the administrator's confirmation for deleting customerID.
func (c *ListController) ConfirmDelete(customerID string) error {
	if c.loadErr != nil {
		return c.loadErr
	}
	if _, ok := c.Find(customerID); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, customerID)
	}
	c.pendingDelete = customerID
	return nil
}

// Delete removes customerID, which must have been confirmed with ConfirmDelete.
// The confirmation is used up by the attempt whatever its outcome.
func (c *ListController) Delete(ctx context.Context, customerID string) error {
	confirmed := c.pendingDelete != "" && c.pendingDelete == customerID
	c.pendingDelete = ""
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	if err := c.source.Delete(ctx, customerID); err != nil {
		return err
	}

	c.refreshAfterMutation(ctx)
	return nil
}

// refreshAfterMutation reloads, then returns to page 1 only if the current page
// no longer exists. A reload failure is reported through the sink.
func (c *ListController) refreshAfterMutation(ctx context.Context) {
	if err := c.reload(ctx); err != nil {
		c.logger.WarnContext(ctx, "Mutation succeeded but reload failed", slog.Any("error", err))
	}
	if c.page > c.PageCount() {
		c.page = 1
	}
	c.Render()
}

// ExportAll writes the whole working set, ignoring filters and paging.
func (c *ListController) ExportAll(w io.Writer) error {
	return WriteExport(w, c.records)
}
