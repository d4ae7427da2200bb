package service

import (
	"context"
	"customerwizard/wizard/internal/domain"
	"customerwizard/wizard/internal/state"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingName         = errors.New("customer name is required")
	ErrNoSession           = errors.New("wizard not started")
	ErrUnknownCustomerType = errors.New("unknown customer type")
	ErrTypeNotChosen       = errors.New("customer type not chosen")
	ErrEmptySelection      = errors.New("no options selected")
	ErrNotSubmitted        = errors.New("options not submitted")
)

const EmptySelectionMessage = "Please select at least one option."

// Wizard runs the name → customer type → options → result steps for a
// session. The catalog is shared and read-only; state lives in the store.
type Wizard struct {
	catalog          *domain.Catalog
	store            state.Store
	requireSelection bool
	now              func() time.Time
}

// NewWizard builds the step service. With requireSelection an empty or
// unmatched submission is refused with ErrEmptySelection and a flash
// message; otherwise it is accepted as "nothing selected".
func NewWizard(catalog *domain.Catalog, store state.Store, requireSelection bool) *Wizard {
	return &Wizard{
		catalog:          catalog,
		store:            store,
		requireSelection: requireSelection,
		now:              time.Now,
	}
}

func (w *Wizard) CustomerTypes() []string {
	return w.catalog.CustomerTypes()
}

// Subtree returns a customer type's category tree, for read-only views.
func (w *Wizard) Subtree(customerType string) (*domain.Node, bool) {
	return w.catalog.Subtree(customerType)
}

// Start begins a new run, replacing whatever the session held.
func (w *Wizard) Start(ctx context.Context, sid, customerName string) error {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return ErrMissingName
	}

	if err := w.save(ctx, sid, &domain.WizardState{CustomerName: name}); err != nil {
		return err
	}

	stepTotal.WithLabelValues("name").Inc()
	log.Debugf("Session %s started wizard for %q", sid, name)
	return nil
}

// State returns the session's state or ErrNoSession.
func (w *Wizard) State(ctx context.Context, sid string) (*domain.WizardState, error) {
	st, err := w.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNoSession
	}
	return st, nil
}

// ChooseType records the customer type and drops any earlier selection.
func (w *Wizard) ChooseType(ctx context.Context, sid, customerType string) error {
	st, err := w.State(ctx, sid)
	if err != nil {
		return err
	}

	customerType = strings.TrimSpace(customerType)
	if !w.catalog.Has(customerType) {
		return fmt.Errorf("%w: %q", ErrUnknownCustomerType, customerType)
	}

	st.CustomerType = customerType
	st.Submitted = false
	st.Selected = nil
	if err := w.save(ctx, sid, st); err != nil {
		return err
	}

	stepTotal.WithLabelValues("type").Inc()
	return nil
}

// Options returns the category tree to choose from. A type that is no
// longer in the catalog has no tree and yields nil.
func (w *Wizard) Options(ctx context.Context, sid string) (*domain.Node, error) {
	st, err := w.State(ctx, sid)
	if err != nil {
		return nil, err
	}
	if st.CustomerType == "" {
		return nil, ErrTypeNotChosen
	}

	subtree, ok := w.catalog.Subtree(st.CustomerType)
	if !ok {
		log.Warnf("⚠️ Session %s holds customer type %q that is not in the catalog", sid, st.CustomerType)
		return nil, nil
	}
	return subtree, nil
}

// Submit filters the chosen type's tree by the submitted options and stores
// the result. The returned tree is nil when nothing matched.
func (w *Wizard) Submit(ctx context.Context, sid string, options []string) (*domain.Node, error) {
	st, err := w.State(ctx, sid)
	if err != nil {
		return nil, err
	}
	if st.CustomerType == "" {
		return nil, ErrTypeNotChosen
	}

	selection := domain.NewSelection(options...)
	selectionSize.Observe(float64(selection.Len()))

	started := time.Now()
	selected := w.catalog.Filter(st.CustomerType, selection)
	filterDuration.Observe(time.Since(started).Seconds())

	if selected == nil && w.requireSelection {
		st.Flash = EmptySelectionMessage
		if err := w.save(ctx, sid, st); err != nil {
			return nil, err
		}
		submissionTotal.WithLabelValues("rejected").Inc()
		return nil, ErrEmptySelection
	}

	st.Selected = selected
	st.Submitted = true
	st.Flash = ""
	if err := w.save(ctx, sid, st); err != nil {
		return nil, err
	}

	outcome := "matched"
	if selected == nil {
		outcome = "empty"
	}
	submissionTotal.WithLabelValues(outcome).Inc()
	stepTotal.WithLabelValues("options").Inc()
	log.Debugf("Session %s submitted %d options for %s (%s)", sid, selection.Len(), st.CustomerType, outcome)

	return selected, nil
}

// TakeFlash returns and clears the pending flash message.
func (w *Wizard) TakeFlash(ctx context.Context, sid string) (string, error) {
	st, err := w.State(ctx, sid)
	if err != nil {
		return "", err
	}

	msg := st.PopFlash()
	if msg == "" {
		return "", nil
	}
	return msg, w.save(ctx, sid, st)
}

// Result returns the finished run. ErrNotSubmitted until options were sent.
func (w *Wizard) Result(ctx context.Context, sid string) (*domain.WizardState, error) {
	st, err := w.State(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !st.Submitted {
		return nil, ErrNotSubmitted
	}
	return st, nil
}

// Reset clears the session so a new customer can start.
func (w *Wizard) Reset(ctx context.Context, sid string) error {
	if err := w.store.Clear(ctx, sid); err != nil {
		return err
	}
	stepTotal.WithLabelValues("reset").Inc()
	return nil
}

func (w *Wizard) save(ctx context.Context, sid string, st *domain.WizardState) error {
	st.UpdatedAt = w.now().UTC()
	if err := w.store.Set(ctx, sid, st); err != nil {
		return fmt.Errorf("failed to save wizard state: %w", err)
	}
	return nil
}
