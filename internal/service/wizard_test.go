package service

import (
	"context"
	"customerwizard/wizard/internal/domain"
	"customerwizard/wizard/internal/state"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
	"Business": {
		"Insurance": ["Liability", "Property"],
		"Services": {"Legal": ["Contracts", "Advice"]}
	},
	"Individual": {
		"Savings": ["Pension", "ISA"]
	}
}`

func newTestWizard(t *testing.T, requireSelection bool) *Wizard {
	t.Helper()
	catalog, err := domain.ParseJSONCatalog([]byte(testCatalog))
	require.NoError(t, err)
	return NewWizard(catalog, state.NewMemoryStore(time.Hour), requireSelection)
}

func TestWizard_FullRun(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)

	require.NoError(t, w.Start(ctx, "s1", "  Ada Lovelace "))
	require.NoError(t, w.ChooseType(ctx, "s1", "Business"))

	tree, err := w.Options(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Insurance", "Services"}, tree.Labels())

	selected, err := w.Submit(ctx, "s1", []string{"Liability", "Advice", "Advice"})
	require.NoError(t, err)
	raw, err := selected.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Insurance":["Liability"],"Services":{"Legal":["Advice"]}}`, string(raw))

	result, err := w.Result(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", result.CustomerName)
	assert.Equal(t, "Business", result.CustomerType)
	assert.True(t, selected.Equal(result.Selected))
	assert.False(t, result.UpdatedAt.IsZero())
}

func TestWizard_StartRequiresName(t *testing.T) {
	w := newTestWizard(t, false)
	assert.ErrorIs(t, w.Start(context.Background(), "s1", "   "), ErrMissingName)
}

func TestWizard_StepsNeedSession(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)

	assert.ErrorIs(t, w.ChooseType(ctx, "nobody", "Business"), ErrNoSession)

	_, err := w.Options(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = w.Submit(ctx, "nobody", []string{"Liability"})
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = w.Result(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestWizard_UnknownCustomerType(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))

	err := w.ChooseType(ctx, "s1", "Retail")
	assert.ErrorIs(t, err, ErrUnknownCustomerType)
	assert.Contains(t, err.Error(), "Retail")
}

func TestWizard_OptionsBeforeType(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))

	_, err := w.Options(ctx, "s1")
	assert.ErrorIs(t, err, ErrTypeNotChosen)

	_, err = w.Submit(ctx, "s1", []string{"Liability"})
	assert.ErrorIs(t, err, ErrTypeNotChosen)

	_, err = w.Result(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotSubmitted)
}

func TestWizard_EmptySelectionAccepted(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))
	require.NoError(t, w.ChooseType(ctx, "s1", "Business"))

	selected, err := w.Submit(ctx, "s1", nil)
	require.NoError(t, err)
	assert.Nil(t, selected)

	result, err := w.Result(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.Nil(t, result.Selected)
}

func TestWizard_OptionsOfOtherTypeDoNotMatch(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))
	require.NoError(t, w.ChooseType(ctx, "s1", "Individual"))

	selected, err := w.Submit(ctx, "s1", []string{"Liability"})
	require.NoError(t, err)
	assert.Nil(t, selected)
}

func TestWizard_EmptySelectionRejectedWhenRequired(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, true)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))
	require.NoError(t, w.ChooseType(ctx, "s1", "Business"))

	_, err := w.Submit(ctx, "s1", []string{"Nonexistent"})
	assert.True(t, errors.Is(err, ErrEmptySelection))

	_, err = w.Result(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotSubmitted)

	flash, err := w.TakeFlash(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, EmptySelectionMessage, flash)

	flash, err = w.TakeFlash(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, flash)

	_, err = w.Submit(ctx, "s1", []string{"Property"})
	require.NoError(t, err)
}

func TestWizard_ChangingTypeDropsSelection(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))
	require.NoError(t, w.ChooseType(ctx, "s1", "Business"))
	_, err := w.Submit(ctx, "s1", []string{"Liability"})
	require.NoError(t, err)

	require.NoError(t, w.ChooseType(ctx, "s1", "Individual"))

	_, err = w.Result(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotSubmitted)
}

func TestWizard_StartReplacesPreviousRun(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))
	require.NoError(t, w.ChooseType(ctx, "s1", "Business"))

	require.NoError(t, w.Start(ctx, "s1", "Grace"))

	st, err := w.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Grace", st.CustomerName)
	assert.Empty(t, st.CustomerType)
}

func TestWizard_Reset(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))

	require.NoError(t, w.Reset(ctx, "s1"))
	require.NoError(t, w.Reset(ctx, "s1"))

	_, err := w.State(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestWizard_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, false)
	require.NoError(t, w.Start(ctx, "s1", "Ada"))
	require.NoError(t, w.Start(ctx, "s2", "Grace"))
	require.NoError(t, w.ChooseType(ctx, "s1", "Business"))

	st, err := w.State(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, st.CustomerType)
}

func TestWizard_CustomerTypesInCatalogOrder(t *testing.T) {
	assert.Equal(t, []string{"Business", "Individual"}, newTestWizard(t, false).CustomerTypes())
}
