package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjourdan1/egressctl/internal/azure"
)

type fakePrompter struct {
	selection      []string
	selectErr      error
	confirmAnswer  bool
	confirmErr     error
	gotOptions     []string
	gotDefaults    []string
	confirmedLabel string
}

func (f *fakePrompter) MultiSelect(_ string, options []string, defaults []string) ([]string, error) {
	f.gotOptions = options
	f.gotDefaults = defaults
	return f.selection, f.selectErr
}

func (f *fakePrompter) Confirm(label string, _ bool) (bool, error) {
	f.confirmedLabel = label
	return f.confirmAnswer, f.confirmErr
}

var pickerSubs = []azure.SubscriptionInfo{
	{ID: "sub-1", DisplayName: "Production"},
	{ID: "sub-2", DisplayName: "Dev"},
}

func TestPickSubscriptions(t *testing.T) {
	p := &fakePrompter{selection: []string{"Production (sub-1)"}}

	ids, err := PickSubscriptions(p, pickerSubs, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub-1"}, ids)
	assert.Equal(t, []string{"Production (sub-1)", "Dev (sub-2)"}, p.gotOptions)
	assert.Empty(t, p.gotDefaults)
}

func TestPickSubscriptions_Preselected(t *testing.T) {
	p := &fakePrompter{selection: []string{"Dev (sub-2)"}}

	_, err := PickSubscriptions(p, pickerSubs, []string{"dev", "sub-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Production (sub-1)", "Dev (sub-2)"}, p.gotDefaults)
}

func TestPickSubscriptions_EmptySelectionMeansAll(t *testing.T) {
	p := &fakePrompter{selection: nil, confirmAnswer: true}

	ids, err := PickSubscriptions(p, pickerSubs, nil)
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Contains(t, p.confirmedLabel, "all 2 subscriptions")
}

func TestPickSubscriptions_EmptySelectionDeclined(t *testing.T) {
	p := &fakePrompter{selection: nil, confirmAnswer: false}

	_, err := PickSubscriptions(p, pickerSubs, nil)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPickSubscriptions_NoSubscriptions(t *testing.T) {
	_, err := PickSubscriptions(&fakePrompter{}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no subscriptions")
}
