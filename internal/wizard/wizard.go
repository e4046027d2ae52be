// Package wizard provides the interactive subscription picker used by
// `egressctl scan --interactive`.
package wizard

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/kjourdan1/egressctl/internal/azure"
)

// ErrCancelled is returned when the user aborts the picker with Ctrl+C.
var ErrCancelled = terminal.InterruptErr

// Prompter abstracts user interaction for testing.
type Prompter interface {
	MultiSelect(label string, options []string, defaults []string) ([]string, error)
	Confirm(label string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter with survey/v2.
type SurveyPrompter struct{}

// NewSurveyPrompter returns a survey-based prompter.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

func (p *SurveyPrompter) MultiSelect(label string, options []string, defaults []string) ([]string, error) {
	var selected []string
	err := survey.AskOne(&survey.MultiSelect{
		Message: label,
		Options: options,
		Default: defaults,
	}, &selected)
	if err != nil {
		return nil, err
	}
	return selected, nil
}

func (p *SurveyPrompter) Confirm(label string, defaultValue bool) (bool, error) {
	var value bool
	err := survey.AskOne(&survey.Confirm{
		Message: label,
		Default: defaultValue,
	}, &value)
	if err != nil {
		return false, err
	}
	return value, nil
}

// PickSubscriptions presents the discovered subscriptions and returns the IDs
// the user selected. Preselected entries (IDs or display names from flags or
// config) are checked by default. Selecting nothing means scanning everything,
// after confirmation.
func PickSubscriptions(p Prompter, subs []azure.SubscriptionInfo, preselected []string) ([]string, error) {
	if len(subs) == 0 {
		return nil, fmt.Errorf("no subscriptions to choose from")
	}

	options := make([]string, 0, len(subs))
	byOption := make(map[string]string, len(subs))
	defaults := make([]string, 0, len(preselected))
	for _, sub := range subs {
		option := fmt.Sprintf("%s (%s)", sub.DisplayName, sub.ID)
		options = append(options, option)
		byOption[option] = sub.ID
		for _, want := range preselected {
			if strings.EqualFold(want, sub.ID) || strings.EqualFold(want, sub.DisplayName) {
				defaults = append(defaults, option)
				break
			}
		}
	}

	selected, err := p.MultiSelect("Select subscriptions to assess", options, defaults)
	if err != nil {
		return nil, err
	}

	if len(selected) == 0 {
		all, err := p.Confirm(fmt.Sprintf("Nothing selected. Assess all %d subscriptions?", len(subs)), true)
		if err != nil {
			return nil, err
		}
		if !all {
			return nil, ErrCancelled
		}
		return nil, nil
	}

	ids := make([]string, 0, len(selected))
	for _, option := range selected {
		if id, ok := byOption[option]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
