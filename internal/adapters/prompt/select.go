// Package prompt adapts the human-input channel for human-gated cascades.
package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/secondary"
)

// Selector presents the three cascade choices on the terminal.
type Selector struct{}

// NewSelector creates a terminal Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// SelectCascadeAction shows the violated axes and asks for one of the
// three discrete responses the Sentinel understands.
func (s *Selector) SelectCascadeAction(violations []models.Violation) (string, error) {
	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = v.String()
	}

	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Change-radius violations detected").
			Description(strings.Join(lines, "\n")).
			Options(
				huh.NewOption("Auto-apply cascade warnings and continue", secondary.ChoiceAutoApply),
				huh.NewOption("Review diff and halt the wave", secondary.ChoiceReviewAndHalt),
				huh.NewOption("Halt the wave", secondary.ChoiceHalt),
			).
			Value(&choice),
	))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("cascade prompt failed: %w", err)
	}
	return choice, nil
}

// Ensure Selector implements the interface
var _ secondary.Prompter = (*Selector)(nil)
