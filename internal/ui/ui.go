package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/shared"
)

// PromptCredentials runs the credentials form on in/out and returns what was entered.
//
// Cancelling the form, or the context, returns [shared.ErrCancelled].
func PromptCredentials(ctx context.Context, in io.Reader, out io.Writer, username string) (Credentials, error) {
	model := NewCredentialsModel(username)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return Credentials{}, shared.ErrCancelled
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to run prompt: %w", err)
	}

	m, ok := final.(*CredentialsModel)
	if !ok {
		return Credentials{}, fmt.Errorf("unexpected prompt model %T", final)
	}
	return m.Result()
}
