package cli

import (
	"context"
	"fmt"
)

// Slides prints the onboarding carousel.
func (a *App) Slides(ctx context.Context) error {
	slides, err := a.welcome.Slides(ctx)
	if err != nil {
		printlnFn("Could not load slides:", err.Error())
		return err
	}

	for _, s := range slides {
		printlnFn(fmt.Sprintf("%d. %s — %s", s.ID, s.Title, s.Description))
	}
	return nil
}
