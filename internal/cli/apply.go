package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/eonwallet/walletcore/internal/application"
)

// Apply walks the user through the card-application form: card usage,
// purposes, the free-text "Others" purpose, and submission.
func (a *App) Apply(ctx context.Context) error {
	a.form.Reset()

	printlnFn("How do you plan to use the card? You can select more than 1 option.")
	for _, tag := range application.CardUsageOptions {
		yes, err := getYesNo(a.reader, fmt.Sprintf("Use for %q?", tag), os.Stdout)
		if err != nil {
			return err
		}
		if yes {
			a.form.ToggleCardUsage(tag)
		}
	}

	printlnFn("Purpose of transaction? You can select more than 1 option.")
	for _, tag := range application.PurposeOptions {
		yes, err := getYesNo(a.reader, fmt.Sprintf("Select %q?", tag), os.Stdout)
		if err != nil {
			return err
		}
		if yes {
			a.form.TogglePurpose(tag)
		}
	}

	if slices.Contains(a.form.State().SelectedPurposes, application.PurposeOthers) {
		text, err := getSimpleText(a.reader, "Please specify the purpose", os.Stdout)
		if err != nil {
			return err
		}
		a.form.SetOtherPurposeText(text)
	}

	if err := a.form.Submit(ctx); err != nil {
		printlnFn("Application failed:", err.Error())
		return err
	}

	result := a.form.State().Result
	printlnFn(fmt.Sprintf("Application %s submitted (%s). Estimated processing time: %s.",
		result.ApplicationID, result.Status, result.EstimatedProcessingTime))
	return nil
}
