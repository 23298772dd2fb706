package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/eonwallet/walletcore/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getYesNo = GetYesNo

// Login prompts for credentials and authenticates through the auth store.
// Validation and gateway rejection messages are printed for the user and the
// error is returned unchanged.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	st := a.auth.State()
	printlnFn(fmt.Sprintf("Logged in as %s", st.User.Email))
	return nil
}

// Logout clears the session and drops stored credentials best-effort.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout()
	printlnFn("Logged out")
	return nil
}

// Status prints the current session and card-application form state.
func (a *App) Status(ctx context.Context) error {
	st := a.auth.State()
	if st.IsAuthenticated {
		printlnFn(fmt.Sprintf("Logged in as %s (%s)", st.User.Name, st.User.Email))
	} else {
		printlnFn("Not logged in")
	}

	form := a.form.State()
	if form.Result != nil {
		printlnFn(fmt.Sprintf("Card application %s: %s, estimated processing time %s",
			form.Result.ApplicationID, form.Result.Status, form.Result.EstimatedProcessingTime))
	}
	return nil
}
