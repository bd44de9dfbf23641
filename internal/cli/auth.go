package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/daykeeper/internal/accounts"
	"github.com/dmitrijs2005/daykeeper/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts for profile data and creates a new account. The new user
// is signed in immediately and their (empty) calendar is loaded.
func (a *App) SignUp(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.auth.SignUp(ctx, fullName, email, password)
	if err != nil {
		printlnFn("Sign-up failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", user.FullName))
	return a.loadEvents(ctx, user)
}

// SignIn prompts for credentials and authenticates.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.auth.SignIn(ctx, email, password)
	if err != nil {
		printlnFn("Sign-in failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", user.FullName))
	return a.loadEvents(ctx, user)
}

// Unlock restores the last saved session after the biometric prompt.
func (a *App) Unlock(ctx context.Context) error {
	user, err := a.auth.SignInWithBiometrics(ctx)
	if err != nil {
		printlnFn("Unlock failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", user.FullName))
	return a.loadEvents(ctx, user)
}

// SignOut ends the session and clears the projected calendar.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		a.log.Error(ctx, "error signing out", "error", err)
		return err
	}
	a.cal.Reset()
	printlnFn("Signed out.")
	return nil
}

// Profile shows the current account and edits it interactively. Pressing
// Enter on a prompt keeps the stored value; the password is changed only
// when the user asks for it.
func (a *App) Profile(ctx context.Context) error {
	user := a.auth.Snapshot().Data.User
	if user == nil {
		printlnFn("Sign in first.")
		return nil
	}

	printlnFn(fmt.Sprintf("Full name: %s", user.FullName))
	printlnFn(fmt.Sprintf("Email:     %s", user.Email))

	fullName, err := getSimpleText(a.reader, "New full name (Enter to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (Enter to keep)", os.Stdout)
	if err != nil {
		return err
	}

	upd := accounts.ProfileUpdate{FullName: fullName, Email: email}

	change, err := GetConfirm(a.reader, "Change password?", os.Stdout)
	if err != nil {
		return err
	}
	if change {
		upd.CurrentPassword, err = getPassword(os.Stdout, "Current password")
		if err != nil {
			return err
		}
		upd.NewPassword, err = getPassword(os.Stdout, "New password")
		if err != nil {
			return err
		}
	}

	updated, err := a.auth.UpdateProfile(ctx, user.Email, upd)
	if err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Profile updated: %s <%s>", updated.FullName, updated.Email))
	return nil
}

// Biometrics flips the biometric sign-in preference.
func (a *App) Biometrics(ctx context.Context) error {
	enabled := a.auth.Snapshot().Data.BiometricsEnabled
	if enabled {
		printlnFn("Biometric sign-in is enabled.")
	} else {
		printlnFn("Biometric sign-in is disabled.")
	}

	flip, err := GetConfirm(a.reader, fmt.Sprintf("Set to %v?", !enabled), os.Stdout)
	if err != nil {
		return err
	}
	if !flip {
		return nil
	}

	if err := a.auth.ToggleBiometrics(ctx, !enabled); err != nil {
		a.log.Error(ctx, "error toggling biometrics", "error", err)
		return err
	}
	printlnFn("Done.")
	return nil
}

func (a *App) loadEvents(ctx context.Context, user *models.User) error {
	if _, err := a.cal.Load(ctx, user.ID); err != nil {
		a.log.Error(ctx, "error loading events", "error", err)
		return err
	}
	return nil
}
