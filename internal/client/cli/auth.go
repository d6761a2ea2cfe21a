package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/phoenix-letters/phoenix-go/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password and career objective, and
// creates an account. Registration implicitly signs the user in.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	objective, err := getSimpleText(a.reader, "Enter career objective", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, password, objective); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	a.userEmail = email
	printlnFn("Welcome to Phoenix,", name+"!")
	return nil
}

// Login prompts for credentials and authenticates. On success the session is
// persisted, so subsequent runs start signed in.
//
// The password byte slice is securely wiped before returning.
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

	if err := a.authService.Login(ctx, email, password); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.userEmail = email
	printlnFn("Login successful")
	return nil
}

// WhoAmI fetches and prints the signed-in user's profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		printlnFn("Could not fetch profile:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("ID:        %s", u.UserID))
	printlnFn(fmt.Sprintf("Name:      %s", u.Name))
	printlnFn(fmt.Sprintf("Email:     %s", u.Email))
	if u.Objective != "" {
		printlnFn(fmt.Sprintf("Objective: %s", u.Objective))
	}
	return nil
}

// Status prints whether a session exists and for whom.
func (a *App) Status(ctx context.Context) error {
	if a.authService.HasSession() {
		printlnFn("Signed in as", a.authService.Email())
	} else {
		printlnFn("Not signed in")
	}
	return nil
}

// Logout destroys the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userEmail = ""
	printlnFn("Logged out")
	return nil
}
