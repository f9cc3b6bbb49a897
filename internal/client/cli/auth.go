package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vacayhq/vacay/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account on the server.
//
// On success it prints "Success! You can now log in." and returns nil. The
// password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.api.Register(ctx, email, string(password)); err != nil {
		log.Printf("Registration failed: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts for credentials and authenticates against the server. On
// success the token pair is installed on the API client (and persisted to
// the session store through the tokens-updated hook). The password is
// securely wiped before returning.
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

	if _, err := a.api.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login failed: %s", err.Error())
		return err
	}

	a.loggedIn = true
	a.userEmail = email
	if err := a.store.SaveEmail(ctx, email); err != nil {
		log.Printf("error persisting login email: %s", err.Error())
	}

	fmt.Println("Success!")
	return nil
}

// Logout drops the in-memory tokens and clears the persisted session.
func (a *App) Logout(ctx context.Context) error {
	a.api.ClearTokens()
	a.loggedIn = false
	a.userEmail = ""
	a.currentAlbum = nil

	if err := a.store.ClearTokens(ctx); err != nil {
		log.Printf("error clearing stored session: %s", err.Error())
	}
	if err := a.store.ClearEmail(ctx); err != nil {
		log.Printf("error clearing stored email: %s", err.Error())
	}
	if err := a.store.ClearCurrentAlbum(ctx); err != nil {
		log.Printf("error clearing stored album: %s", err.Error())
	}

	fmt.Println("Logged out.")
	return nil
}
