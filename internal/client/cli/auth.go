package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/personadesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	if userName == "" {
		return "", nil, errors.New("username is required")
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Signup creates an account and logs into it.
func (a *App) Signup(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.Signup(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			a.println("Username exists.")
		}
		return err
	}
	a.userName = userName
	a.println("Account created.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.Login(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			a.println("Invalid username or password.")
		}
		return err
	}
	a.userName = userName
	a.println("Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.workspace = nil
	a.userName = ""
	a.sessions.Logout(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.UpdatePassword(ctx, password); err != nil {
		return err
	}
	a.println("Password updated.")
	return nil
}

// DeleteAccount asks for confirmation, then removes the account and its
// influencers.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Type DELETE to remove your account and all its data", a.out)
	if err != nil {
		return err
	}
	if answer != "DELETE" {
		a.println("Cancelled.")
		return nil
	}

	a.workspace = nil
	if err := a.sessions.DeleteAccount(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.println("Account deleted.")
	return nil
}
