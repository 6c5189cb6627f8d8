package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/propkeeper/internal/client/models"
	"github.com/dmitrijs2005/propkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and exchanges them for a session token.
// On success the token is persisted, so the session survives a restart.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Println("Invalid username or password.")
		} else {
			a.reportErr(ctx, err)
		}
		return err
	}

	fmt.Println("Logged in.")
	return nil
}

// Logout ends the session. The server call is best-effort; the local token
// is cleared either way.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// Signup collects account fields and creates a new user. The role is left
// to the server's default (buyer) unless one is entered explicitly.
func (a *App) Signup(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (buyer/seller, empty for buyer)", os.Stdout)
	if err != nil {
		return err
	}

	draft := models.UserDraft{Username: userName, Email: email, Password: password, Role: role}
	if err := a.validate.Struct(draft); err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}

	user, err := a.api.Signup(ctx, draft)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	fmt.Printf("Account #%d (%s) created. You can log in now.\n", user.ID, user.Username)
	return nil
}

// Whoami prints the identity embedded in the current token.
func (a *App) Whoami(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}

	fmt.Printf("#%d %s role=%s session expires %s\n",
		claims.UserID, claims.Username, claims.Role, claims.ExpiresAt.Format("2006-01-02 15:04:05"))
	return nil
}
