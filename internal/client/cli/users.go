package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/propkeeper/internal/client/models"
	"github.com/dmitrijs2005/propkeeper/internal/client/policy"
)

// Users lists the registered accounts. Admin only.
func (a *App) Users(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}
	if !policy.CanManageUsers(roleOf(claims)) {
		fmt.Println("Only admins can manage accounts.")
		return nil
	}

	users, err := a.api.ListUsers(ctx)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	for _, u := range users {
		fmt.Printf("#%d %s <%s> role=%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return nil
}

// RemoveUser deletes an account by id. Admin only. Deleting yourself is
// refused to keep at least the current admin session usable.
func (a *App) RemoveUser(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}
	if !policy.CanManageUsers(roleOf(claims)) {
		fmt.Println("Only admins can manage accounts.")
		return nil
	}

	id, err := getInt(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}
	if id == claims.UserID {
		fmt.Println("You cannot delete your own account.")
		return nil
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	fmt.Printf("User #%d deleted.\n", id)
	return nil
}

// Passwd changes a password: the caller's own, or, for admins, any
// account's.
func (a *App) Passwd(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}

	id := claims.UserID
	if policy.CanManageUsers(roleOf(claims)) {
		text, err := getSimpleText(a.reader, "Enter user id (empty for yourself)", os.Stdout)
		if err != nil {
			return err
		}
		if text != "" {
			parsed, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				fmt.Printf("Invalid input: %v\n", err)
				return err
			}
			id = parsed
		}
	}
	if !policy.CanEditUser(roleOf(claims), claims.UserID, models.User{ID: id}) {
		fmt.Println("You can only change your own password.")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	if len(password) < 6 {
		fmt.Println("Password must be at least 6 characters.")
		return nil
	}

	if err := a.api.ChangePassword(ctx, id, password); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	fmt.Println("Password changed.")
	return nil
}
