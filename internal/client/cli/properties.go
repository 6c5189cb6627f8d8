package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/propkeeper/internal/client/models"
	"github.com/dmitrijs2005/propkeeper/internal/client/policy"
)

var getInt = GetInt
var getFloat = GetFloat

// List fetches the listings and prints the subset the caller's role may
// see. Admins additionally get a count of listings still pending review.
func (a *App) List(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}

	records, err := a.api.ListProperties(ctx)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	visible := policy.VisibleProperties(roleOf(claims), claims.UserID, records)
	if len(visible) == 0 {
		fmt.Println("No listings to show.")
		return nil
	}

	for _, p := range visible {
		printProperty(p)
	}

	if policy.CanVerify(roleOf(claims)) {
		pending := 0
		for _, p := range records {
			if !p.Verified {
				pending++
			}
		}
		if pending > 0 {
			fmt.Printf("%d listing(s) pending verification.\n", pending)
		}
	}
	return nil
}

// Show prints a single listing by id.
func (a *App) Show(ctx context.Context) error {
	if _, ok := a.currentClaims(ctx); !ok {
		return nil
	}

	id, err := getInt(a.reader, "Enter listing id", os.Stdout)
	if err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}

	property, err := a.api.GetProperty(ctx, id)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printPropertyDetails(property)
	return nil
}

// Add creates a new listing. Buyers are refused before any request is made.
func (a *App) Add(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}
	if !policy.CanCreate(roleOf(claims)) {
		fmt.Println("Only sellers and admins can create listings.")
		return nil
	}

	draft, err := a.promptDraft(models.PropertyDraft{})
	if err != nil {
		return err
	}
	if err := a.validate.Struct(draft); err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}

	property, err := a.api.CreateProperty(ctx, draft)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	fmt.Printf("Listing #%d created. It will appear publicly after verification.\n", property.ID)
	return nil
}

// Edit updates a listing the caller owns (or any listing, for admins).
// The record is fetched first so ownership can be checked locally and the
// current values can serve as prompts.
func (a *App) Edit(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}

	id, err := getInt(a.reader, "Enter listing id", os.Stdout)
	if err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}

	property, err := a.api.GetProperty(ctx, id)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	if !policy.CanEdit(roleOf(claims), claims.UserID, property) {
		fmt.Println("You can only edit your own listings.")
		return nil
	}

	draft, err := a.promptDraft(models.PropertyDraft{
		Title:        property.Title,
		Description:  property.Description,
		Price:        property.Price,
		Location:     property.Location,
		PropertyType: property.PropertyType,
		Bedrooms:     property.Bedrooms,
		Bathrooms:    property.Bathrooms,
		Area:         property.Area,
	})
	if err != nil {
		return err
	}
	if err := a.validate.Struct(draft); err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}

	updated, err := a.api.UpdateProperty(ctx, id, draft)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	fmt.Printf("Listing #%d updated.\n", updated.ID)
	return nil
}

// Verify marks a listing as verified. Admin only.
func (a *App) Verify(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}
	if !policy.CanVerify(roleOf(claims)) {
		fmt.Println("Only admins can verify listings.")
		return nil
	}

	id, err := getInt(a.reader, "Enter listing id", os.Stdout)
	if err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}

	property, err := a.api.VerifyProperty(ctx, id)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	fmt.Printf("Listing #%d verified.\n", property.ID)
	return nil
}

// Delete removes a listing, after checking the ownership rule locally.
func (a *App) Delete(ctx context.Context) error {
	claims, ok := a.currentClaims(ctx)
	if !ok {
		return nil
	}

	id, err := getInt(a.reader, "Enter listing id", os.Stdout)
	if err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		return err
	}

	property, err := a.api.GetProperty(ctx, id)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	if !policy.CanDelete(roleOf(claims), claims.UserID, property) {
		fmt.Println("You can only delete your own listings.")
		return nil
	}

	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", property.Title), os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "Y" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.api.DeleteProperty(ctx, id); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	fmt.Printf("Listing #%d deleted.\n", id)
	return nil
}

// promptDraft collects listing fields interactively. Existing values are
// shown in the prompts so editing feels like a pre-filled form.
func (a *App) promptDraft(current models.PropertyDraft) (models.PropertyDraft, error) {
	var draft models.PropertyDraft
	var err error

	if draft.Title, err = getSimpleText(a.reader, withDefault("Title", current.Title), os.Stdout); err != nil {
		return draft, err
	}
	if draft.Title == "" {
		draft.Title = current.Title
	}
	if draft.Description, err = getSimpleText(a.reader, withDefault("Description", current.Description), os.Stdout); err != nil {
		return draft, err
	}
	if draft.Description == "" {
		draft.Description = current.Description
	}
	if draft.Price, err = getFloat(a.reader, "Price", os.Stdout); err != nil {
		return draft, err
	}
	if draft.Location, err = getSimpleText(a.reader, withDefault("Location", current.Location), os.Stdout); err != nil {
		return draft, err
	}
	if draft.Location == "" {
		draft.Location = current.Location
	}
	if draft.PropertyType, err = getSimpleText(a.reader, withDefault("Type (house/apartment/land)", current.PropertyType), os.Stdout); err != nil {
		return draft, err
	}
	if draft.PropertyType == "" {
		draft.PropertyType = current.PropertyType
	}
	if bedrooms, err := getInt(a.reader, "Bedrooms", os.Stdout); err == nil {
		draft.Bedrooms = int(bedrooms)
	} else {
		return draft, err
	}
	if bathrooms, err := getInt(a.reader, "Bathrooms", os.Stdout); err == nil {
		draft.Bathrooms = int(bathrooms)
	} else {
		return draft, err
	}
	if area, err := getInt(a.reader, "Area (sq m)", os.Stdout); err == nil {
		draft.Area = int(area)
	} else {
		return draft, err
	}

	return draft, nil
}

func withDefault(prompt, current string) string {
	if current == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, current)
}

func printProperty(p models.Property) {
	status := ""
	if !p.Verified {
		status = " (unverified)"
	}
	fmt.Printf("#%d %s | %s | %.2f%s\n", p.ID, p.Title, p.Location, p.Price, status)
}

func printPropertyDetails(p models.Property) {
	printProperty(p)
	if p.Description != "" {
		fmt.Printf("  %s\n", p.Description)
	}
	fmt.Printf("  type=%s bedrooms=%d bathrooms=%d area=%d seller=#%d\n",
		p.PropertyType, p.Bedrooms, p.Bathrooms, p.Area, p.SellerID)
}
