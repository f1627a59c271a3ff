// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package tastebookdb

import "time"

// UserProfile represents a user profile stored in the document store, keyed
// by the authenticated user's ID.
type UserProfile struct {
	// UserID is the ID of the user the profile belongs to.
	UserID string `firestore:"uid" json:"uid"`

	// Email is the email address of the user.
	Email string `firestore:"email" json:"email"`

	// DisplayName is the display name shown on recipes and comments.
	DisplayName string `firestore:"username" json:"username"`

	// AvatarURL is the URL of the user's avatar image.
	AvatarURL string `firestore:"profilePictureUrl" json:"profilePictureUrl"`

	// DietaryTags are the user's dietary restrictions.
	DietaryTags []string `firestore:"dietaryRestrictions" json:"dietaryRestrictions"`

	// FavoriteCuisines are the user's favorite cuisines.
	FavoriteCuisines []string `firestore:"favoriteCuisines" json:"favoriteCuisines"`

	// SavedRecipeIDs are the IDs of recipes the user has saved. Kept
	// consistent with Recipe.SavesCount by the save toggle protocol.
	SavedRecipeIDs []string `firestore:"savedRecipeIds" json:"savedRecipeIds"`

	// CreatedAt is the time the profile was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
