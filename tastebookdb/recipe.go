// Copyright (c) Tastebook (dev@tastebook.app)
// SPDX-License-Identifier: BUSL-1.1

package tastebookdb

import "time"

// Difficulty is the difficulty level of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Ingredient represents an ingredient in a recipe.
type Ingredient struct {
	// Name is the name of the ingredient.
	Name string `firestore:"name" json:"name"`

	// Quantity is the quantity of the ingredient as free-form text.
	Quantity string `firestore:"quantity" json:"quantity"`
}

// Comment is a comment on a recipe. Comments are embedded in the recipe
// document and only ever appended, in insertion order.
type Comment struct {
	// ID is the unique identifier of the comment within its recipe.
	ID string `firestore:"commentId" json:"commentId"`

	// AuthorID is the ID of the user who posted the comment.
	AuthorID string `firestore:"authorId" json:"authorId"`

	// AuthorName is the display name of the author at post time. It is not
	// resynced if the author later renames their profile.
	AuthorName string `firestore:"authorUsername" json:"authorUsername"`

	// Text is the comment body.
	Text string `firestore:"text" json:"text"`

	// CreatedAt is the time the comment was posted.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Recipe represents a recipe stored in the document store.
type Recipe struct {
	// ID is the unique identifier of the recipe, assigned at creation.
	ID string `firestore:"id" json:"id"`

	// Title is the title of the recipe.
	Title string `firestore:"title" json:"title"`

	// Ingredients are the ingredients of the recipe, in order.
	Ingredients []Ingredient `firestore:"ingredients" json:"ingredients"`

	// Instructions are the preparation instructions as free-form text.
	Instructions string `firestore:"instructions" json:"instructions"`

	// PhotoURLs are URLs of photos of the finished dish. In practice there
	// is zero or one.
	PhotoURLs []string `firestore:"photoUrls" json:"photoUrls"`

	// CuisineType is the cuisine of the recipe, e.g. "Thai". Optional.
	CuisineType string `firestore:"cuisineType" json:"cuisineType"`

	// Difficulty is the difficulty level of the recipe.
	Difficulty Difficulty `firestore:"difficultyLevel" json:"difficultyLevel"`

	// DietaryTags are dietary tags such as "vegan" or "gluten-free".
	DietaryTags []string `firestore:"dietaryTags" json:"dietaryTags"`

	// AuthorID is the ID of the user who created the recipe. Immutable.
	AuthorID string `firestore:"authorId" json:"authorId"`

	// AuthorName is the display name of the author, denormalized at creation
	// time. It is not resynced if the author later renames their profile.
	AuthorName string `firestore:"authorUsername" json:"authorUsername"`

	// LikesCount is the number of users currently liking the recipe. It is
	// maintained incrementally and always equals len(LikedBy).
	LikesCount int `firestore:"likesCount" json:"likesCount"`

	// SavesCount is the number of users whose saved set contains the recipe.
	// Maintained incrementally alongside UserProfile.SavedRecipeIDs.
	SavesCount int `firestore:"savesCount" json:"savesCount"`

	// LikedBy are the IDs of users currently liking the recipe.
	LikedBy []string `firestore:"likedBy" json:"likedBy"`

	// Comments are the comments on the recipe, in append order.
	Comments []Comment `firestore:"comments" json:"comments"`

	// CreatedAt is the time the recipe was created.
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`

	// UpdatedAt is the time the recipe was last updated.
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
