package domain

import "errors"

// Domain errors for the Product entity
var (
	// ErrProductNotFound indicates that a product with the given ID is not in the collection.
	ErrProductNotFound = errors.New("product not found")

	// ErrEmptyProductName indicates an attempt to create/update a product with an empty name.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrProductNameTooLong indicates the product name exceeds maximum length.
	ErrProductNameTooLong = errors.New("product name exceeds maximum length of 255 characters")

	// ErrEmptyImageURL indicates an attempt to create/update a product without an image.
	ErrEmptyImageURL = errors.New("product image url cannot be empty")

	// ErrNegativeCount indicates a negative stock quantity.
	ErrNegativeCount = errors.New("product count cannot be negative")

	// ErrNegativeSize indicates a negative width or height.
	ErrNegativeSize = errors.New("product size cannot be negative")

	// ErrWeightTooLong indicates the weight label exceeds maximum length.
	ErrWeightTooLong = errors.New("product weight exceeds maximum length of 64 characters")
)

// Domain errors for the Comment entity
var (
	// ErrEmptyCommentDescription indicates a comment whose text is empty after trimming.
	ErrEmptyCommentDescription = errors.New("comment description cannot be empty")

	// ErrCommentProductMismatch indicates a comment attached to a product other than its owner.
	ErrCommentProductMismatch = errors.New("comment product id does not match owning product")

	// ErrDuplicateCommentID indicates two comments of one product share an identifier.
	ErrDuplicateCommentID = errors.New("comment id already exists on product")
)
