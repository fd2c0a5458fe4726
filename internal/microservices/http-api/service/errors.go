package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("you do not have permission to perform this action")
	ErrDuplicateRating  = errors.New("you have already rated this book")
	ErrDuplicateISBN    = errors.New("a book with this isbn already exists")
	ErrInvalidReference = errors.New("referenced book does not exist")
)

// notFound maps a gorm miss onto ErrNotFound and wraps anything else.
func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// requireOwner is the owner-or-read-only check applied to every write.
func requireOwner(ownerID, actorID string) error {
	if actorID == "" || ownerID != actorID {
		return ErrForbidden
	}
	return nil
}
