package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every lookup miss, whether by id or by filter.
var ErrNotFound = errors.New("not found")

// NotFoundError names the missing resource. List is set for list queries
// that matched nothing; ID is meaningful only otherwise.
type NotFoundError struct {
	Resource string
	ID       uint
	List     bool
}

func NewNotFound(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewListNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource, List: true}
}

func (e *NotFoundError) Error() string {
	if e.List {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
