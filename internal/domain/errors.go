package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrCartonNotFound = errors.New("carton not found")
	ErrCartonEmpty    = errors.New("carton is empty")
)

// CartonCreationFailedError прерывает всю партию, если хотя бы для одного
// вкуса нет рецепта. Исходная причина доступна через errors.Is/As.
type CartonCreationFailedError struct {
	Flavor string
	Err    error
}

func (e *CartonCreationFailedError) Error() string {
	return fmt.Sprintf("could not find recipe for %s: %v", e.Flavor, e.Err)
}

func (e *CartonCreationFailedError) Unwrap() error {
	return e.Err
}
