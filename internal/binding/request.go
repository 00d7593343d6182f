// Package binding applies style and variable bindings to document nodes, and
// defines the requests and precondition errors shared by every binder.
package binding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/tether/internal/scan"
)

// validate is a singleton validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ConnectRequest binds an element to an existing style or variable.
type ConnectRequest struct {
	NodeID     string    `json:"nodeId" validate:"required"`
	StyleID    string    `json:"styleId" validate:"required"`
	Kind       scan.Kind `json:"elementType" validate:"required,oneof=fill stroke typography"`
	PaintIndex *int      `json:"paintIndex,omitempty" validate:"omitempty,min=0"`
}

// CreateStyleRequest creates a style from an element's value and binds the
// element to it.
type CreateStyleRequest struct {
	NodeID     string    `json:"nodeId" validate:"required"`
	Kind       scan.Kind `json:"elementType" validate:"required,oneof=fill stroke typography"`
	StyleName  string    `json:"styleName" validate:"notblank"`
	PaintIndex *int      `json:"paintIndex,omitempty" validate:"omitempty,min=0"`
}

// Created describes a style made by CreateStyle.
type Created struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Kind scan.Kind `json:"kind"`
}

// Binder mutates a document on behalf of a user.
type Binder interface {
	// Connect binds the element to an existing style or variable.
	Connect(ctx context.Context, req ConnectRequest) error

	// CreateStyle creates a style from the element's value and applies it.
	CreateStyle(ctx context.Context, req CreateStyleRequest) (*Created, error)
}

// Validate checks a ConnectRequest.
func (r *ConnectRequest) Validate() error {
	if r == nil {
		return errors.New("connect request cannot be nil")
	}
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Validate checks a CreateStyleRequest. A blank name yields ErrEmptyStyleName.
func (r *CreateStyleRequest) Validate() error {
	if r == nil {
		return errors.New("create style request cannot be nil")
	}
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Index returns the requested paint index, defaulting to 0.
func (r *ConnectRequest) Index() int { return indexOrZero(r.PaintIndex) }

// Index returns the requested paint index, defaulting to 0.
func (r *CreateStyleRequest) Index() int { return indexOrZero(r.PaintIndex) }

func indexOrZero(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// formatValidationError converts validator errors to a user-facing error.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "notblank":
			return ErrEmptyStyleName
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, e.Param())
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
