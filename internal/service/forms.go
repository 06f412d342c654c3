package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"bidboard/internal/models"

	"github.com/go-playground/validator/v10"
)

// JobForm holds the fields of the job creation and update forms as the user
// entered them.
type JobForm struct {
	Title       string          `form:"job_title" validate:"required"`
	Email       string          `form:"email" validate:"required,email"`
	Deadline    time.Time       `form:"deadline" validate:"required"`
	Category    models.Category `form:"category" validate:"required,category"`
	MinPrice    string          `form:"min_price" validate:"required,numeric"`
	MaxPrice    string          `form:"max_price" validate:"required,numeric"`
	Description string          `form:"description" validate:"required"`
}

// BidForm holds the fields of the bid placement form.
type BidForm struct {
	Price    string    `form:"price"`
	Email    string    `form:"emailAddress" validate:"required,email"`
	Comment  string    `form:"comment" validate:"required"`
	Deadline time.Time `form:"deadline" validate:"required"`
}

// FormError lists the form fields that are missing or malformed.
type FormError struct {
	Fields []string
}

func (e *FormError) Error() string {
	return "please fill in: " + strings.Join(e.Fields, ", ")
}

func (e *FormError) Unwrap() error {
	return models.ErrInvalidForm
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("form")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(models.Category(fl.Field().String()))
	})
	if err != nil {
		panic(fmt.Sprintf("service.newValidator: %s", err))
	}

	return v
}

func (s *Service) checkForm(form any) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := &FormError{}
	for _, e := range verrs {
		fe.Fields = append(fe.Fields, e.Field())
	}
	return fe
}

func (f JobForm) prices() (models.Price, models.Price, error) {
	lo, err := models.ParsePrice(f.MinPrice)
	if err != nil {
		return 0, 0, &FormError{Fields: []string{"min_price"}}
	}
	hi, err := models.ParsePrice(f.MaxPrice)
	if err != nil {
		return 0, 0, &FormError{Fields: []string{"max_price"}}
	}
	if lo > hi {
		return 0, 0, &FormError{Fields: []string{"min_price", "max_price"}}
	}
	return lo, hi, nil
}
