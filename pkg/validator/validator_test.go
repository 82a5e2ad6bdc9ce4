package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	CustomerRef string `json:"customerRef" validate:"required"`
	BarberID    int64  `json:"barberId" validate:"required"`
	Duration    *int   `json:"durationMinutes" validate:"omitempty,gt=0"`
	OpenTime    string `json:"openTime" validate:"omitempty,hhmm"`
}

func TestValidate_MissingFields(t *testing.T) {
	errs := Validate(sample{})

	assert.Equal(t, []string{"barberId", "customerRef"}, errs.Missing())
	assert.Empty(t, errs.Invalid())
}

func TestValidate_InvalidValues(t *testing.T) {
	zero := 0
	errs := Validate(sample{CustomerRef: "c1", BarberID: 1, Duration: &zero, OpenTime: "9am"})

	assert.Empty(t, errs.Missing())
	invalid := errs.Invalid()
	assert.Len(t, invalid, 2)
	assert.Contains(t, errs.Error(), "durationMinutes")
	assert.Contains(t, errs.Error(), "openTime")
}

func TestValidate_OK(t *testing.T) {
	assert.Nil(t, Validate(sample{CustomerRef: "c1", BarberID: 1, OpenTime: "09:00"}))
}
