package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,simple_email"`
	Password string `validate:"required,min=6"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(&signup{Name: "Ann", Email: "ann@x.com", Password: "secret1"}))

	err := ValidateStruct(&signup{Name: "", Email: "ann@x.com", Password: "secret1"})
	require.NotNil(t, err)
	assert.True(t, err.HasTag("required"))
	assert.Equal(t, "Name", err.Errors()[0].Field)

	err = ValidateStruct(&signup{Name: "Ann", Email: "ann@x.com", Password: "short"})
	require.NotNil(t, err)
	assert.True(t, err.HasTag("min"))
	assert.Equal(t, "6", err.Errors()[0].Param)

	err = ValidateStruct(&signup{Name: "Ann", Email: "not-an-email", Password: "secret1"})
	require.NotNil(t, err)
	assert.True(t, err.HasTag("simple_email"))
	assert.Contains(t, err.Error(), "Email")
}

func TestIsSimpleEmail(t *testing.T) {
	cases := map[string]bool{
		"ann@x.com":        true,
		"a.b+c@host.co.uk": true,
		"ann@x":            false,
		"ann x@y.com":      false,
		"@x.com":           false,
		"ann@@x.com":       false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsSimpleEmail(in), in)
	}
}
