package main

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	// Repeated calls are expected from every router setup.
	require.NotPanics(t, registerValidators)
	require.NotPanics(t, registerValidators)

	type form struct {
		Color    string `binding:"rgbcolor"`
		Currency string `binding:"currency"`
	}
	cases := map[string]struct {
		in form
		ok bool
	}{
		"valid":          {form{"#1A2b3C", "EUR"}, true},
		"named color":    {form{"red", "EUR"}, false},
		"short hex":      {form{"#fff", "EUR"}, false},
		"lower currency": {form{"#000000", "eur"}, false},
		"long currency":  {form{"#000000", "ABCDEFGHIJK"}, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.in)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
