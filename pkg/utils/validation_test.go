package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleRequest{Title: "a", Description: "b"}))

	err := ValidateStruct(sampleRequest{Description: "b"})
	require.Error(t, err)
	assert.Equal(t, "title is required", err.Error())

	err = ValidateStruct(sampleRequest{})
	require.Error(t, err)
	assert.Equal(t, "title is required; description is required", err.Error())
}
