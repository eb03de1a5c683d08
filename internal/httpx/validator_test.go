package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Status string `json:"status" validate:"required,oneof=read reading wishlist"`
	Title  string `json:"title" validate:"max=5"`
	Link   string `json:"thumbnail_url" validate:"omitempty,url"`
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleRequest{Status: "read", Title: "ok", Link: "http://x.test/a.jpg"}))
}

func TestValidateStruct_Errors(t *testing.T) {
	details := ValidateStruct(sampleRequest{Status: "finished", Title: "too long", Link: "nope"})
	require.Len(t, details, 3)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "status must be one of: read reading wishlist", byField["status"])
	assert.Equal(t, "title must be at most 5 characters", byField["title"])
	assert.Equal(t, "thumbnail_url must be a valid URL", byField["thumbnail_url"])
}

func TestValidateStruct_Required(t *testing.T) {
	details := ValidateStruct(sampleRequest{})
	require.Len(t, details, 1)
	assert.Equal(t, "status", details[0].Field)
	assert.Equal(t, "status is required", details[0].Message)
}
