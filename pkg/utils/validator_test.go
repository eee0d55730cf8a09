package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnuddindev/secondbrain/pkg/utils"
)

type noteForm struct {
	Title   string `json:"title" validate:"required,notblank,max=200"`
	Content string `json:"content" validate:"required,notblank,max=10000"`
}

type bookmarkForm struct {
	URL string `json:"url" validate:"required,notblank,weburl"`
}

func TestValidateAcceptsGoodInput(t *testing.T) {
	v := utils.NewValidator()

	verr := v.Validate(noteForm{Title: "hello", Content: "world"})
	assert.Nil(t, verr)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := utils.NewValidator()

	verr := v.Validate(noteForm{Title: "", Content: "x"})
	require.NotNil(t, verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "title", verr.Errors[0].Field)
	assert.Equal(t, "title is required", verr.First())
}

func TestNotblankRejectsWhitespace(t *testing.T) {
	v := utils.NewValidator()

	verr := v.Validate(noteForm{Title: "   ", Content: "x"})
	require.NotNil(t, verr)
	assert.Equal(t, "title is required", verr.First())
}

func TestWeburlAcceptsSchemelessURLs(t *testing.T) {
	v := utils.NewValidator()

	for _, url := range []string{
		"https://example.com",
		"http://example.com/path",
		"example.com",
		"sub.example.co.uk/page",
		"go.dev/blog/slices-intro",
	} {
		verr := v.Validate(bookmarkForm{URL: url})
		assert.Nil(t, verr, "url %q", url)
	}
}

func TestWeburlRejectsNonURLs(t *testing.T) {
	v := utils.NewValidator()

	for _, url := range []string{
		"not a url",
		"ftp://example.com",
		"http://",
	} {
		verr := v.Validate(bookmarkForm{URL: url})
		require.NotNil(t, verr, "url %q", url)
		assert.Equal(t, "Invalid URL format", verr.First())
	}
}

func TestFirstOnNilResponse(t *testing.T) {
	var verr *utils.ErrorResponse
	assert.Equal(t, "", verr.First())
}
