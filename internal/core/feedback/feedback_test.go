package feedback

import (
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Bug ")
	require.NoError(t, err)
	assert.Equal(t, CategoryBug, c)

	_, err = ParseCategory("question")
	assert.Error(t, err)
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name       string
		draft      Draft
		wantFields []string
	}{
		{
			name:  "valid",
			draft: Draft{Title: "Dark mode", Description: "Please add a dark theme.", Category: CategoryFeature},
		},
		{
			name:       "everything missing",
			draft:      Draft{},
			wantFields: []string{"title", "description", "category"},
		},
		{
			name:       "title too short after trim",
			draft:      Draft{Title: "  ab  ", Description: "long enough text", Category: CategoryBug},
			wantFields: []string{"title"},
		},
		{
			name:       "description too long",
			draft:      Draft{Title: "Title", Description: strings.Repeat("x", DescriptionMax+1), Category: CategoryBug},
			wantFields: []string{"description"},
		},
		{
			name:       "unknown category",
			draft:      Draft{Title: "Title", Description: "long enough text", Category: "question"},
			wantFields: []string{"category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)

			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage(nil, Filter{}, 0)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.NotNil(t, p.Items)

	p = NewPage([]Feedback{{ID: "a"}}, Filter{Page: 3, PerPage: 5}, 11)
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, 11, p.Total)
}

func TestFilterOffset(t *testing.T) {
	assert.Equal(t, 0, Filter{}.Offset())
	assert.Equal(t, 20, Filter{Page: 3, PerPage: 10}.Offset())
}

func TestValidateFields(t *testing.T) {
	assert.NoError(t, ValidateTitle("  Dark mode  "))
	assert.EqualError(t, ValidateTitle(" "), "Title is required")
	assert.EqualError(t, ValidateTitle("ab"), "Title must be at least 3 characters")
	assert.EqualError(t, ValidateDescription("too short"), "Description must be at least 10 characters")
}
