package authz

import (
	"net/http"
	"testing"

	"github.com/stockroom-dev/stockroom-api/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requestor int64
		owner     int64
		want      Decision
	}{
		{"owner", 5, 5, Allow},
		{"different account", 6, 5, Deny},
		{"zero requestor", 0, 0, Deny},
		{"negative owner", 5, -5, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Authorize(tt.requestor, tt.owner))
		})
	}

	var unset Decision
	assert.Equal(t, Deny, unset)
	assert.Equal(t, "allow", Allow.String())
}

func TestRequireOwner(t *testing.T) {
	t.Parallel()

	assert.NoError(t, RequireOwner(3, 3, "Failed to update product"))

	err := RequireOwner(4, 3, "Failed to update product")
	require.Error(t, err)
	assert.True(t, apperr.IsCategory(err, apperr.CategoryOwnershipDenied))

	cl := apperr.NewClassifier(false, nil).Classify(err)
	assert.Equal(t, http.StatusConflict, cl.Status)
	assert.Equal(t, "Failed to update product", cl.Message)
}
