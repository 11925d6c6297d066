package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(accept string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		ctx.Request.Header.Set("Accept", accept)
	}
	return ctx, w
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{accept: "", want: false},
		{accept: "text/html", want: false},
		{accept: "application/json", want: true},
		{accept: "text/html,application/json;q=0.5", want: false},
	}
	for _, tt := range tests {
		ctx, _ := testContext(tt.accept)
		assert.Equal(t, tt.want, WantsJSON(ctx), "accept=%q", tt.accept)
	}
}

func TestErrorEnvelope(t *testing.T) {
	ctx, w := testContext("application/json")
	Error(ctx, http.StatusNotFound, CodeNotFound, "not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, CodeNotFound, env.Code)
	assert.Equal(t, "not found", env.Message)
	assert.Nil(t, env.Data)
}
