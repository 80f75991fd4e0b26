package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Anonymous(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	name, data := env.renderer.last()
	assert.Equal(t, "anon_dashboard.html", name)

	for _, key := range []string{"admin_channels", "private_channels"} {
		assert.NotContains(t, data, key)
	}

	assert.Contains(t, rec.Body.String(), "#Test")
}

func TestDashboard_Authenticated(t *testing.T) {
	env := newTestEnv(t)

	cookies := env.login(t, "dupont éîïè", "secret")

	rec := env.get("/", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	name, data := env.renderer.last()
	assert.Equal(t, "user_dashboard.html", name)

	for _, key := range []string{"admin_channels", "private_channels"} {
		assert.Contains(t, data, key)
	}
}
