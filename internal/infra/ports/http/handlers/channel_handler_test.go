package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelList_Anonymous(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/channels", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, data := env.renderer.last()
	for _, key := range []string{"admin_channels", "private_channels"} {
		assert.NotContains(t, data, key)
	}

	assert.NotContains(t, rec.Body.String(), "Private")
	assert.Contains(t, rec.Body.String(), "#Test")
}

func TestChannelList_Authenticated(t *testing.T) {
	env := newTestEnv(t)

	cookies := env.login(t, "dupont éîïè", "secret")

	rec := env.get("/channels", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	_, data := env.renderer.last()
	for _, key := range []string{"admin_channels", "private_channels"} {
		assert.Contains(t, data, key)
	}

	assert.Contains(t, rec.Body.String(), "Private")
	assert.Contains(t, rec.Body.String(), "#test-internal")
}

func TestChannelList_MemberWithoutPrivateChannels(t *testing.T) {
	env := newTestEnv(t)

	// The outsider has no memberships: the keys exist but nothing private
	// is rendered.
	cookies := env.login(t, "Marie Thérèse", "secret")

	rec := env.get("/channels", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	_, data := env.renderer.last()
	for _, key := range []string{"admin_channels", "private_channels"} {
		assert.Contains(t, data, key)
	}

	assert.NotContains(t, rec.Body.String(), "#test-internal")
}
