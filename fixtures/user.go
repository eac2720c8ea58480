package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumina-learn/lumina-e2e/apiclient"
	"github.com/lumina-learn/lumina-e2e/datagen"
	"github.com/lumina-learn/lumina-e2e/model"
)

// Users created through the fixtures are tracked process-wide so a run can
// report or sweep leftovers.
var gen = datagen.New()

// Generator exposes the shared test-data generator.
func Generator() *datagen.Generator {
	return gen
}

// NewUser generates a user and creates it in the backend. Setup failures are
// fatal; teardown deletes the user best-effort on every exit path.
func NewUser(t *testing.T, api *apiclient.Client) *model.TestUser {
	t.Helper()
	u := gen.GenerateUser()

	res := api.CreateUser(context.Background(), u)
	require.Truef(t, res.Success, "user creation failed (status %d): %s", res.Status, res.Error)
	require.NotEmpty(t, u.ID, "created user has no id")
	gen.TrackUserID(u.ID)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		api.CleanupUser(ctx, u)
	})
	return u
}

// AuthenticatedUser composes NewUser with a login round trip. The returned
// user carries a bearer token.
func AuthenticatedUser(t *testing.T, api *apiclient.Client) *model.TestUser {
	t.Helper()
	u := NewUser(t, api)
	res := api.AuthenticateUser(context.Background(), u)
	require.Truef(t, res.Success, "authentication failed (status %d): %s", res.Status, res.Error)
	require.NotEmpty(t, u.Token, "authenticated user has no token")
	return u
}
