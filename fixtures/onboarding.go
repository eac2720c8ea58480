package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumina-learn/lumina-e2e/apiclient"
	"github.com/lumina-learn/lumina-e2e/model"
	"github.com/lumina-learn/lumina-e2e/pages"
)

// OnboardedUser composes AuthenticatedUser with a browser-driven onboarding
// run: institution, degree, terms, submit, and the /my-journey
// postcondition. The browser's context ends up with a live session.
func OnboardedUser(t *testing.T, api *apiclient.Client, b *Browser) *model.TestUser {
	t.Helper()
	u := AuthenticatedUser(t, api)

	require.NoError(t, SeedSession(b.Context, u), "session seeding failed")

	wizard := pages.NewOnboarding(b.Page, b.Config.BaseURL)
	require.NoError(t, wizard.Goto(), "onboarding page unreachable")
	require.NoError(t,
		wizard.Complete(pages.DefaultInstitution, pages.DefaultDegree),
		"onboarding did not complete")
	return u
}
