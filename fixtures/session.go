package fixtures

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/playwright-community/playwright-go"

	"github.com/lumina-learn/lumina-e2e/model"
)

// Keys of the browser-side storage contract the app reads on boot.
const (
	persistRootKey        = "persist:lumina-root"
	hasVisitedKey         = "lumina-has-visited"
	languageSeenKey       = "lumina-language-selection-seen"
	degreePopupDismissKey = "lumina-degree-popup-dismissed"
)

// SeedSession installs the user's auth state into the context's localStorage
// before any page script runs, so a navigation to a protected route starts
// out authenticated. The first-visit flags are set too, keeping the welcome
// and language popups out of the way.
func SeedSession(ctx playwright.BrowserContext, u *model.TestUser) error {
	if u.Token == "" {
		return fmt.Errorf("cannot seed session: user has no token")
	}
	root, err := persistRootValue(u, "en")
	if err != nil {
		return err
	}
	script := fmt.Sprintf(`(() => {
  localStorage.setItem(%q, %s);
  localStorage.setItem(%q, "true");
  localStorage.setItem(%q, "true");
  localStorage.setItem(%q, "true");
})();`,
		persistRootKey, strconv.Quote(root),
		hasVisitedKey, languageSeenKey, degreePopupDismissKey)
	return ctx.AddInitScript(playwright.Script{Content: playwright.String(script)})
}

// persistRootValue builds the redux-persist root: each sub-state is itself a
// JSON-encoded string.
func persistRootValue(u *model.TestUser, language string) (string, error) {
	authState, err := json.Marshal(map[string]any{
		"isAuthenticated": true,
		"token":           u.Token,
		"expiresAt":       tokenExpiryMillis(u.Token),
		"user": map[string]any{
			"id":        u.ID,
			"email":     u.Email,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
		},
	})
	if err != nil {
		return "", err
	}
	settingsState, err := json.Marshal(map[string]any{
		"language": language,
		"theme":    "light",
	})
	if err != nil {
		return "", err
	}
	root, err := json.Marshal(map[string]string{
		"auth":         string(authState),
		"userSettings": string(settingsState),
		"_persist":     `{"version":1,"rehydrated":true}`,
	})
	if err != nil {
		return "", err
	}
	return string(root), nil
}

// tokenExpiryMillis reads the exp claim without verifying the signature; the
// suite only needs a plausible persisted expiry, not trust in the token.
// Unparseable tokens fall back to 24h from now.
func tokenExpiryMillis(token string) int64 {
	fallback := time.Now().Add(24 * time.Hour).UnixMilli()
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time.UnixMilli()
}
