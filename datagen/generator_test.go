package datagen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePasswordComposition(t *testing.T) {
	for i := 0; i < 200; i++ {
		pw := GeneratePassword(12)
		require.Len(t, pw, 12)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "password %q missing lowercase", pw)
		assert.True(t, strings.ContainsAny(pw, upperChars), "password %q missing uppercase", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "password %q missing digit", pw)
		assert.True(t, strings.ContainsAny(pw, specialChars), "password %q missing special char", pw)
	}
}

func TestGeneratePasswordIsShuffled(t *testing.T) {
	// If the guaranteed characters kept their assembly order, every password
	// would start with a lowercase letter and follow with an uppercase one.
	// Over enough samples at least one must deviate.
	fixedOrder := true
	for i := 0; i < 100; i++ {
		pw := GeneratePassword(12)
		if !strings.ContainsRune(lowerChars, rune(pw[0])) || !strings.ContainsRune(upperChars, rune(pw[1])) {
			fixedOrder = false
			break
		}
	}
	assert.False(t, fixedOrder, "passwords appear to keep a fixed assembly order")
}

func TestGeneratePasswordMinimumLength(t *testing.T) {
	assert.Len(t, GeneratePassword(3), 8, "short requests are raised to the minimum")
}

func TestGenerateUser(t *testing.T) {
	g := New()
	u1 := g.GenerateUser()
	u2 := g.GenerateUser()

	require.NotNil(t, u1)
	assert.NotEqual(t, u1.Email, u2.Email, "emails must be unique per user")
	assert.Contains(t, u1.Email, "@lumina-test.dev")
	assert.NotEmpty(t, u1.FirstName)
	assert.NotEmpty(t, u1.LastName)
	assert.Empty(t, u1.ID, "id is only assigned by the backend")
	assert.Empty(t, u1.Token, "token is only assigned after authentication")
}

func TestGenerateCourseAndQuestion(t *testing.T) {
	g := New()
	c := g.GenerateCourse()
	assert.NotEmpty(t, c.ID)
	assert.NotEmpty(t, c.Name)
	assert.Contains(t, []string{"en", "he", "es"}, c.Language)
	assert.GreaterOrEqual(t, c.Credits, 2)

	q := g.GenerateQuestion()
	assert.Len(t, q.Answers, 4)
	assert.GreaterOrEqual(t, q.Correct, 0)
	assert.Less(t, q.Correct, len(q.Answers))

	assert.Len(t, g.TrackedDataIDs(), 2, "generated course and question ids are tracked")
}

func TestGenerateLearningProgressConsistency(t *testing.T) {
	g := New()
	for i := 0; i < 50; i++ {
		p := g.GenerateLearningProgress("user-1")
		assert.Equal(t, "user-1", p.UserID)
		assert.LessOrEqual(t, p.CorrectAnswers, p.QuestionsAnswered)
		assert.InDelta(t, float64(p.CorrectAnswers)/float64(p.QuestionsAnswered), p.CompletionRate, 1e-9)
	}
}

func TestTrackingLifecycle(t *testing.T) {
	g := New()
	g.TrackUserID("u1")
	g.TrackUserID("u2")
	g.TrackDataID("d1")

	assert.Equal(t, []string{"u1", "u2"}, g.TrackedUserIDs())
	assert.Equal(t, []string{"d1"}, g.TrackedDataIDs())

	g.ClearTrackedData()
	assert.Empty(t, g.TrackedUserIDs())
	assert.Empty(t, g.TrackedDataIDs())
}
