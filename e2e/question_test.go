//go:build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-learn/lumina-e2e/apiclient"
	"github.com/lumina-learn/lumina-e2e/fixtures"
	"github.com/lumina-learn/lumina-e2e/pages"
)

func TestAnswerQuestionAndVote(t *testing.T) {
	browser := fixtures.NewBrowser(t)
	fixtures.OnboardedUser(t, api, browser)

	journey := pages.NewJourney(browser.Page, cfg.BaseURL)
	require.NoError(t, journey.Goto())
	require.NoError(t, journey.WaitLoaded())
	names, err := journey.CourseNames()
	require.NoError(t, err)
	if len(names) == 0 {
		t.Skip("no courses available")
	}
	require.NoError(t, journey.OpenCourse(names[0]))

	course := pages.NewCourse(browser.Page)
	require.NoError(t, course.WaitLoaded())
	if !course.IsEnrolled() {
		require.NoError(t, course.Enroll())
	}
	require.NoError(t, course.StartLearning())

	question := pages.NewQuestion(browser.Page)
	require.NoError(t, question.WaitLoaded())

	text, err := question.Text()
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	require.NoError(t, question.SelectAnswer(0))
	require.NoError(t, question.Submit())
	t.Logf("answer accepted as correct: %v", question.WasCorrect())

	t.Run("feedback voting", func(t *testing.T) {
		require.NoError(t, question.VoteUp())
		votes, err := question.VoteCount()
		require.NoError(t, err)
		assert.NotEmpty(t, votes)
	})
}

func TestFeedbackSubmissionAPI(t *testing.T) {
	u := fixtures.AuthenticatedUser(t, api)
	q := fixtures.Generator().GenerateQuestion()

	res := api.SubmitFeedback(context.Background(), u.Token, apiclient.FeedbackInput{
		QuestionID: q.ID,
		Vote:       "up",
		Comment:    "clear and well phrased",
	})
	require.True(t, res.Success, "feedback submission failed: %s", res.Error)
	assert.NotEmpty(t, res.Data.ID)
}
