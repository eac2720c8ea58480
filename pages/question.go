package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Question wraps the question-answering view, including the feedback votes
// shown after an answer is submitted.
type Question struct {
	page playwright.Page
}

func NewQuestion(page playwright.Page) *Question {
	return &Question{page: page}
}

func (q *Question) WaitLoaded() error {
	return waitVisible(q.page, "[data-testid='question-text']")
}

func (q *Question) Text() (string, error) {
	return q.page.Locator("[data-testid='question-text']").TextContent()
}

// SelectAnswer picks the nth answer option.
func (q *Question) SelectAnswer(n int) error {
	opt := q.page.Locator("[data-testid='answer-option']").Nth(n)
	if err := opt.Click(); err != nil {
		return enrich(q.page, "[data-testid='answer-option']", err)
	}
	return nil
}

func (q *Question) Submit() error {
	if err := click(q.page, "[data-testid='submit-answer']"); err != nil {
		return fmt.Errorf("failed to submit answer: %w", err)
	}
	return waitVisible(q.page, "[data-testid='answer-result']")
}

// WasCorrect reports whether the submitted answer was accepted as correct.
func (q *Question) WasCorrect() bool {
	visible, _ := q.page.Locator("[data-testid='answer-result'][data-correct='true']").IsVisible()
	return visible
}

// VoteUp upvotes the question's feedback widget.
func (q *Question) VoteUp() error {
	return click(q.page, "[data-testid='feedback-upvote']")
}

// VoteDown downvotes the question's feedback widget.
func (q *Question) VoteDown() error {
	return click(q.page, "[data-testid='feedback-downvote']")
}

// VoteCount reads the rendered vote counter.
func (q *Question) VoteCount() (string, error) {
	return q.page.Locator("[data-testid='feedback-votes']").TextContent()
}

// Next advances to the following question.
func (q *Question) Next() error {
	if err := click(q.page, "[data-testid='next-question']"); err != nil {
		return fmt.Errorf("failed to advance: %w", err)
	}
	return q.WaitLoaded()
}
