// Package datagen produces randomized but well-formed fixture data so each
// test can own isolated backend state.
package datagen

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/lumina-learn/lumina-e2e/model"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+"
)

var firstNames = []string{
	"Noa", "Daniel", "Maya", "Yuval", "Sofia", "David", "Tamar", "Omer",
	"Lucia", "Gabriel", "Shira", "Adam",
}

var lastNames = []string{
	"Levi", "Cohen", "Mizrahi", "Garcia", "Peretz", "Martinez", "Friedman",
	"Biton", "Lopez", "Katz",
}

var courseTopics = []string{
	"Microeconomics", "Statistics", "Linear Algebra", "Psychology",
	"Computer Science", "Accounting", "Sociology",
}

// Generator creates test entities and tracks the ids it has seen so a run
// can bulk-clean leftovers.
type Generator struct {
	mu      sync.Mutex
	userIDs []string
	dataIDs []string
}

// New returns an empty Generator.
func New() *Generator {
	return &Generator{}
}

// GenerateUser returns a user with a unique email and a policy-compliant
// random password.
func (g *Generator) GenerateUser() *model.TestUser {
	suffix := uuid.NewString()[:8]
	first := firstNames[rand.IntN(len(firstNames))]
	last := lastNames[rand.IntN(len(lastNames))]
	return &model.TestUser{
		Email:     fmt.Sprintf("e2e.%s.%d@lumina-test.dev", suffix, rand.IntN(1000)),
		Password:  GeneratePassword(12),
		FirstName: first,
		LastName:  last,
	}
}

// GeneratePassword builds a password of at least length n containing at
// least one lowercase, one uppercase, one digit and one special character.
// The guaranteed characters are assembled first and the whole password is
// shuffled so their positions carry no bias.
func GeneratePassword(n int) string {
	if n < 8 {
		n = 8
	}
	all := lowerChars + upperChars + digitChars + specialChars
	chars := []byte{
		lowerChars[rand.IntN(len(lowerChars))],
		upperChars[rand.IntN(len(upperChars))],
		digitChars[rand.IntN(len(digitChars))],
		specialChars[rand.IntN(len(specialChars))],
	}
	for len(chars) < n {
		chars = append(chars, all[rand.IntN(len(all))])
	}
	rand.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	return string(chars)
}

// GenerateCourse returns a schema-valid synthetic course.
func (g *Generator) GenerateCourse() *model.Course {
	id := uuid.NewString()
	g.TrackDataID(id)
	return &model.Course{
		ID:          id,
		Name:        fmt.Sprintf("%s %d", courseTopics[rand.IntN(len(courseTopics))], 100+rand.IntN(300)),
		Institution: "The Open University Of Israel",
		Language:    []string{"en", "he", "es"}[rand.IntN(3)],
		Credits:     2 + rand.IntN(5),
	}
}

// GenerateQuestion returns a four-answer multiple-choice question.
func (g *Generator) GenerateQuestion() *model.Question {
	id := uuid.NewString()
	g.TrackDataID(id)
	answers := make([]string, 4)
	for i := range answers {
		answers[i] = fmt.Sprintf("Answer option %d", i+1)
	}
	return &model.Question{
		ID:      id,
		Text:    fmt.Sprintf("Sample question %s?", id[:8]),
		Answers: answers,
		Correct: rand.IntN(len(answers)),
		Topic:   courseTopics[rand.IntN(len(courseTopics))],
	}
}

// GenerateLearningProgress returns a consistent progress record: correct
// answers never exceed answered questions and the completion rate matches.
func (g *Generator) GenerateLearningProgress(userID string) *model.LearningProgress {
	answered := 1 + rand.IntN(50)
	correct := rand.IntN(answered + 1)
	return &model.LearningProgress{
		UserID:            userID,
		CourseID:          uuid.NewString(),
		QuestionsAnswered: answered,
		CorrectAnswers:    correct,
		CompletionRate:    float64(correct) / float64(answered),
	}
}

// TrackUserID records a backend user id for later bulk cleanup.
func (g *Generator) TrackUserID(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.userIDs = append(g.userIDs, id)
}

// TrackDataID records a synthetic data id.
func (g *Generator) TrackDataID(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dataIDs = append(g.dataIDs, id)
}

// TrackedUserIDs returns a copy of the recorded user ids.
func (g *Generator) TrackedUserIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.userIDs))
	copy(out, g.userIDs)
	return out
}

// TrackedDataIDs returns a copy of the recorded data ids.
func (g *Generator) TrackedDataIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.dataIDs))
	copy(out, g.dataIDs)
	return out
}

// ClearTrackedData resets tracking. Backend state already created with the
// tracked ids is left untouched.
func (g *Generator) ClearTrackedData() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.userIDs = nil
	g.dataIDs = nil
}
