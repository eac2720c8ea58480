// Package model holds the shared data types the suite passes between the
// generator, the API client and the fixtures.
package model

// TestUser is a backend user owned by exactly one test. ID and Token are
// populated only after a successful create+authenticate round trip.
type TestUser struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ID        string `json:"id,omitempty"`
	Token     string `json:"token,omitempty"`
}

// Course is a synthetic course payload used for display assertions.
type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Language    string `json:"language"`
	Credits     int    `json:"credits"`
}

// Question is a synthetic multiple-choice question payload.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
	Correct int      `json:"correct"`
	Topic   string   `json:"topic"`
}

// LearningProgress mirrors the learning service's progress record.
type LearningProgress struct {
	UserID            string  `json:"userId"`
	CourseID          string  `json:"courseId"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	CorrectAnswers    int     `json:"correctAnswers"`
	CompletionRate    float64 `json:"completionRate"`
}

// ServiceHealth maps a service name to its health as observed on the most
// recent poll tick. No history is retained.
type ServiceHealth map[string]bool

// AllHealthy reports whether every tracked service was healthy on the tick
// this snapshot was taken.
func (h ServiceHealth) AllHealthy() bool {
	if len(h) == 0 {
		return false
	}
	for _, ok := range h {
		if !ok {
			return false
		}
	}
	return true
}

// Unhealthy returns the names of services that failed the tick.
func (h ServiceHealth) Unhealthy() []string {
	var out []string
	for name, ok := range h {
		if !ok {
			out = append(out, name)
		}
	}
	return out
}
