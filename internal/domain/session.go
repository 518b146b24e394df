package domain

import "time"

// CookingSession tracks one scaling/checklist run of a recipe by a user.
// Checked entries are indexes into the recipe's ingredient and instruction
// slices. ServingSize is the serving count this session is scaled to.
type CookingSession struct {
	ID                 string
	RecipeID           string
	UserID             string
	IngredientsChecked []int
	StepsChecked       []int
	ServingSize        float64
	Status             SessionStatus
	StartedAt          time.Time
	UpdatedAt          time.Time
}

// SessionStatus tracks the lifecycle of a cooking session.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	SessionCompleted
	SessionCancelled
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionCompleted:
		return "completed"
	case SessionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Finished reports whether the session is in a terminal state.
func (s *CookingSession) Finished() bool {
	return s.Status == SessionCompleted || s.Status == SessionCancelled
}

// IngredientChecked reports whether the ingredient at idx has been ticked.
func (s *CookingSession) IngredientChecked(idx int) bool {
	return containsIndex(s.IngredientsChecked, idx)
}

// StepChecked reports whether the instruction at idx has been ticked.
func (s *CookingSession) StepChecked(idx int) bool {
	return containsIndex(s.StepsChecked, idx)
}

func containsIndex(indexes []int, idx int) bool {
	for _, i := range indexes {
		if i == idx {
			return true
		}
	}
	return false
}

// SessionKey builds the composite key that holds the single-active-session
// invariant: at most one active session exists per (recipe, user) pair.
func SessionKey(recipeID, userID string) string {
	return recipeID + "::" + userID
}
