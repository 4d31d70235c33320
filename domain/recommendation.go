package domain

// CategoryDecision is the outcome of the rule table that decides which
// beverage category mix a completed quiz should surface.
type CategoryDecision string

const (
	DecisionConventionalOnly CategoryDecision = "conventional_only"
	DecisionHealthOnly       CategoryDecision = "health_only"
	DecisionMixed            CategoryDecision = "mixed"
)

// Recommendation is one scored beverage surfaced to a session.
type Recommendation struct {
	BeverageID     uint64   `json:"beverage_id"`
	BeverageName   string   `json:"beverage_name"`
	Category       string   `json:"category"`
	PresentationID string   `json:"presentation_id,omitempty"`
	Probability    float64  `json:"probability"`
	Score          float64  `json:"score"`
	Factors        []string `json:"factors,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// RecommendationSet is the initial result of a completed quiz.
type RecommendationSet struct {
	SessionID string           `json:"session_id"`
	Decision  CategoryDecision `json:"decision"`
	Items     []Recommendation `json:"items"`
	Message   string           `json:"message,omitempty"`
	Replay    bool             `json:"replay"`
}

// MoreResult is a page of additional recommendations. Kind tells the
// caller whether the page holds alternatives or more of the same
// category, and Exhausted is the explicit end-of-catalog signal.
type MoreResult struct {
	SessionID string           `json:"session_id"`
	Items     []Recommendation `json:"items"`
	Kind      string           `json:"kind"`
	Exhausted bool             `json:"exhausted"`
	Message   string           `json:"message,omitempty"`
}

// RatingFeedback is the acknowledgement returned after a rating is
// stored, phrased for the end user plus the learning stats behind it.
type RatingFeedback struct {
	Score                int     `json:"score"`
	Message              string  `json:"message"`
	FutureImpact         string  `json:"future_impact"`
	LearningNote         string  `json:"learning_note"`
	ClusterPeersAffected int     `json:"cluster_peers_affected"`
	BeverageMean         float64 `json:"beverage_mean"`
	BeverageRatings      int64   `json:"beverage_ratings"`
	Retrained            bool    `json:"retrained"`
}
