package learning

import "refrescoBot/domain"

// feedbackFor phrases the acknowledgement for a rating. Scores of 4 and
// up confirm the direction, 3 is neutral, below that the system
// promises to steer away.
func feedbackFor(score int) domain.RatingFeedback {
	fb := domain.RatingFeedback{Score: score}
	switch {
	case score >= 4:
		fb.Message = "Great! Glad you enjoyed it."
		fb.FutureImpact = "You'll see more drinks like this one."
		fb.LearningNote = "Learned that drinks of this kind work for you."
	case score == 3:
		fb.Message = "Noted, that one was just okay for you."
		fb.FutureImpact = "We'll look for options that fit you better."
		fb.LearningNote = "Your preferences were recorded to sharpen future picks."
	default:
		fb.Message = "Sorry that one wasn't for you."
		fb.FutureImpact = "Similar drinks will show up less often."
		fb.LearningNote = "Learned which kind of drinks to avoid for you."
	}
	return fb
}
