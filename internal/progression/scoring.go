package progression

import (
	"math"

	"github.com/finquest/finquest/internal/domain"
)

// ScoreQuest grades submitted answer indices against a quest's ordered
// question list. An answer is correct iff it equals the question's correct
// option index at the same position; missing or extra answers are simply not
// matched. The pass threshold is 60% rounded up to a whole question.
//
// A quest with zero questions scores {0, 0, 0, false} rather than dividing
// by zero.
func ScoreQuest(answers []int, questions []domain.Question) domain.ScoreResult {
	total := len(questions)
	if total == 0 {
		return domain.ScoreResult{}
	}

	correct := 0
	for i, answer := range answers {
		if i >= total {
			break
		}
		if answer == questions[i].Correct {
			correct++
		}
	}

	return domain.ScoreResult{
		Correct:    correct,
		Total:      total,
		Percentage: int(math.Round(float64(correct) / float64(total) * 100)),
		Passed:     correct >= int(math.Ceil(float64(total)*PassThreshold)),
	}
}

// Feedback builds the per-question explanation list for a graded
// submission. Unanswered questions are reported with YourAnswer -1.
func Feedback(answers []int, questions []domain.Question) []domain.AnswerFeedback {
	feedback := make([]domain.AnswerFeedback, len(questions))
	for i, q := range questions {
		answer := -1
		if i < len(answers) {
			answer = answers[i]
		}
		feedback[i] = domain.AnswerFeedback{
			Question:      q.Prompt,
			YourAnswer:    answer,
			CorrectAnswer: q.Correct,
			IsCorrect:     answer == q.Correct,
			Explanation:   q.Explanation,
		}
	}
	return feedback
}
