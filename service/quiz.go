package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"media-access/constant"
	"media-access/dto"
	"media-access/entities"
	"media-access/repository"
)

type Quiz interface {
	Submit(ctx context.Context, user *entities.User, videoID uuid.UUID, answers map[string]interface{}) (*dto.QuizResultResponse, error)
}

type quiz struct {
	repo repository.Store
}

func NewQuiz(repo repository.Store) Quiz {
	return &quiz{repo: repo}
}

// Submit grades the answers against the video's questions and records one
// attempt. Unanswered and unparseable answers count as wrong, never as
// errors. Grading itself is stateless; the attempt row is the only write.
func (s *quiz) Submit(ctx context.Context, user *entities.User, videoID uuid.UUID, answers map[string]interface{}) (*dto.QuizResultResponse, error) {
	video, err := s.repo.FindVideoById(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("video not found")
		}
		return nil, err
	}

	if len(answers) == 0 {
		return nil, invalid("no answers submitted")
	}

	questions, err := s.repo.GetQuestionsByVideoId(ctx, video.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, invalid("this video has no quiz")
	}

	correctCount := 0
	for _, question := range questions {
		if gradeQuestion(question, answers[question.ID.String()]) {
			correctCount++
		}
	}

	score := math.Round(float64(correctCount)/float64(len(questions))*1000) / 10
	passed := score >= constant.PassThreshold

	result := &entities.QuizResult{
		UserID:          user.ID,
		VideoID:         video.ID,
		CorrectAnswers:  correctCount,
		TotalQuestions:  len(questions),
		ScorePercentage: score,
		Passed:          passed,
	}
	if err := s.repo.CreateQuizResult(ctx, result); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("user_id", user.ID.String()).
		Str("video_id", video.ID.String()).
		Float64("score", score).
		Bool("passed", passed).
		Msg("quiz graded")

	return &dto.QuizResultResponse{
		Score:          score,
		Passed:         passed,
		CorrectCount:   correctCount,
		TotalQuestions: len(questions),
	}, nil
}

// gradeQuestion dispatches on the question type. The switch is the closed
// set of types; adding a type means adding a case here.
func gradeQuestion(question *entities.Question, answer interface{}) bool {
	if answer == nil {
		return false
	}

	switch question.Type {
	case constant.QuestionTypeText:
		submitted, ok := answer.(string)
		if !ok {
			return false
		}
		submitted = strings.ToLower(strings.TrimSpace(submitted))
		for _, accepted := range question.AcceptedAnswers() {
			if submitted == accepted {
				return true
			}
		}
		return false

	case constant.QuestionTypeMultiChoice:
		selected, ok := answerIDSet(answer)
		if !ok || len(selected) == 0 {
			return false
		}
		correct := make(map[uuid.UUID]struct{})
		for _, choice := range question.Choices {
			if choice.IsCorrect {
				correct[choice.ID] = struct{}{}
			}
		}
		if len(selected) != len(correct) {
			return false
		}
		for id := range selected {
			if _, ok := correct[id]; !ok {
				return false
			}
		}
		return true

	default: // single choice and true/false
		choiceID, ok := answerID(answer)
		if !ok {
			return false
		}
		for _, choice := range question.Choices {
			if choice.ID == choiceID {
				return choice.IsCorrect
			}
		}
		return false
	}
}

func answerID(answer interface{}) (uuid.UUID, bool) {
	raw, ok := answer.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func answerIDSet(answer interface{}) (map[uuid.UUID]struct{}, bool) {
	items, ok := answer.([]interface{})
	if !ok {
		return nil, false
	}
	set := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		id, ok := answerID(item)
		if !ok {
			return nil, false
		}
		set[id] = struct{}{}
	}
	return set, true
}
