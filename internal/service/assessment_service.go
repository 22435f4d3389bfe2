package service

import (
	"context"
	"fmt"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"strings"
)

type AssessmentService struct {
	state      *StateService
	generation *GenerationService
}

func NewAssessmentService(state *StateService, generation *GenerationService) *AssessmentService {
	return &AssessmentService{state: state, generation: generation}
}

// Generate 每次调用都重新生成一套题目
func (s *AssessmentService) Generate(ctx context.Context, owner string) (*model.Assessment, error) {
	goals, err := s.state.RequireGoals(ctx, owner)
	if err != nil {
		return nil, err
	}

	return s.generation.Assessment(ctx, model.AssessmentInput{
		CareerGoal:    goals.CareerGoal,
		CurrentSkills: goals.CurrentSkills,
		Profession:    strings.Join(goals.Profession, ", "),
	})
}

// Score 统计答对的题数，结果在 [0, len(questions)]
func Score(assessment model.Assessment, answers map[int]string) int {
	correct := 0
	for i, q := range assessment.Questions {
		if answer, ok := answers[i]; ok && answer == q.Answer {
			correct++
		}
	}
	return correct
}

// Grade 先校验提交的测评结构（5 题、每题 4 个选项、答案在选项中），再要求每道题都作答
func (s *AssessmentService) Grade(submission model.AssessmentSubmission) (*model.AssessmentResult, error) {
	if err := util.ValidateStruct(submission.Assessment); err != nil {
		return nil, err
	}
	questions := submission.Assessment.Questions
	for i := range questions {
		if _, ok := submission.Answers[i]; !ok {
			return nil, util.ErrIncompleteAssessment
		}
	}
	if len(submission.Answers) != len(questions) {
		return nil, fmt.Errorf("%w: answers reference unknown questions", util.ErrIncompleteAssessment)
	}

	result := &model.AssessmentResult{
		Title:   submission.Assessment.Title,
		Score:   Score(submission.Assessment, submission.Answers),
		Total:   len(questions),
		Results: make([]model.QuestionResult, len(questions)),
	}
	for i, q := range questions {
		answer := submission.Answers[i]
		status := model.AnswerIncorrect
		if answer == q.Answer {
			status = model.AnswerCorrect
		}
		result.Results[i] = model.QuestionResult{
			Index:         i,
			UserAnswer:    answer,
			CorrectAnswer: q.Answer,
			Status:        status,
			Explanation:   q.Explanation,
		}
	}
	return result, nil
}

func (s *AssessmentService) Recommend(ctx context.Context, owner, title string, score, total int) (*model.Recommendations, error) {
	goals, err := s.state.RequireGoals(ctx, owner)
	if err != nil {
		return nil, err
	}

	return s.generation.Recommendations(ctx, model.RecommendationsInput{
		CareerGoal:      goals.CareerGoal,
		Score:           score,
		Total:           total,
		AssessmentTitle: title,
	})
}
