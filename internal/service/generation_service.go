package service

import (
	"context"
	"errors"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"go.uber.org/zap"
)

// GenerationService 对外暴露六个生成调用
type GenerationService struct {
	gen StructuredGenerator
}

func NewGenerationService(gen StructuredGenerator) *GenerationService {
	return &GenerationService{gen: gen}
}

func (s *GenerationService) LearningPlan(ctx context.Context, in model.GoalProfile) (*model.LearningPlan, error) {
	return runLogged(ctx, s.gen, learningPlanFlow, in)
}

func (s *GenerationService) Assessment(ctx context.Context, in model.AssessmentInput) (*model.Assessment, error) {
	return runLogged(ctx, s.gen, assessmentFlow, in)
}

func (s *GenerationService) CourseContent(ctx context.Context, in model.CourseContentInput) (*model.CourseContent, error) {
	return runLogged(ctx, s.gen, courseContentFlow, in)
}

func (s *GenerationService) Recommendations(ctx context.Context, in model.RecommendationsInput) (*model.Recommendations, error) {
	return runLogged(ctx, s.gen, recommendationsFlow, in)
}

func (s *GenerationService) SkillKeywords(ctx context.Context, in model.SkillKeywordsInput) (*model.SkillKeywords, error) {
	return runLogged(ctx, s.gen, skillKeywordsFlow, in)
}

func (s *GenerationService) PasswordResetAssistance(ctx context.Context, in model.PasswordResetInput) (*model.PasswordResetAssistance, error) {
	return runLogged(ctx, s.gen, passwordAssistantFlow, in)
}

func runLogged[In any, Out any](ctx context.Context, gen StructuredGenerator, flow *Flow[In, Out], in In) (*Out, error) {
	out, err := flow.Run(ctx, gen, in)
	if err != nil {
		var verr *util.ValidationError
		if errors.As(err, &verr) {
			logger.Log.Debug("Generation input rejected", zap.String("flow", flow.Name()), zap.Any("fields", verr.Fields))
		} else {
			logger.Log.Error("Generation failed", zap.String("flow", flow.Name()), zap.Error(err))
		}
		return nil, err
	}
	return out, nil
}
