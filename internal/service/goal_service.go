package service

import (
	"context"
	"fmt"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"strings"
)

// GoalsView 目标页的数据，没有保存过目标时返回默认值并进入编辑状态
type GoalsView struct {
	Goals                model.GoalProfile  `json:"goals"`
	Saved                bool               `json:"saved"`
	ProfessionLabels     []string           `json:"professionLabels"`
	LearningStyleLabels  []string           `json:"learningStyleLabels"`
	ProfessionOptions    []model.Option     `json:"professionOptions"`
	LearningStyleOptions []model.Option     `json:"learningStyleOptions"`
	SkillLevels          []model.SkillLevel `json:"skillLevels"`
}

// SkillSuggestion 推荐的技能关键词，CurrentSkills 可直接回填到表单
type SkillSuggestion struct {
	Keywords      []string `json:"keywords"`
	CurrentSkills string   `json:"currentSkills"`
}

type GoalService struct {
	state      *StateService
	generation *GenerationService
}

func NewGoalService(state *StateService, generation *GenerationService) *GoalService {
	return &GoalService{state: state, generation: generation}
}

func (s *GoalService) GetGoals(ctx context.Context, owner string) (*GoalsView, error) {
	goals, err := s.state.LoadGoals(ctx, owner)
	if err != nil {
		return nil, err
	}

	view := &GoalsView{
		ProfessionOptions:    model.ProfessionOptions,
		LearningStyleOptions: model.LearningStyleOptions,
		SkillLevels:          model.SkillLevels,
	}
	if goals == nil {
		view.Goals = model.GoalProfile{
			Profession:    []string{},
			SkillLevel:    model.SkillBeginner,
			LearningStyle: []model.LearningStyle{},
		}
		return view, nil
	}

	view.Goals = *goals
	view.Saved = true
	view.ProfessionLabels = goals.ProfessionLabels()
	view.LearningStyleLabels = goals.LearningStyleLabels()
	return view, nil
}

// SaveGoals 先保存目标再生成学习计划；生成失败时目标仍然保留，旧计划不动
func (s *GoalService) SaveGoals(ctx context.Context, owner string, goals model.GoalProfile) (*model.LearningPlan, error) {
	if err := util.ValidateStruct(goals); err != nil {
		return nil, err
	}
	if err := s.state.SaveGoals(ctx, owner, goals); err != nil {
		return nil, err
	}

	plan, err := s.generation.LearningPlan(ctx, goals)
	if err != nil {
		return nil, err
	}
	if err := s.state.SavePlan(ctx, owner, *plan); err != nil {
		return nil, fmt.Errorf("save generated plan: %w", err)
	}
	return plan, nil
}

func (s *GoalService) SuggestSkills(ctx context.Context, careerGoal string) (*SkillSuggestion, error) {
	careerGoal = strings.TrimSpace(careerGoal)
	if len(careerGoal) < 5 {
		return nil, util.NewFieldError("careerGoal", "Please enter a career goal before suggesting skills.")
	}

	result, err := s.generation.SkillKeywords(ctx, model.SkillKeywordsInput{CareerGoal: careerGoal})
	if err != nil {
		return nil, err
	}
	return &SkillSuggestion{
		Keywords:      result.Keywords,
		CurrentSkills: strings.Join(result.Keywords, ", "),
	}, nil
}
