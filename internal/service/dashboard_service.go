package service

import (
	"context"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
)

// SkillHours 仪表盘上的学习时长图表
type SkillHours struct {
	Skill string `json:"skill"`
	Hours int    `json:"hours"`
}

var defaultStudyHours = []SkillHours{
	{Skill: "HTML/CSS", Hours: 4},
	{Skill: "JavaScript", Hours: 8},
	{Skill: "React", Hours: 12},
	{Skill: "Next.js", Hours: 6},
	{Skill: "Genkit", Hours: 5},
}

type DashboardView struct {
	Plan       *model.LearningPlan `json:"plan"`
	NextAction string              `json:"nextAction,omitempty"`
	StudyHours []SkillHours        `json:"studyHours"`
}

type DashboardService struct {
	state *StateService
}

func NewDashboardService(state *StateService) *DashboardService {
	return &DashboardService{state: state}
}

// GetDashboard 返回最近一次生成的学习计划，没有计划时提示先设置目标
func (s *DashboardService) GetDashboard(ctx context.Context, owner string) (*DashboardView, error) {
	plan, err := s.state.LoadPlan(ctx, owner)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Plan:       plan,
		StudyHours: defaultStudyHours,
	}
	if plan == nil {
		view.NextAction = util.RouteGoals
	}
	return view, nil
}
