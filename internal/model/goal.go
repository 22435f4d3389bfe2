package model

// SkillLevel 技能水平，固定的有序集合
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// SkillLevels 按从低到高排列
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}

type LearningStyle string

const (
	StyleVisual         LearningStyle = "visual"
	StyleAuditory       LearningStyle = "auditory"
	StyleReadingWriting LearningStyle = "reading/writing"
	StyleKinesthetic    LearningStyle = "kinesthetic"
)

// Option 表单选项
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var LearningStyleOptions = []Option{
	{ID: string(StyleVisual), Label: "Visual (videos, diagrams)"},
	{ID: string(StyleAuditory), Label: "Auditory (lectures, discussions)"},
	{ID: string(StyleReadingWriting), Label: "Reading/Writing (articles, notes)"},
	{ID: string(StyleKinesthetic), Label: "Kinesthetic (hands-on projects)"},
}

// ProfessionOptions 常用职业，表单也接受自由输入
var ProfessionOptions = []Option{
	{ID: "student", Label: "Student"},
	{ID: "software-engineer", Label: "Software Engineer"},
	{ID: "designer", Label: "Designer"},
	{ID: "product-manager", Label: "Product Manager"},
	{ID: "other", Label: "Other"},
}

// GoalProfile 用户的学习目标，整体覆盖保存，同时也是学习计划生成的输入
// swagger:model GoalProfile
type GoalProfile struct {
	CareerGoal    string          `json:"careerGoal" validate:"required,min=5"`
	Profession    []string        `json:"profession" validate:"min=1,dive,required"`
	SkillLevel    SkillLevel      `json:"skillLevel" validate:"required,oneof=beginner intermediate advanced"`
	LearningStyle []LearningStyle `json:"learningStyle" validate:"min=1,dive,oneof=visual auditory reading/writing kinesthetic"`
	CurrentSkills string          `json:"currentSkills" validate:"required,min=3"`
}

// ProfessionLabels 把职业 id 转换成展示文案，未知的原样返回
func (g GoalProfile) ProfessionLabels() []string {
	return labels(g.Profession, ProfessionOptions)
}

func (g GoalProfile) LearningStyleLabels() []string {
	ids := make([]string, len(g.LearningStyle))
	for i, s := range g.LearningStyle {
		ids[i] = string(s)
	}
	return labels(ids, LearningStyleOptions)
}

func labels(ids []string, options []Option) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		label := id
		for _, o := range options {
			if o.ID == id {
				label = o.Label
				break
			}
		}
		out = append(out, label)
	}
	return out
}

// SkillKeywordsInput 根据职业目标推荐技能关键词
type SkillKeywordsInput struct {
	CareerGoal string `json:"careerGoal" validate:"required,min=5"`
}

type SkillKeywords struct {
	Keywords []string `json:"keywords" validate:"min=5,max=10,dive,notblank" jsonschema_description:"An array of 5-10 relevant skill keywords."`
}
