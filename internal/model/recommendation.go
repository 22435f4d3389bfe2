package model

type RecommendationsInput struct {
	CareerGoal      string `json:"careerGoal" validate:"required"`
	Score           int    `json:"score" validate:"gte=0,ltefield=Total"`
	Total           int    `json:"total" validate:"gte=1"`
	AssessmentTitle string `json:"assessmentTitle" validate:"required"`
}

type Recommendation struct {
	Topic  string `json:"topic" validate:"notblank" jsonschema_description:"A specific topic or skill to focus on."`
	Reason string `json:"reason" validate:"notblank" jsonschema_description:"A brief explanation of why this topic is recommended based on the assessment score."`
}

// Recommendations 根据测评得分生成 3-5 条学习建议
// swagger:model Recommendations
type Recommendations struct {
	Title           string           `json:"title" validate:"notblank" jsonschema_description:"A title for the recommendations list."`
	Recommendations []Recommendation `json:"recommendations" validate:"min=3,max=5,dive" jsonschema_description:"An array of 3-5 learning recommendations."`
}
