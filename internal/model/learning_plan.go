package model

// LearningStep 微学习步骤
type LearningStep struct {
	Title       string `json:"title" validate:"notblank" jsonschema_description:"The title of the learning step."`
	Duration    string `json:"duration" validate:"notblank" jsonschema_description:"An estimated duration for this step, e.g., \"3 hours\" or \"2 days\"."`
	Description string `json:"description" validate:"notblank" jsonschema_description:"A brief description of what this learning step entails."`
}

// LearningPlan 由 GoalProfile 生成，目标变更后整体重新生成
// swagger:model LearningPlan
type LearningPlan struct {
	Title       string         `json:"title" validate:"notblank" jsonschema_description:"A concise and motivational title for the entire learning plan."`
	Description string         `json:"description" validate:"notblank" jsonschema_description:"A short, encouraging description of the learning plan."`
	Steps       []LearningStep `json:"steps" validate:"min=3,max=5,dive" jsonschema_description:"A list of sequential, bite-sized learning steps to achieve the goal. Should be between 3 and 5 steps."`
}
