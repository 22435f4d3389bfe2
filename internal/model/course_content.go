package model

type CourseContentInput struct {
	CareerGoal    string `json:"careerGoal" validate:"required"`
	CurrentSkills string `json:"currentSkills" validate:"required"`
}

type VideoResource struct {
	Title       string `json:"title" validate:"notblank" jsonschema_description:"The title of the YouTube video."`
	URL         string `json:"url" validate:"required,url" jsonschema_description:"The full URL of the YouTube video."`
	Description string `json:"description" validate:"notblank" jsonschema_description:"A brief, compelling description of what the user will learn from the video."`
	// 链接检查结果，不属于生成的结构
	Reachable *bool `json:"reachable,omitempty" jsonschema:"-"`
}

type WebResource struct {
	Title     string `json:"title" validate:"notblank" jsonschema_description:"The title of the web article or resource."`
	URL       string `json:"url" validate:"required,url" jsonschema_description:"The full URL of the resource."`
	Reachable *bool  `json:"reachable,omitempty" jsonschema:"-"`
}

// CourseContent 课程内容页：3 个视频 + 3 个网页资源
// swagger:model CourseContent
type CourseContent struct {
	Title       string          `json:"title" validate:"notblank" jsonschema_description:"A title for the course content page."`
	Description string          `json:"description" validate:"notblank" jsonschema_description:"A brief, encouraging description of the learning materials."`
	Videos      []VideoResource `json:"videos" validate:"len=3,dive" jsonschema_description:"An array of 3 relevant YouTube video recommendations."`
	Resources   []WebResource   `json:"resources" validate:"len=3,dive" jsonschema_description:"An array of 3 relevant web articles or documentation links."`
}
