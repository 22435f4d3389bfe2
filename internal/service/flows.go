package service

import "skillpath_backend/internal/model"

const (
	FlowLearningPlan      = "learningPlan"
	FlowAssessment        = "assessment"
	FlowCourseContent     = "courseContent"
	FlowRecommendations   = "recommendations"
	FlowSkillKeywords     = "skillKeywords"
	FlowPasswordAssistant = "passwordResetAssistance"
)

const structuredSystemPrompt = "Respond only with a JSON object that matches the provided schema."

var learningPlanFlow = NewFlow[model.GoalProfile, model.LearningPlan](FlowLearningPlan, structuredSystemPrompt,
	`You are an expert curriculum designer for vocational and upskilling programs. Your task is to create a personalized, micro-learning plan for a user based on their goals and preferences.

The plan should be broken down into small, manageable steps that lead the user towards their goal. Each step should be a focused micro-learning moment.

Keep the learning plan concise and motivational. Generate 3 to 5 clear steps.

**User Profile:**
- **Career Goal:** {{.CareerGoal}}
- **Current Profession(s):** {{join .Profession}}
- **Current Skills:** {{.CurrentSkills}}
- **Skill Level:** {{.SkillLevel}}
- **Preferred Learning Style(s):** {{join .LearningStyle}}

Based on this profile, generate a learning plan with a title, a brief description, and a series of actionable steps. For each step, provide a title, an estimated duration, and a short description. Tailor the content and recommended activities to the user's preferred learning style(s).`)

var assessmentFlow = NewFlow[model.AssessmentInput, model.Assessment](FlowAssessment, structuredSystemPrompt,
	`You are an expert in creating educational assessments. Generate a 5-question multiple-choice quiz to evaluate a user's baseline knowledge for their stated career goal.

The questions should be suitable for a beginner and cover fundamental concepts related to the user's goal and existing skills. For each question, provide 4 options, one correct answer, and a brief explanation for the answer.

**User Profile:**
- **Career Goal:** {{.CareerGoal}}
- **Current Profession:** {{.Profession}}
- **Current Skills:** {{.CurrentSkills}}

Generate an assessment titled "Baseline Knowledge Check" with 5 questions.`)

var courseContentFlow = NewFlow[model.CourseContentInput, model.CourseContent](FlowCourseContent, structuredSystemPrompt,
	`You are an expert instructional designer and YouTube curator. A user wants to learn new skills to achieve a career goal. Your task is to find and recommend **real, existing, and highly-rated** learning resources.

For the video content, find 3 popular and well-regarded YouTube videos that are directly relevant to the user's goals. Ensure the URLs are valid and point to actual videos.

For the web resources, find 3 high-quality articles, tutorials, or official documentation pages.

**User Profile:**
- **Career Goal:** {{.CareerGoal}}
- **Current Skills:** {{.CurrentSkills}}

Generate a title and description for the course page, and provide the lists of video and web resources. For videos, include a short description. Double-check that all URLs are valid and lead to real, available content.`)

var recommendationsFlow = NewFlow[model.RecommendationsInput, model.Recommendations](FlowRecommendations, structuredSystemPrompt,
	`You are an expert career coach and learning advisor. A user has just completed a baseline knowledge assessment. Based on their career goal and their score, generate a list of 3 to 5 specific topics or skills they should focus on to improve.

The recommendations should be encouraging and provide clear direction for what to learn next.

**User Profile & Performance:**
- **Career Goal:** {{.CareerGoal}}
- **Assessment Taken:** "{{.AssessmentTitle}}"
- **Score:** {{.Score}} out of {{.Total}}

Generate a list of recommendations titled "Your Next Steps". For each recommendation, provide the topic and a short reason.`)

var skillKeywordsFlow = NewFlow[model.SkillKeywordsInput, model.SkillKeywords](FlowSkillKeywords, structuredSystemPrompt,
	`You are a career development expert and professional skills assessor. Your task is to generate a list of 5 to 10 essential skill keywords required for a user to achieve their stated career goal.

Focus on concrete, technical, and soft skills that are highly relevant in the job market for the specified goal.

**User's Career Goal:**
{{.CareerGoal}}

Generate the list of skill keywords.`)

var passwordAssistantFlow = NewFlow[model.PasswordResetInput, model.PasswordResetAssistance](FlowPasswordAssistant, structuredSystemPrompt,
	`You are an AI assistant designed to guide users through the password reset process.

The user has forgotten their password and needs your help to reset it. Use email verification and security questions to ensure a secure and user-friendly experience.

Generate clear and concise instructions for the user to follow.

Email: {{.Email}}`)
