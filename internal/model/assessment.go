package model

// AssessmentQuestionCount 每次测评固定 5 道题，每题 4 个选项
const (
	AssessmentQuestionCount = 5
	AssessmentOptionCount   = 4
)

type AssessmentInput struct {
	CareerGoal    string `json:"careerGoal" validate:"required"`
	CurrentSkills string `json:"currentSkills" validate:"required"`
	Profession    string `json:"profession" validate:"required"`
}

// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	Question    string   `json:"question" validate:"notblank" jsonschema_description:"The question text."`
	Options     []string `json:"options" validate:"len=4,dive,notblank" jsonschema_description:"An array of 4 possible answers."`
	Answer      string   `json:"answer" validate:"notblank" jsonschema_description:"The correct answer from the options."`
	Explanation string   `json:"explanation" validate:"notblank" jsonschema_description:"A brief explanation for the correct answer."`
}

// HasOption 判断答案是否在选项中
func (q AssessmentQuestion) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Assessment 每次作答都重新生成，不做持久化
// swagger:model Assessment
type Assessment struct {
	Title     string               `json:"title" validate:"notblank" jsonschema_description:"A title for the assessment."`
	Questions []AssessmentQuestion `json:"questions" validate:"len=5,dive" jsonschema_description:"An array of 5 multiple-choice questions."`
}

type AnswerStatus string

const (
	AnswerCorrect    AnswerStatus = "correct"
	AnswerIncorrect  AnswerStatus = "incorrect"
	AnswerUnanswered AnswerStatus = "unanswered"
)

// AssessmentSubmission 前端提交的作答，key 为题目下标
type AssessmentSubmission struct {
	Assessment Assessment     `json:"assessment"`
	Answers    map[int]string `json:"answers"`
}

type QuestionResult struct {
	Index         int          `json:"index"`
	UserAnswer    string       `json:"userAnswer"`
	CorrectAnswer string       `json:"correctAnswer"`
	Status        AnswerStatus `json:"status"`
	Explanation   string       `json:"explanation"`
}

// AssessmentResult 作答结果，score 取值范围 [0, total]
type AssessmentResult struct {
	Title   string           `json:"title"`
	Score   int              `json:"score"`
	Total   int              `json:"total"`
	Results []QuestionResult `json:"results"`
}
