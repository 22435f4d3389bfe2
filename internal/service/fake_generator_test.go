package service

import (
	"context"
	"sync"
)

// fakeGenerator 按 flow 名返回预设结果并记录请求
type fakeGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []StructuredRequest
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		responses: map[string]string{},
		errs:      map[string]error{},
	}
}

func (f *fakeGenerator) GenerateStructured(_ context.Context, req StructuredRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err, ok := f.errs[req.Name]; ok {
		return "", err
	}
	return f.responses[req.Name], nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1].Prompt
}

const planJSON = `{
  "title": "Frontend in Five Steps",
  "description": "A short path to your first frontend role.",
  "steps": [
    {"title": "HTML basics", "duration": "3 hours", "description": "Learn semantic markup."},
    {"title": "CSS layout", "duration": "2 days", "description": "Flexbox and grid."},
    {"title": "JavaScript", "duration": "1 week", "description": "Core language features."}
  ]
}`

const assessmentJSON = `{
  "title": "Baseline Knowledge Check",
  "questions": [
    {"question": "Q1", "options": ["a", "b", "c", "d"], "answer": "a", "explanation": "E1"},
    {"question": "Q2", "options": ["a", "b", "c", "d"], "answer": "b", "explanation": "E2"},
    {"question": "Q3", "options": ["a", "b", "c", "d"], "answer": "c", "explanation": "E3"},
    {"question": "Q4", "options": ["a", "b", "c", "d"], "answer": "d", "explanation": "E4"},
    {"question": "Q5", "options": ["a", "b", "c", "d"], "answer": "a", "explanation": "E5"}
  ]
}`

const courseJSON = `{
  "title": "Your Course",
  "description": "Hand-picked material.",
  "videos": [
    {"title": "V1", "url": "https://www.youtube.com/watch?v=1", "description": "D1"},
    {"title": "V2", "url": "https://www.youtube.com/watch?v=2", "description": "D2"},
    {"title": "V3", "url": "https://www.youtube.com/watch?v=3", "description": "D3"}
  ],
  "resources": [
    {"title": "R1", "url": "https://developer.mozilla.org/a"},
    {"title": "R2", "url": "https://developer.mozilla.org/b"},
    {"title": "R3", "url": "https://broken.example.com/c"}
  ]
}`

const recommendationsJSON = `{
  "title": "Your Next Steps",
  "recommendations": [
    {"topic": "Closures", "reason": "Missed question 2."},
    {"topic": "CSS grid", "reason": "Missed question 3."},
    {"topic": "Accessibility", "reason": "Foundational."}
  ]
}`

const keywordsJSON = `{"keywords": ["HTML", "CSS", "JavaScript", "React", "Git"]}`

const resetJSON = `{"instructions": "Open the link we sent to your inbox."}`

func defaultFakeGenerator() *fakeGenerator {
	gen := newFakeGenerator()
	gen.responses[FlowLearningPlan] = planJSON
	gen.responses[FlowAssessment] = assessmentJSON
	gen.responses[FlowCourseContent] = courseJSON
	gen.responses[FlowRecommendations] = recommendationsJSON
	gen.responses[FlowSkillKeywords] = keywordsJSON
	gen.responses[FlowPasswordAssistant] = resetJSON
	return gen
}
