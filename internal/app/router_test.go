package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/controller"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
}

func (g *stubGenerator) GenerateStructured(_ context.Context, req service.StructuredRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err, ok := g.errs[req.Name]; ok {
		return "", err
	}
	return g.responses[req.Name], nil
}

func (g *stubGenerator) fail(flow string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[flow] = err
}

func newStubGenerator() *stubGenerator {
	return &stubGenerator{
		errs: map[string]error{},
		responses: map[string]string{
			service.FlowLearningPlan: `{"title":"Plan","description":"Go.","steps":[
				{"title":"One","duration":"1 day","description":"a"},
				{"title":"Two","duration":"2 days","description":"b"},
				{"title":"Three","duration":"3 days","description":"c"}]}`,
			service.FlowAssessment: `{"title":"Baseline Knowledge Check","questions":[
				{"question":"Q1","options":["a","b","c","d"],"answer":"a","explanation":"e"},
				{"question":"Q2","options":["a","b","c","d"],"answer":"b","explanation":"e"},
				{"question":"Q3","options":["a","b","c","d"],"answer":"c","explanation":"e"},
				{"question":"Q4","options":["a","b","c","d"],"answer":"d","explanation":"e"},
				{"question":"Q5","options":["a","b","c","d"],"answer":"a","explanation":"e"}]}`,
			service.FlowRecommendations: `{"title":"Your Next Steps","recommendations":[
				{"topic":"A","reason":"r"},{"topic":"B","reason":"r"},{"topic":"C","reason":"r"}]}`,
			service.FlowSkillKeywords:     `{"keywords":["Go","SQL","Docker","Git","HTTP"]}`,
			service.FlowPasswordAssistant: `{"instructions":"Check your inbox."}`,
		},
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	gen    *stubGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:      config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Persistence: config.PersistenceConfig{Driver: util.PersistenceMemory},
		JWT:         config.JWTConfig{Secret: "router-test-secret-router-test-secret", ExpireTime: time.Hour},
		Auth:        config.AuthConfig{AdminEmails: []string{"root@example.com"}},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit:   config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
	}
	gen := newStubGenerator()

	a := &App{Config: cfg}
	a.build(repository.NewMemoryStateRepository(), gen)

	return &testServer{t: t, router: a.Router, gen: gen}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// login 以普通学习者身份注册并登录，root@example.com 由配置授予 admin
func (s *testServer) login(email string) string {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/api/register", "", model.RegisterRequest{
		Email:           email,
		Password:        "password123",
		ConfirmPassword: "password123",
		Role:            model.Learner,
	})
	require.Equal(s.t, http.StatusCreated, code)

	code, env := s.do(http.MethodPost, "/api/login", "", model.LoginRequest{Email: email, Password: "password123"})
	require.Equal(s.t, http.StatusOK, code)

	var result service.LoginResult
	require.NoError(s.t, json.Unmarshal(env.Data, &result))
	return result.Token
}

func goalsBody() model.GoalProfile {
	return model.GoalProfile{
		CareerGoal:    "Become a backend engineer",
		Profession:    []string{"student"},
		SkillLevel:    model.SkillIntermediate,
		LearningStyle: []model.LearningStyle{model.StyleReadingWriting},
		CurrentSkills: "Python, SQL",
	}
}

func TestHealthAndCommunityArePublic(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"persistence":"memory"`)

	code, env = s.do(http.MethodGet, "/api/community?q=design", "", nil)
	assert.Equal(t, http.StatusOK, code)
	var dir model.CommunityDirectory
	require.NoError(t, json.Unmarshal(env.Data, &dir))
	require.Len(t, dir.Peers, 1)
	assert.Equal(t, "Diana Miller", dir.Peers[0].Name)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/goals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.JSONEq(t, `{"redirect":"/login"}`, string(env.Data))

	code, _ = s.do(http.MethodGet, "/api/dashboard", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token := s.login("ada@example.com")
	code, _ = s.do(http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t)
	s.login("ada@example.com")

	code, env := s.do(http.MethodPost, "/api/register", "", model.RegisterRequest{
		Email: "ada@example.com", Password: "password123", ConfirmPassword: "password123", Role: model.Learner,
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, util.ErrEmailRegistered.Error(), env.Message)

	code, env = s.do(http.MethodPost, "/api/register", "", model.RegisterRequest{
		Email: "bad", Password: "password123", ConfirmPassword: "password124", Role: "mentor",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	var data struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Please enter a valid email address.", data.Fields["email"])
	assert.Equal(t, "Passwords don't match.", data.Fields["confirmPassword"])
	assert.Equal(t, "You need to select a role.", data.Fields["role"])

	code, _ = s.do(http.MethodPost, "/api/login", "", model.LoginRequest{Email: "ada@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestGoalsAssessmentFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("ada@example.com")

	// 没有目标时依赖目标的页面返回 412 和跳转目标
	for _, path := range []string{"/api/assessment", "/api/assessment/recommendations"} {
		code, env := s.do(http.MethodPost, path, token, controller.RecommendationsRequest{AssessmentTitle: "t", Score: 1, Total: 5})
		assert.Equal(t, http.StatusPreconditionFailed, code, path)
		assert.JSONEq(t, `{"redirect":"/dashboard/goals"}`, string(env.Data))
	}
	code, _ := s.do(http.MethodGet, "/api/course", token, nil)
	assert.Equal(t, http.StatusPreconditionFailed, code)

	code, env := s.do(http.MethodGet, "/api/goals", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"saved":false`)

	invalid := goalsBody()
	invalid.Profession = []string{}
	code, env = s.do(http.MethodPut, "/api/goals", token, invalid)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Data), "You have to select at least one profession.")

	code, env = s.do(http.MethodPut, "/api/goals", token, goalsBody())
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"redirect":"/dashboard"`)

	code, env = s.do(http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)
	var dash service.DashboardView
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	require.NotNil(t, dash.Plan)
	assert.Equal(t, "Plan", dash.Plan.Title)

	code, env = s.do(http.MethodPost, "/api/assessment", token, nil)
	require.Equal(t, http.StatusOK, code)
	var assessment model.Assessment
	require.NoError(t, json.Unmarshal(env.Data, &assessment))

	code, env = s.do(http.MethodPost, "/api/assessment/submit", token, model.AssessmentSubmission{
		Assessment: assessment,
		Answers:    map[int]string{0: "a"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "please answer all questions before submitting", env.Message)

	code, env = s.do(http.MethodPost, "/api/assessment/submit", token, model.AssessmentSubmission{
		Assessment: assessment,
		Answers:    map[int]string{0: "a", 1: "b", 2: "c", 3: "a", 4: "b"},
	})
	require.Equal(t, http.StatusOK, code)
	var result model.AssessmentResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 5, result.Total)

	code, env = s.do(http.MethodPost, "/api/assessment/recommendations", token, controller.RecommendationsRequest{
		AssessmentTitle: result.Title, Score: result.Score, Total: result.Total,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Your Next Steps")
}

func TestGenerationFailureMapsToBadGateway(t *testing.T) {
	s := newTestServer(t)
	token := s.login("ada@example.com")
	s.gen.fail(service.FlowLearningPlan, errors.New("upstream 500"))

	code, env := s.do(http.MethodPut, "/api/goals", token, goalsBody())
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Could not generate a learning plan. Please try again.", env.Message)

	// 目标已经保存，依赖目标的页面可以继续使用
	code, env = s.do(http.MethodGet, "/api/goals", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"saved":true`)

	code, _ = s.do(http.MethodPost, "/api/assessment", token, nil)
	assert.Equal(t, http.StatusOK, code)

	// 课程内容没有预设结果，生成服务返回空
	code, env = s.do(http.MethodGet, "/api/course", token, nil)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Could not generate course content. Please try again.", env.Message)
}

func TestSuggestSkills(t *testing.T) {
	s := newTestServer(t)
	token := s.login("ada@example.com")

	code, env := s.do(http.MethodPost, "/api/goals/suggest-skills", token, model.SkillKeywordsInput{CareerGoal: "dev"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Data), "Please enter a career goal before suggesting skills.")

	code, env = s.do(http.MethodPost, "/api/goals/suggest-skills", token, model.SkillKeywordsInput{CareerGoal: "Become a platform engineer"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"currentSkills":"Go, SQL, Docker, Git, HTTP"`)
}

func TestForgotPassword(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/forgot-password", "", model.PasswordResetInput{Email: "nope"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please enter a valid email address.", env.Message)

	code, env = s.do(http.MethodPost, "/api/forgot-password", "", model.PasswordResetInput{Email: "ada@example.com"})
	require.Equal(t, http.StatusOK, code)
	var state model.PasswordResetState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.True(t, state.Success)
	require.NotNil(t, state.Instructions)
	assert.Equal(t, "Check your inbox.", *state.Instructions)

	s.gen.fail(service.FlowPasswordAssistant, errors.New("boom"))
	code, env = s.do(http.MethodPost, "/api/forgot-password", "", model.PasswordResetInput{Email: "ada@example.com"})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "An unexpected error occurred. Please try again.", env.Message)
}

func TestAdminResetRequiresAdminRole(t *testing.T) {
	s := newTestServer(t)
	learner := s.login("ada@example.com")
	admin := s.login("root@example.com")

	code, _ := s.do(http.MethodDelete, "/api/admin/users/state?email=ada@example.com", learner, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodDelete, "/api/admin/users/state?email=ada@example.com", admin, nil)
	assert.Equal(t, http.StatusOK, code)

	// 账号和会话都被清掉
	code, _ = s.do(http.MethodGet, "/api/dashboard", learner, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodPost, "/api/login", "", model.LoginRequest{Email: "ada@example.com", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminCannotBeSelfRegistered(t *testing.T) {
	s := newTestServer(t)
	victim := s.login("victim@example.com")

	code, env := s.do(http.MethodPost, "/api/register", "", model.RegisterRequest{
		Email:           "attacker@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Role:            model.Admin,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Data), "Admin accounts cannot be registered here.")

	code, _ = s.do(http.MethodPost, "/api/login", "", model.LoginRequest{Email: "attacker@example.com", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, code)

	// 以学习者身份注册的账号仍然不能调用管理接口
	attacker := s.login("attacker@example.com")
	code, _ = s.do(http.MethodDelete, "/api/admin/users/state?email=victim@example.com", attacker, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/dashboard", victim, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestSaveGoalsRejectsShortCurrentSkills(t *testing.T) {
	s := newTestServer(t)
	token := s.login("ada@example.com")

	goals := goalsBody()
	goals.CurrentSkills = "Go"
	code, env := s.do(http.MethodPut, "/api/goals", token, goals)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Data), "Please list at least one current skill.")

	code, env = s.do(http.MethodGet, "/api/goals", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"saved":false`)
}
