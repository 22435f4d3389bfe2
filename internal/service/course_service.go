package service

import (
	"context"
	"net/http"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/model"
	"skillpath_backend/pkg/logger"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LinkChecker 检查生成的资源链接是否可访问
type LinkChecker interface {
	Reachable(ctx context.Context, url string) bool
}

type HTTPLinkChecker struct {
	client *resty.Client
}

func NewHTTPLinkChecker(timeout time.Duration) *HTTPLinkChecker {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", "skillpath-linkcheck/1.0")
	return &HTTPLinkChecker{client: client}
}

// Reachable 先发 HEAD，部分站点不支持 HEAD 时退回 GET
func (c *HTTPLinkChecker) Reachable(ctx context.Context, url string) bool {
	resp, err := c.client.R().SetContext(ctx).Head(url)
	if err == nil && resp.StatusCode() < http.StatusBadRequest {
		return true
	}

	resp, err = c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return false
	}
	if body := resp.RawBody(); body != nil {
		body.Close()
	}
	return resp.StatusCode() < http.StatusBadRequest
}

type CourseService struct {
	state      *StateService
	generation *GenerationService
	links      LinkChecker
	cfg        config.CourseConfig
}

// NewCourseService links 为 nil 时不做链接检查
func NewCourseService(state *StateService, generation *GenerationService, links LinkChecker, cfg config.CourseConfig) *CourseService {
	return &CourseService{
		state:      state,
		generation: generation,
		links:      links,
		cfg:        cfg,
	}
}

func (s *CourseService) Generate(ctx context.Context, owner string) (*model.CourseContent, error) {
	goals, err := s.state.RequireGoals(ctx, owner)
	if err != nil {
		return nil, err
	}

	content, err := s.generation.CourseContent(ctx, model.CourseContentInput{
		CareerGoal:    goals.CareerGoal,
		CurrentSkills: goals.CurrentSkills,
	})
	if err != nil {
		return nil, err
	}

	if s.cfg.VerifyLinks && s.links != nil {
		s.verifyLinks(ctx, content)
	}
	return content, nil
}

// verifyLinks 只标记结果，不会因为链接失效而让整个请求失败
func (s *CourseService) verifyLinks(ctx context.Context, content *model.CourseContent) {
	limit := s.cfg.LinkConcurrency
	if limit <= 0 {
		limit = 4
	}
	timeout := time.Duration(s.cfg.LinkTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	check := func(url string, target **bool) {
		g.Go(func() error {
			linkCtx, cancel := context.WithTimeout(gctx, timeout)
			defer cancel()
			ok := s.links.Reachable(linkCtx, url)
			*target = &ok
			if !ok {
				logger.Log.Debug("Course link unreachable", zap.String("url", url))
			}
			return nil
		})
	}

	for i := range content.Videos {
		check(content.Videos[i].URL, &content.Videos[i].Reachable)
	}
	for i := range content.Resources {
		check(content.Resources[i].URL, &content.Resources[i].Reachable)
	}
	_ = g.Wait()
}
