package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/tracing"
	"strings"
	"text/template"
	"time"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Flow 一个带类型的提示词调用：校验输入 -> 渲染模板 -> 调用生成服务 -> 解析并校验输出
// 不做重试，也不持有可变状态，可并发使用
type Flow[In any, Out any] struct {
	name   string
	system string
	prompt *template.Template
	schema *jsonschema.Schema
}

var templateFuncs = template.FuncMap{
	"join": joinList,
}

// NewFlow 模板语法错误属于编程错误，直接 panic
func NewFlow[In any, Out any](name, system, prompt string) *Flow[In, Out] {
	tmpl := template.Must(template.New(name).
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(prompt))

	return &Flow[In, Out]{
		name:   name,
		system: system,
		prompt: tmpl,
		schema: reflectSchema[Out](),
	}
}

func reflectSchema[T any]() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	var zero T
	schema := reflector.Reflect(&zero)
	schema.Version = ""
	return schema
}

func (f *Flow[In, Out]) Name() string {
	return f.name
}

func (f *Flow[In, Out]) Schema() *jsonschema.Schema {
	return f.schema
}

// Render 只渲染模板，不校验输入
func (f *Flow[In, Out]) Render(in In) (string, error) {
	var buf bytes.Buffer
	if err := f.prompt.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", f.name, err)
	}
	return buf.String(), nil
}

func (f *Flow[In, Out]) Run(ctx context.Context, gen StructuredGenerator, in In) (*Out, error) {
	start := time.Now()

	if err := util.ValidateStruct(in); err != nil {
		monitoring.ObserveGeneration(f.name, monitoring.OutcomeInvalid, start)
		return nil, err
	}

	prompt, err := f.Render(in)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.Tracer.Start(ctx, "flow."+f.name)
	defer span.End()
	span.SetAttributes(attribute.String("flow.name", f.name))

	raw, err := gen.GenerateStructured(ctx, StructuredRequest{
		Name:   f.name,
		System: f.system,
		Prompt: prompt,
		Schema: f.schema,
	})
	if err == nil && isEmptyOutput(raw) {
		err = util.ErrEmptyGeneration
	}
	if err != nil {
		outcome := monitoring.OutcomeFailed
		if errors.Is(err, util.ErrEmptyGeneration) {
			outcome = monitoring.OutcomeEmpty
		}
		f.fail(span, outcome, start, err)
		return nil, fmt.Errorf("%w: %s: %w", util.ErrGenerationFailed, f.name, err)
	}

	out, err := decodeOutput[Out](raw)
	if err != nil {
		f.fail(span, monitoring.OutcomeMalformed, start, err)
		return nil, fmt.Errorf("%w: %s: %w: %v", util.ErrGenerationFailed, f.name, util.ErrMalformedOutput, err)
	}

	monitoring.ObserveGeneration(f.name, monitoring.OutcomeSuccess, start)
	return out, nil
}

func (f *Flow[In, Out]) fail(span trace.Span, outcome string, start time.Time, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	monitoring.ObserveGeneration(f.name, outcome, start)
}

func isEmptyOutput(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "null"
}

// decodeOutput 拒绝多余字段和尾随内容，再按 validate tag 校验结构
func decodeOutput[T any](raw string) (*T, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	var out T
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON value")
	}
	if err := util.ValidateStruct(out); err != nil {
		return nil, err
	}
	return &out, nil
}

// joinList 列表槽位按 ", " 连接
func joinList(items interface{}) string {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Sprint(items)
	}
	parts := make([]string, v.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return strings.Join(parts, ", ")
}
