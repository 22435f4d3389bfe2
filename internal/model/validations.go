package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RegisterValidations 注册自定义 tag 和结构体级别的校验规则
func RegisterValidations(v *validator.Validate) {
	// 生成结果里只有空白的文本视为缺失
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterStructValidation(assessmentQuestionValidation, AssessmentQuestion{})
}

// 正确答案必须是选项之一
func assessmentQuestionValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(AssessmentQuestion)
	if q.Answer != "" && !q.HasOption(q.Answer) {
		sl.ReportError(q.Answer, "answer", "Answer", "answer_in_options", "")
	}
}
