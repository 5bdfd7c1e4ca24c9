package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
	val "github.com/go-playground/validator/v10"
)

// ValidatorInterface 校验器接口，与 binding.StructValidator 对齐
type ValidatorInterface interface {
	ValidateStruct(obj interface{}) error
	Engine() interface{}
}

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 以逗号拼接所有校验错误消息
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 以 key:message 形式拼接所有校验错误
func (v ValidErrors) MapsToString() string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Key+":"+err.Message)
	}
	return strings.Join(errs, ",")
}

// BindAndValid binds request params and translates validation errors
// using the translator placed on the context by the lang middleware
// BindAndValid 绑定请求参数，并使用语言中间件放入上下文的翻译器翻译校验错误
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err != nil {
		tr, ok := c.Get("trans")
		verrs, isValidatorErr := err.(val.ValidationErrors)
		if !isValidatorErr {
			errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
			return false, errs
		}
		if !ok {
			for _, verr := range verrs {
				errs = append(errs, &ValidError{Key: verr.Field(), Message: verr.Error()})
			}
			return false, errs
		}
		trans := tr.(ut.Translator)
		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{Key: key, Message: value})
		}
		return false, errs
	}

	return true, nil
}
