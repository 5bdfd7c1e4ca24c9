// Package code defines business status codes with bilingual messages
// Package code 定义带双语消息的业务状态码
package code

import (
	"fmt"
	"net/http"
)

// Code is a business status carried inside a 200 response
// Code 是承载在 200 响应内的业务状态
type Code struct {
	code   int
	status bool
	// Lang bilingual message
	// Lang 双语消息
	Lang lang
	// data optional payload attached to a response
	// data 附加在响应上的可选数据
	data     any
	haveData bool
	// details optional diagnostic strings
	// details 可选的诊断信息
	details     []string
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers an error code, panics on duplicates
// NewError 注册错误码，重复时 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists, pick another one", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss registers a success code, panics on duplicates
// NewSuss 注册成功码，重复时 panic
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already exists, pick another one", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Clone returns a fresh copy without data or details
// Clone 返回不带 data 与 details 的新副本
func (e *Code) Clone() *Code {
	return &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() any {
	return e.data
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// WithData attaches a payload, returns a copy so sentinels stay clean
// WithData 附加数据，返回副本以保持哨兵值干净
func (e *Code) WithData(data any) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

// WithDetails attaches diagnostic strings, returns a copy
// WithDetails 附加诊断信息，返回副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// StatusCode business errors always ride on HTTP 200
// StatusCode 业务错误始终通过 HTTP 200 返回
func (e *Code) StatusCode() int {
	return http.StatusOK
}
