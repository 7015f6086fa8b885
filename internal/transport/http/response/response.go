package response

// Resp 统一返回体
type Resp struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK 成功响应
func OK(data any) Resp {
	return Resp{Success: true, Data: data}
}

// Msg 成功响应，附带提示
func Msg(msg string, data any) Resp {
	return Resp{Success: true, Message: msg, Data: data}
}

// Error 失败响应（msg 为空时使用状态码默认文案）
func Error(status int, msg string) Resp {
	if msg == "" {
		msg = StatusText(status)
	}
	return Resp{Success: false, Message: msg}
}
