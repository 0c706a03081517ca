package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Responder 以JSON格式写回响应，编码失败时记录到绑定的日志器
type Responder struct {
	logger *zap.Logger
}

// NewResponder 创建响应器，logger 为空时丢弃日志
func NewResponder(logger *zap.Logger) Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Responder{logger: logger}
}

// JSON 发送JSON响应
func (r Responder) JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.logger.Warn("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

// Error 发送错误响应，响应体为 {"error": message}
func (r Responder) Error(w http.ResponseWriter, status int, message string) {
	r.JSON(w, status, map[string]string{"error": message})
}
