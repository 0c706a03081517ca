package ask

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	askService "github.com/zhouzirui/z-tavern/askwidget/internal/service/ask"
	"github.com/zhouzirui/z-tavern/askwidget/pkg/utils"
)

// Handler 问答端点的HTTP处理器
type Handler struct {
	answerer Answerer
	logger   *zap.Logger
	respond  utils.Responder
}

// New 创建问答处理器
func New(answerer Answerer, logger *zap.Logger) *Handler {
	if answerer == nil {
		answerer = EchoAnswerer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		answerer: answerer,
		logger:   logger,
		respond:  utils.NewResponder(logger),
	}
}

// RegisterRoutes 注册问答相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post(askService.DefaultPath, h.handleAsk)
}

// handleAsk 回答一个问题
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload askService.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := normalizeQuestion(payload.Question)
	if question == "" {
		h.respond.Error(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.answerer.Answer(r.Context(), question)
	if err != nil {
		h.logger.Warn("answer failed", zap.String("question", question), zap.Error(err))
		h.respond.Error(w, http.StatusInternalServerError, "failed to answer question")
		return
	}

	h.respond.JSON(w, http.StatusOK, map[string]string{"response": answer})
}
