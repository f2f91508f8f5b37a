package scan

import (
	"errors"
	"net/http"

	"healthscan-api/internal/core/advice"
	"healthscan-api/internal/core/label"
	"healthscan-api/internal/core/profile"
	"healthscan-api/internal/core/recommend"
	"healthscan-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecommendRequest 無狀態推薦請求
type RecommendRequest struct {
	Profile  *profile.HealthProfile `json:"profile"`
	Label    *label.Label           `json:"label,omitempty"`
	Category string                 `json:"category,omitempty"` // 覆寫類別判定
	TopK     int                    `json:"top_k,omitempty"`
}

// ChatRecommendRequest 會話式推薦請求：同 chat_id 重複呼叫即翻頁
type ChatRecommendRequest struct {
	ChatID   string                 `json:"chat_id,omitempty"` // 空值自動生成
	Profile  *profile.HealthProfile `json:"profile"`
	Label    *label.Label           `json:"label,omitempty"`
	Category string                 `json:"category,omitempty"`
	Reset    bool                   `json:"reset,omitempty"` // 捨棄舊會話重新開始
}

// AdviceRequest 標籤對比個人門檻請求
type AdviceRequest struct {
	Profile *profile.HealthProfile `json:"profile"`
	Label   *label.Label           `json:"label" binding:"required"`
}

// AdviceResponse 建議回應：逐項評估 + 萃取出的每份數值
type AdviceResponse struct {
	Advice  advice.Advice `json:"advice"`
	Metrics label.Metrics `json:"metrics"`
}

// Handler 掃描推薦處理程序
type Handler struct {
	recommendService *recommend.Service
}

// NewHandler 創建掃描推薦處理程序
func NewHandler(recommendService *recommend.Service) *Handler {
	return &Handler{recommendService: recommendService}
}

// HandleRecommend 無狀態替代品推薦
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.recommendService.Recommend(c.Request.Context(), req.Profile, req.Label, req.Category, req.TopK)
	if err != nil {
		h.writeRecommendError(c, requestID, err)
		return
	}

	common.LogInfo("推薦完成",
		zap.String("request_id", requestID),
		zap.String("category", result.Category),
		zap.Int("items", len(result.Items)),
	)
	c.JSON(http.StatusOK, result)
}

// HandleChatRecommend 會話式推薦：凍結快照後逐頁回傳
func (h *Handler) HandleChatRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req ChatRecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	chatID := req.ChatID
	if chatID == "" {
		chatID = common.GenerateUUID()
	}

	if req.Reset {
		if err := h.recommendService.Reset(c.Request.Context(), chatID); err != nil {
			common.LogWarn("會話重置失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("chat_id", chatID),
			)
		}
	}

	page, err := h.recommendService.RecommendPage(c.Request.Context(), chatID, req.Profile, req.Label, req.Category)
	if err != nil {
		h.writeRecommendError(c, requestID, err)
		return
	}

	common.LogInfo("會話式推薦完成",
		zap.String("request_id", requestID),
		zap.String("chat_id", chatID),
		zap.Int("items", len(page.Items)),
		zap.Bool("has_more", page.HasMore),
	)
	c.JSON(http.StatusOK, page)
}

// HandleChatReset 捨棄指定會話
func (h *Handler) HandleChatReset(c *gin.Context) {
	chatID := c.Param("chat_id")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id is required"})
		return
	}
	if err := h.recommendService.Reset(c.Request.Context(), chatID); err != nil {
		common.LogError("會話重置失敗",
			zap.Error(err),
			zap.String("chat_id", chatID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset", "chat_id": chatID})
}

// HandleAdvice 掃描標籤對比個人門檻
func (h *Handler) HandleAdvice(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	metrics := req.Label.ExtractMetrics()
	targets := profile.TargetsFor(req.Profile)
	result := advice.Evaluate(metrics, targets)

	common.LogInfo("標籤評估完成",
		zap.String("request_id", requestID),
		zap.String("overall", result.Overall),
	)
	c.JSON(http.StatusOK, AdviceResponse{Advice: result, Metrics: metrics})
}

// writeRecommendError 推薦失敗的統一錯誤回應
func (h *Handler) writeRecommendError(c *gin.Context, requestID string, err error) {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		common.LogWarn("推薦暫不可用",
			zap.String("request_id", requestID),
			zap.String("code", custom.Code),
		)
		c.JSON(custom.Status, gin.H{"error": custom.Message, "code": custom.Code})
		return
	}
	common.LogError("推薦失敗",
		zap.Error(err),
		zap.String("request_id", requestID),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed"})
}
