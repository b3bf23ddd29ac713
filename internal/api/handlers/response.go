package handlers

import (
	"pantry-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestID 取得本次請求的 ID
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// RespondError 依錯誤類型回傳對應狀態碼與 ErrorResponse
func RespondError(c *gin.Context, err error) {
	status, body := common.StatusOf(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("code", body.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", RequestID(c)),
	}
	if status >= 500 {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求被拒絕", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// BadRequest 回傳 400 與訊息
func BadRequest(c *gin.Context, message string) {
	RespondError(c, common.NewValidationError(message))
}
