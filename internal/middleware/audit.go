package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
	"go.uber.org/zap"
)

const maxAuditedBody = 1000

// AuditMiddleware records every successful POST/PUT/DELETE under /api in the audit log
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.Request.URL.Path

		if !isWriteMethod(method) || !strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		auditCtx := utils.AuditContext{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString(RequestIDKey),
		}
		if claims := GetClaims(c); claims != nil {
			auditCtx.UserID = claims.ID
			auditCtx.Role = claims.Role
		}

		metadata := map[string]string{
			"endpoint":        path,
			"method":          method,
			"response_status": strconv.Itoa(status),
		}
		if body := sanitizedBody(bodyBytes); body != "" {
			metadata["request_body"] = body
		}

		action := auditAction(method, path)
		resource := auditResource(path)
		if err := utils.LogAuditEvent(c.Request.Context(), auditCtx, action, resource, c.Param("id"), nil, metadata); err != nil {
			observability.Logger().Warn("failed to log audit event",
				zap.Error(err),
				zap.String("endpoint", path),
				zap.String("method", method))
		}
	}
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// auditAction maps the request to an audit action
func auditAction(method, path string) string {
	switch {
	case strings.HasSuffix(path, "/auth/login"):
		return utils.AuditActionLogin
	case strings.HasSuffix(path, "/auth/registrar"):
		return utils.AuditActionRegister
	case method == http.MethodPost:
		return utils.AuditActionCreate
	case method == http.MethodDelete:
		return utils.AuditActionDelete
	default:
		return utils.AuditActionUpdate
	}
}

// auditResource maps the request path to the audited resource
func auditResource(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/membros/") && strings.HasSuffix(path, "/presenca"):
		return utils.AuditResourcePresenca
	case strings.HasPrefix(path, "/api/membros"):
		return utils.AuditResourceMembro
	case strings.HasPrefix(path, "/api/presencas"):
		return utils.AuditResourcePresenca
	case strings.HasPrefix(path, "/api/auth"):
		return utils.AuditResourceUsuario
	}
	return "unknown"
}

// sanitizedBody redacts credentials from a JSON body and truncates it. Bodies
// that are not JSON are not recorded.
func sanitizedBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	sanitized, err := json.Marshal(utils.SanitizeAuditData(payload))
	if err != nil {
		return ""
	}

	out := string(sanitized)
	if len(out) > maxAuditedBody {
		out = truncateUTF8(out, maxAuditedBody) + "... (truncated)"
	}
	return out
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
