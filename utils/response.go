package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the standard API envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// Stable machine-readable error codes. The boundary maps each to exactly one
// HTTP status; clients branch on the code, not the message.
const (
	CodeLoginRequired            = "LOGIN_REQUIRED"
	CodeSubscriptionRequired     = "SUBSCRIPTION_REQUIRED"
	CodePaidSubscriptionRequired = "PAID_SUBSCRIPTION_REQUIRED"
	CodeExpired                  = "EXPIRED"
	CodeSelfSubscribeForbidden   = "SELF_SUBSCRIBE_FORBIDDEN"
	CodeNotCreator               = "NOT_CREATOR"
	CodeNotFoundSubscribe        = "NOT_FOUND_SUBSCRIBE"
	CodeCannotDeleteNotExpired   = "CANNOT_DELETE_NOT_EXPIRED"
	CodeAlreadyPaid              = "ALREADY_PAID"
	CodeAmountMismatch           = "AMOUNT_MISMATCH"
	CodeConfirmFailed            = "CONFIRM_FAILED"
	CodeInvalidKey               = "INVALID_KEY"
	CodeAlreadyReported          = "ALREADY_REPORTED"
	CodeCannotReportSelf         = "CANNOT_REPORT_SELF"
	CodeNotReportedObject        = "NOT_REPORTED_OBJECT"
	CodePostNotFound             = "POST_NOT_FOUND"
	CodeCommentNotFound          = "COMMENT_NOT_FOUND"
	CodeForbidden                = "FORBIDDEN"
	CodeNotFound                 = "NOT_FOUND"
	CodeConflict                 = "CONFLICT"
	CodeInvalidInput             = "INVALID_INPUT"
	CodeReplyDepthExceeded       = "REPLY_DEPTH_EXCEEDED"
)

func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// SendErrorCode sends an error carrying a stable code alongside the message.
func SendErrorCode(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

// ValidateRequestBody binds the JSON body and answers 400 on failure.
func ValidateRequestBody(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		SendErrorCode(c, 400, CodeInvalidInput, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
