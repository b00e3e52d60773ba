package httpapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/memobot/pkg/log"
)

const (
	chatErrorDetail    = "Error generating bot response"
	imageErrorDetail   = "Error processing the image"
	historyErrorDetail = "Error fetching history"
)

type Handler struct {
	svc         ChatService
	defaultUser string
}

func NewHandler(svc ChatService, defaultUser string) *Handler {
	return &Handler{
		svc:         svc,
		defaultUser: defaultUser,
	}
}

type chatRequest struct {
	Message *string `json:"message" binding:"required"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

func (h *Handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	reply, err := h.svc.Reply(ctx, h.userID(c), *req.Message)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("error in chat API")
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: chatErrorDetail})
		return
	}

	c.JSON(http.StatusOK, chatResponse{Response: reply})
}

func (h *Handler) Image(c *gin.Context) {
	ctx := c.Request.Context()
	logger := log.FromCtx(ctx)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: "field 'file' is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error().Err(err).Msg("error opening uploaded image")
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: imageErrorDetail})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		logger.Error().Err(err).Msg("error reading uploaded image")
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: imageErrorDetail})
		return
	}

	reply, err := h.svc.DescribeImage(ctx, data)
	if err != nil {
		logger.Error().Err(err).Str("filename", fh.Filename).Msg("error processing image")
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: imageErrorDetail})
		return
	}

	c.JSON(http.StatusOK, chatResponse{Response: reply})
}

// History renders each turn as [id, user, bot].
func (h *Handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	turns, err := h.svc.History(ctx, h.userID(c))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("error fetching history")
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: historyErrorDetail})
		return
	}

	rows := make([][]any, 0, len(turns))
	for _, t := range turns {
		rows = append(rows, []any{t.ID, t.User, t.Bot})
	}

	c.JSON(http.StatusOK, gin.H{"history": rows})
}

func (h *Handler) userID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(userHeader)); id != "" {
		return id
	}
	return h.defaultUser
}
