// FILE: internal/controller/content_controller.go
package controller

import (
	"io"
	"strings"

	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/pkg/serverutils"
	"ai-learning-assistant-be/internal/service"
	"ai-learning-assistant-be/pkg/chat/content"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	SubmitText(ctx *fiber.Ctx) error
	SubmitDocument(ctx *fiber.Ctx) error
}

type contentController struct {
	service service.IContentService
	auth    fiber.Handler
}

func NewContentController(service service.IContentService, auth fiber.Handler) IContentController {
	return &contentController{service: service, auth: auth}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	h.Use(c.auth)
	h.Post("/text", c.SubmitText)
	h.Post("/document", c.SubmitDocument)
}

// contentCommand appends to chatId when given, otherwise starts a new chat.
func contentCommand(ownerId uuid.UUID, chatId *uuid.UUID, text string) content.Command {
	if chatId == nil || *chatId == uuid.Nil {
		return content.CreateConversation{OwnerID: ownerId, Text: text}
	}
	return content.AppendToConversation{ConversationID: *chatId, OwnerID: ownerId, Text: text}
}

func (c *contentController) SubmitText(ctx *fiber.Ctx) error {
	var req dto.SubmitTextRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), contentCommand(serverutils.UserId(ctx), req.ChatId, req.Text))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Content saved", res))
}

func (c *contentController) SubmitDocument(ctx *fiber.Ctx) error {
	var chatId *uuid.UUID
	if raw := strings.TrimSpace(ctx.FormValue("chat_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperror.InputInvalid("invalid chat_id")
		}
		chatId = &id
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return apperror.InputInvalid("no file uploaded")
	}
	f, err := file.Open()
	if err != nil {
		return apperror.InputInvalid("cannot read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apperror.InputInvalid("cannot read uploaded file")
	}

	text, err := c.service.ExtractDocument(ctx.UserContext(), file.Filename, data)
	if err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), contentCommand(serverutils.UserId(ctx), chatId, text))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document processed", res))
}
