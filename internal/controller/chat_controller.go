// FILE: internal/controller/chat_controller.go
package controller

import (
	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/pkg/serverutils"
	"ai-learning-assistant-be/internal/service"
	"ai-learning-assistant-be/pkg/chat/state"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	auth    fiber.Handler
}

func NewChatController(service service.IChatService, auth fiber.Handler) IChatController {
	return &chatController{service: service, auth: auth}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(c.auth)
	h.Get("", c.List)
	h.Post("/ask", c.Ask)
	h.Post("/save", c.Save)
	h.Get("/:id", c.Show)
	h.Put("/:id/rename", c.Rename)
	h.Delete("/:id", c.Delete)
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success ask", res))
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	res, err := c.service.GetChats(ctx.UserContext(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chats", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetChat(ctx.UserContext(), serverutils.UserId(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat", res))
}

func (c *chatController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := serverutils.UserId(ctx)
	messages := lo.Map(req.Messages, func(m dto.MessageDto, _ int) entity.ChatMessage {
		return entity.ChatMessage{Sender: entity.Sender(m.Sender), Text: m.Text}
	})

	var cmd state.SaveCommand = state.CreateConversation{OwnerID: userId, Messages: messages}
	if req.ChatId != nil && *req.ChatId != uuid.Nil {
		cmd = state.ReplaceMessages{ConversationID: *req.ChatId, OwnerID: userId, Messages: messages}
	}

	res, err := c.service.Save(ctx.UserContext(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat saved", res))
}

func (c *chatController) Rename(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RenameChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Rename(ctx.UserContext(), serverutils.UserId(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat renamed", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), serverutils.UserId(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat deleted", nil))
}
