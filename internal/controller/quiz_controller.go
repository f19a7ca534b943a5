// FILE: internal/controller/quiz_controller.go
package controller

import (
	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/pkg/serverutils"
	"ai-learning-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuizController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type quizController struct {
	service service.IQuizService
	auth    fiber.Handler
}

func NewQuizController(service service.IQuizService, auth fiber.Handler) IQuizController {
	return &quizController{service: service, auth: auth}
}

func (c *quizController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/quiz/v1")
	h.Use(c.auth)
	h.Get("/:chatId", c.Generate)
	h.Post("/:chatId/submit", c.Submit)
}

func (c *quizController) Generate(ctx *fiber.Ctx) error {
	chatId, err := uuidParam(ctx, "chatId")
	if err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.UserContext(), serverutils.UserId(ctx), chatId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz generated", res))
}

func (c *quizController) Submit(ctx *fiber.Ctx) error {
	chatId, err := uuidParam(ctx, "chatId")
	if err != nil {
		return err
	}

	var req dto.SubmitQuizRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), serverutils.UserId(ctx), chatId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz submitted", res))
}
