// FILE: internal/controller/user_controller.go
package controller

import (
	"io"

	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/pkg/serverutils"
	"ai-learning-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	UploadAvatar(ctx *fiber.Ctx) error
	RecordScore(ctx *fiber.Ctx) error
	GetProgress(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
	auth    fiber.Handler
}

func NewUserController(service service.IUserService, auth fiber.Handler) IUserController {
	return &userController{service: service, auth: auth}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(c.auth)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Post("/profile-pic", c.UploadAvatar)
	h.Post("/score", c.RecordScore)
	h.Get("/progress", c.GetProgress)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	res, err := c.service.GetProfile(ctx.UserContext(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.UserContext(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) UploadAvatar(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("profilePic")
	if err != nil {
		return apperror.InputInvalid("image file is required")
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

	res, err := c.service.UploadAvatar(ctx.UserContext(), serverutils.UserId(ctx), file.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile picture updated", res))
}

func (c *userController) RecordScore(ctx *fiber.Ctx) error {
	var req dto.RecordScoreRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RecordScore(ctx.UserContext(), serverutils.UserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Score recorded", res))
}

func (c *userController) GetProgress(ctx *fiber.Ctx) error {
	res, err := c.service.GetProgress(ctx.UserContext(), serverutils.UserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get progress", res))
}
