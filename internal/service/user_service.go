// FILE: internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/dto"
	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/pkg/apperror"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/internal/repository/specification"
	"ai-learning-assistant-be/internal/repository/unitofwork"
	"ai-learning-assistant-be/pkg/events"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadAvatar(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.UploadAvatarResponse, error)
	RecordScore(ctx context.Context, userId uuid.UUID, req *dto.RecordScoreRequest) (*dto.ProgressResponse, error)
	RecordAttempt(ctx context.Context, userId uuid.UUID, chatId *uuid.UUID, score, total int) (*dto.ProgressResponse, error)
	GetProgress(ctx context.Context, userId uuid.UUID) (*dto.ProgressResponse, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	publisher      events.Publisher
	logger         logger.ILogger
	uploadDir      string
	maxAvatarBytes int64
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	log logger.ILogger,
	uploadDir string,
	maxAvatarBytes int64,
) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		publisher:      publisher,
		logger:         log,
		uploadDir:      uploadDir,
		maxAvatarBytes: maxAvatarBytes,
	}
}

// AverageScore is total/taken with two decimals, "0.00" before the first quiz.
func AverageScore(totalScore, quizzesTaken int) string {
	if quizzesTaken <= 0 {
		return decimal.Zero.StringFixed(2)
	}
	return decimal.NewFromInt(int64(totalScore)).
		Div(decimal.NewFromInt(int64(quizzesTaken))).
		StringFixed(2)
}

func toProfile(user *entity.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		Id:           user.Id,
		Email:        user.Email,
		Username:     user.Username,
		ProfilePic:   user.ProfilePic,
		QuizzesTaken: user.QuizzesTaken,
		AvgScore:     AverageScore(user.TotalScore, user.QuizzesTaken),
	}
}

func (s *userService) findUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, specs ...specification.Specification) (*entity.User, error) {
	specs = append([]specification.Specification{specification.ByID{ID: userId}}, specs...)
	user, err := uow.UserRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.findUser(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}
	res := toProfile(user)
	return &res, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	user.Username = strings.TrimSpace(req.Username)
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Storage(err)
	}

	res := toProfile(user)
	return &res, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.UploadAvatarResponse, error) {
	if len(data) == 0 {
		return nil, apperror.InputInvalid("image file is required")
	}
	if int64(len(data)) > s.maxAvatarBytes {
		return nil, apperror.InputInvalid(fmt.Sprintf("file too large (max %d bytes)", s.maxAvatarBytes))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apperror.InputInvalid("profile picture must be an image")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	avatarDir := filepath.Join(s.uploadDir, "avatars")
	if err := os.MkdirAll(avatarDir, 0755); err != nil {
		return nil, apperror.Storage(err)
	}

	name := fmt.Sprintf("%s_%d%s", userId.String(), time.Now().UnixNano(), mtype.Extension())
	if err := os.WriteFile(filepath.Join(avatarDir, name), data, 0644); err != nil {
		return nil, apperror.Storage(err)
	}

	publicPath := "/uploads/avatars/" + name
	user.ProfilePic = &publicPath
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Storage(err)
	}

	s.logger.Info(constant.ModuleUser, "Profile picture updated", map[string]interface{}{
		"user_id":  userId.String(),
		"original": filename,
		"stored":   name,
	})
	return &dto.UploadAvatarResponse{ProfilePic: publicPath}, nil
}

func (s *userService) RecordScore(ctx context.Context, userId uuid.UUID, req *dto.RecordScoreRequest) (*dto.ProgressResponse, error) {
	if req.Total > 0 && req.Score > req.Total {
		return nil, apperror.InputInvalid("score cannot exceed total")
	}
	return s.RecordAttempt(ctx, userId, req.ChatId, req.Score, req.Total)
}

// RecordAttempt stores one attempt and bumps the user's counters atomically.
func (s *userService) RecordAttempt(ctx context.Context, userId uuid.UUID, chatId *uuid.UUID, score, total int) (*dto.ProgressResponse, error) {
	if score < 0 || total < 0 {
		return nil, apperror.InputInvalid("score must not be negative")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Storage(err)
	}
	defer uow.Rollback()

	user, err := s.findUser(ctx, uow, userId, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}

	user.QuizzesTaken++
	user.TotalScore += score
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Storage(err)
	}

	attempt := &entity.QuizAttempt{
		Id:     uuid.New(),
		UserId: userId,
		ChatId: chatId,
		Score:  score,
		Total:  total,
	}
	if err := uow.QuizAttemptRepository().Create(ctx, attempt); err != nil {
		return nil, apperror.Storage(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Storage(err)
	}

	data := map[string]interface{}{
		"user_id": userId.String(),
		"score":   score,
		"total":   total,
	}
	if chatId != nil {
		data["chat_id"] = chatId.String()
	}
	publish(ctx, s.publisher, s.logger, constant.ModuleUser, events.New(events.TypeQuizCompleted, data))

	return s.GetProgress(ctx, userId)
}

func (s *userService) GetProgress(ctx context.Context, userId uuid.UUID) (*dto.ProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	attempts, err := uow.QuizAttemptRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &dto.ProgressResponse{
		QuizzesTaken: user.QuizzesTaken,
		AvgScore:     AverageScore(user.TotalScore, user.QuizzesTaken),
		Progress: lo.Map(attempts, func(a *entity.QuizAttempt, _ int) dto.ProgressEntry {
			return dto.ProgressEntry{
				Score:  a.Score,
				Total:  a.Total,
				ChatId: a.ChatId,
				Date:   a.CreatedAt,
			}
		}),
	}, nil
}
