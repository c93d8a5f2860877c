package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	authdomain "moviebot-backend/internal/auth/domain"
	chatdomain "moviebot-backend/internal/chat/domain"
	"moviebot-backend/internal/chat/repository"
	"moviebot-backend/pkg/normalize"
	"moviebot-backend/pkg/tmdb"
)

// ErrEmptyMessage is returned when the inbound message is blank; nothing is
// persisted in that case.
var ErrEmptyMessage = errors.New("message cannot be empty")

// chatUsecase implements ChatUsecase interface
type chatUsecase struct {
	msgRepo   repository.MessageRepository
	recRepo   repository.RecommendationRepository
	chatRepo  repository.ChatRepository
	gateway   MovieGateway
	completer Completer
	region    string
	language  string
}

// NewChatUsecase creates a new instance of chatUsecase
func NewChatUsecase(
	msgRepo repository.MessageRepository,
	recRepo repository.RecommendationRepository,
	chatRepo repository.ChatRepository,
	gateway MovieGateway,
	completer Completer,
	region string,
	language string,
) ChatUsecase {
	if region == "" {
		region = "US"
	}
	if language == "" {
		language = "es"
	}
	return &chatUsecase{
		msgRepo:   msgRepo,
		recRepo:   recRepo,
		chatRepo:  chatRepo,
		gateway:   gateway,
		completer: completer,
		region:    region,
		language:  language,
	}
}

func (u *chatUsecase) HandleMessage(ctx context.Context, user *authdomain.User, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	// The user message is saved first and stays saved even if composing the
	// reply fails later in the turn.
	if err := u.msgRepo.Create(&chatdomain.Message{
		UserID:  user.ID,
		Author:  chatdomain.AuthorUser,
		Content: message,
	}); err != nil {
		return "", err
	}

	normalized := normalize.Clean(message)
	log.Printf("[CHAT] original: %q | normalized: %q", message, normalized)

	recommended, err := u.recRepo.RecommendedIDs(user.ID)
	if err != nil {
		return "", err
	}

	t := &turn{
		user:        user,
		original:    message,
		normalized:  normalized,
		recommended: recommended,
	}

	reply := u.route(ctx, t)
	if reply == "" {
		reply = defaultReply
	}

	for i := range t.pending {
		if err := u.recRepo.Create(&t.pending[i]); err != nil {
			return "", err
		}
	}

	if err := u.msgRepo.Create(&chatdomain.Message{
		UserID:  user.ID,
		Author:  chatdomain.AuthorAssistant,
		Content: reply,
	}); err != nil {
		return "", err
	}

	return reply, nil
}

func (u *chatUsecase) Transcript(userID string) ([]*chatdomain.Message, error) {
	return u.msgRepo.FindByUserID(userID)
}

func (u *chatUsecase) ClearChat(userID string) error {
	return u.chatRepo.ClearChat(userID)
}

// Landing supplies the public landing page: banner movies plus a carousel
// pulled from a later page of the same listing so the two do not repeat.
func (u *chatUsecase) Landing() (popular, carousel []tmdb.Banner) {
	popular = u.gateway.Popular(6, u.region, u.language, 1)
	carousel = u.gateway.CarouselBanners(5, u.region, u.language, 2)
	return popular, carousel
}
