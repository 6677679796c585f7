package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ykvlv/relay-bot/internal/domain"
)

// UserFromTelegram copies the sender fields the operator sees.
func UserFromTelegram(u *tgbotapi.User) domain.User {
	return domain.User{
		ID:        domain.UserID(u.ID),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.UserName,
	}
}

// PayloadFromMessage classifies a message. Anything that is not text,
// voice, document, photo or video is a generic file.
func PayloadFromMessage(m *tgbotapi.Message) domain.Payload {
	p := domain.Payload{MessageID: m.MessageID}
	if m.Chat != nil {
		p.ChatID = m.Chat.ID
	}

	switch {
	case m.Text != "":
		p.Kind = domain.KindText
		p.Text = m.Text
	case m.Voice != nil:
		p.Kind = domain.KindVoice
	case m.Document != nil:
		p.Kind = domain.KindDocument
	case len(m.Photo) > 0:
		p.Kind = domain.KindPhoto
	case m.Video != nil:
		p.Kind = domain.KindVideo
	default:
		p.Kind = domain.KindFile
	}
	return p
}
