package relay

import (
	"fmt"
	"html"

	"github.com/ykvlv/relay-bot/internal/domain"
)

const (
	notSpecified   = "Не указано"
	noUsername     = "Не указан"
	textHeader     = "<b>Новое сообщение от пользователя:</b>"
	textBodyHeader = "<b>Сообщение:</b>"
	mediaHeaderFmt = "<b>Новое %s от пользователя:</b>"
)

var kindTitles = map[domain.Kind]string{
	domain.KindVoice:    "Голосовое сообщение",
	domain.KindDocument: "Документ",
	domain.KindPhoto:    "Фото",
	domain.KindVideo:    "Видео",
	domain.KindFile:     "Файл",
}

// UserInfo renders the identity block shown to the operator.
// Every user-supplied field is HTML-escaped.
func UserInfo(u domain.User) string {
	return fmt.Sprintf("Имя: %s\nФамилия: %s\nНикнейм: @%s\nID: %d",
		orDefault(u.FirstName, notSpecified),
		orDefault(u.LastName, notSpecified),
		orDefault(u.Username, noUsername),
		int64(u.ID),
	)
}

// TextNotice is the operator message for a text payload.
func TextNotice(u domain.User, text string) string {
	return textHeader + "\n" + UserInfo(u) + "\n\n" + textBodyHeader + "\n" + html.EscapeString(text)
}

// MediaNotice precedes the forwarded copy of a media payload.
func MediaNotice(u domain.User, kind domain.Kind) string {
	title, ok := kindTitles[kind]
	if !ok {
		title = kindTitles[domain.KindFile]
	}
	return fmt.Sprintf(mediaHeaderFmt, title) + "\n" + UserInfo(u)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return html.EscapeString(v)
}
