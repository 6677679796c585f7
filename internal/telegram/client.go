package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ykvlv/relay-bot/internal/domain"
)

// BotAPI is the part of *tgbotapi.BotAPI the client uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client sends messages to the operator and to users.
// It satisfies relay.Operator and scheduler.Sender.
type Client struct {
	bot     BotAPI
	adminID int64
}

// NewClient creates a Client that relays to the operator chat adminID.
func NewClient(bot BotAPI, adminID int64) *Client {
	return &Client{bot: bot, adminID: adminID}
}

// SendToOperator sends an HTML-formatted notice to the operator.
func (c *Client) SendToOperator(ctx context.Context, html string) error {
	msg := tgbotapi.NewMessage(c.adminID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	return c.send(ctx, msg)
}

// ForwardToOperator forwards the original message to the operator.
func (c *Client) ForwardToOperator(ctx context.Context, fromChatID int64, messageID int) error {
	return c.send(ctx, tgbotapi.NewForward(c.adminID, fromChatID, messageID))
}

// SendAck sends the "received" acknowledgment to a user.
func (c *Client) SendAck(ctx context.Context, user domain.UserID) error {
	return c.send(ctx, tgbotapi.NewMessage(int64(user), ackText))
}

// SendWelcome answers /start.
func (c *Client) SendWelcome(ctx context.Context, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, welcomeText)
	msg.ParseMode = tgbotapi.ModeHTML
	return c.send(ctx, msg)
}

type sendResult struct {
	err error
}

// send runs the blocking Bot API call and gives up when ctx is done.
// The request itself keeps running until the HTTP client returns.
func (c *Client) send(ctx context.Context, msg tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ch := make(chan sendResult, 1)
	go func() {
		_, err := c.bot.Send(msg)
		ch <- sendResult{err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return fmt.Errorf("telegram send: %w", res.err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
