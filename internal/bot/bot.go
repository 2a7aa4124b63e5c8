// Package bot is the Telegram chat surface: search by free text, pick a
// product from an inline keyboard, receive the per-store price report as a
// workbook attachment.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lentabot/internal/models"
	"lentabot/internal/report"
)

const (
	searchButtonText = "🔍 Искать в Ленте"
	maxButtonLabel   = 64
	maxShownProducts = 10
	callbackPrefix   = "product:"

	// maxRememberedNames bounds the id-to-name cache. When it fills up the
	// cache starts over; callbacks for evicted entries fall back to the
	// generic report title.
	maxRememberedNames = 1000
)

type Scraper interface {
	SearchProducts(ctx context.Context, query string) []models.Product
	StoreOffers(ctx context.Context, productID string) []models.StoreOffer
}

type Bot struct {
	api     *tgbotapi.BotAPI
	scraper Scraper
	logger  *slog.Logger

	// Callback data only carries the product id; the human-readable name
	// shown in the report is remembered from the search that offered it.
	mu    sync.Mutex
	names map[string]string
}

func New(token string, debug bool, scraper Scraper, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	api.Debug = debug

	return &Bot{
		api:     api,
		scraper: scraper,
		logger:  logger.With("component", "bot"),
		names:   make(map[string]string),
	}, nil
}

// Run consumes the update long-poll loop until ctx is cancelled. A failure
// while handling one update never takes the loop down.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30

	updates := b.api.GetUpdatesChan(updateCfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand() && msg.Command() == "start":
		b.sendStart(msg.Chat.ID)
	case msg.Text == searchButtonText:
		b.send(msg.Chat.ID, "Введите название товара для поиска:")
	case msg.Text != "" && !strings.HasPrefix(msg.Text, "/"):
		b.handleSearch(ctx, msg.Chat.ID, msg.Text)
	}
}

func (b *Bot) sendStart(chatID int64) {
	reply := tgbotapi.NewMessage(chatID,
		"Привет! Я помогу найти товары в Ленте и сравнить цены по магазинам.\n\n"+
			"Нажми кнопку ниже, чтобы начать поиск.")
	reply.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(searchButtonText)),
	)

	if _, err := b.api.Send(reply); err != nil {
		b.logger.Error("failed to send start message", "error", err)
	}
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, query string) {
	status := b.send(chatID, "🔍 Ищу товары...")

	products := b.scraper.SearchProducts(ctx, query)
	if len(products) == 0 {
		b.edit(chatID, status, "Товары не найдены. Попробуйте изменить запрос.")
		return
	}

	shown := products
	if len(shown) > maxShownProducts {
		shown = shown[:maxShownProducts]
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(shown))
	for _, p := range shown {
		b.rememberName(p)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(buttonLabel(p), callbackPrefix+p.ID),
		))
	}

	text := fmt.Sprintf("Найдено товаров: %d\nВыберите товар для получения цен:", len(products))
	edit := tgbotapi.NewEditMessageText(chatID, status, text)
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	edit.ReplyMarkup = &markup

	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("failed to send product list", "error", err)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", "error", err)
	}

	productID, ok := parseCallback(cb.Data)
	if !ok || cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	status := b.send(chatID, "⏳ Собираю цены по магазинам...")

	offers := b.scraper.StoreOffers(ctx, productID)
	if len(offers) == 0 {
		b.edit(chatID, status, "Не удалось получить цены для этого товара.")
		return
	}

	name := b.lookupName(productID)

	data, err := report.Build(name, offers)
	if err != nil {
		b.logger.Error("failed to build report", "error", err, "product_id", productID)
		b.edit(chatID, status, "Не удалось сформировать отчёт.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fileName(name),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("📊 Цены для товара: %s\nНайдено магазинов: %d", name, len(offers))

	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("failed to send report document", "error", err)
		b.edit(chatID, status, "Не удалось отправить отчёт.")
		return
	}

	b.edit(chatID, status, fmt.Sprintf("Готово! Магазинов с ценами: %d", len(offers)))
}

func (b *Bot) rememberName(p models.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.names[p.ID]; !exists && len(b.names) >= maxRememberedNames {
		b.names = make(map[string]string, maxRememberedNames)
	}
	b.names[p.ID] = p.Name
}

func (b *Bot) lookupName(productID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name, ok := b.names[productID]; ok && name != "" {
		return name
	}
	return "Товар"
}

// send posts a plain message and returns its id for later edits. A zero id
// means the send failed; edit ignores it.
func (b *Bot) send(chatID int64, text string) int {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		b.logger.Error("failed to send message", "error", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	if messageID == 0 {
		b.send(chatID, text)
		return
	}
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.logger.Warn("failed to edit message", "error", err)
	}
}

// buttonLabel renders "name volume" truncated to Telegram's 64-character
// button limit, counted in runes.
func buttonLabel(p models.Product) string {
	label := p.Name
	if p.Volume != "" {
		label += " " + p.Volume
	}

	runes := []rune(label)
	if len(runes) > maxButtonLabel {
		label = string(runes[:maxButtonLabel-3]) + "..."
	}
	return label
}

func parseCallback(data string) (string, bool) {
	id, found := strings.CutPrefix(data, callbackPrefix)
	if !found || id == "" {
		return "", false
	}
	return id, true
}

func fileName(name string) string {
	runes := []rune(name)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes) + ".xlsx"
}
