package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ykvlv/relay-bot/internal/config"
	"github.com/ykvlv/relay-bot/internal/relay"
	"github.com/ykvlv/relay-bot/internal/scheduler"
	"github.com/ykvlv/relay-bot/internal/store"
	"github.com/ykvlv/relay-bot/internal/telegram"
)

const shutdownTimeout = 5 * time.Second

var errUpdatesClosed = errors.New("telegram updates channel closed")

type App struct {
	cfg config.Config
	log *zap.Logger
	bot *tgbotapi.BotAPI

	// in-flight update handlers
	handlers sync.WaitGroup
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	return &App{cfg: cfg, log: log, bot: bot}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting relay-bot",
		zap.String("bot", a.bot.Self.UserName),
		zap.Int64("adminID", a.cfg.AdminID),
		zap.Duration("ackDelay", a.cfg.AckDelay),
		zap.String("http", a.cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	defer func() { _ = repo.Close() }()
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	client := telegram.NewClient(a.bot, a.cfg.AdminID)
	sched := scheduler.New(a.cfg.AckDelay,
		&journaledSender{next: client, journal: repo, log: a.log.Named("journal")},
		a.log.Named("scheduler"),
		scheduler.WithSendTimeout(a.cfg.SendTimeout),
	)
	rl := relay.New(client, sched, a.log.Named("relay"),
		relay.WithJournal(repo),
		relay.WithTimeout(a.cfg.SendTimeout),
	)
	router := telegram.NewRouter(rl, client, a.log.Named("telegram"), a.cfg.SendTimeout)

	httpSrv := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      newMux(sched.Pending, repo, a.log.Named("http")),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shCtx); err != nil {
			a.log.Warn("http server shutdown error", zap.Error(err))
		}
		return nil
	})

	g.Go(func() error {
		return a.pollUpdates(gctx, router)
	})

	runErr := g.Wait()
	if runErr != nil {
		a.log.Error("run stopped", zap.Error(runErr))
	} else {
		a.log.Info("shutdown signal received")
	}

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := waitGroup(shCtx, &a.handlers); err != nil {
		a.log.Warn("update handlers still running", zap.Error(err))
	}
	if err := sched.Close(shCtx); err != nil {
		a.log.Warn("scheduler close", zap.Error(err))
	}
	return runErr
}

// pollUpdates handles each update on its own goroutine so one user's slow
// Telegram call never delays another user.
func (a *App) pollUpdates(ctx context.Context, router *telegram.Router) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	// Handlers outlive the poll loop so a message being relayed at shutdown
	// still reaches the operator.
	hctx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return nil
		case upd, ok := <-updCh:
			if !ok {
				return errUpdatesClosed
			}
			a.handlers.Add(1)
			go func() {
				defer a.handlers.Done()
				router.HandleUpdate(hctx, upd)
			}()
		}
	}
}

func waitGroup(ctx context.Context, wg *sync.WaitGroup) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
