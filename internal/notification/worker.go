package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/internal/integrations/notifyservice"
)

// Worker фоновый воркер напоминаний об истечении абонементов
//
// Раз в interval обходит два окна: абонементы, истекающие в ближайшие
// expiringDays дней, и абонементы, истёкшие за последние expiredDays дней.
// Отправка троттлится rate limiter'ом, чтобы не перегружать NotifyService
type Worker struct {
	subRepo      SubscriptionRepository
	notifyClient NotifyClient
	logger       Logger

	interval     time.Duration
	expiringDays int
	expiredDays  int
	limiter      *rate.Limiter

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// defaultRatePerMinute используется, когда лимит отправок не задан
const defaultRatePerMinute = 20

// NewWorker создает новый воркер напоминаний
// ratePerMinute ограничивает число отправок в минуту
func NewWorker(
	subRepo SubscriptionRepository,
	notifyClient NotifyClient,
	logger Logger,
	interval time.Duration,
	expiringDays int,
	expiredDays int,
	ratePerMinute int,
) *Worker {
	if ratePerMinute <= 0 {
		ratePerMinute = defaultRatePerMinute
	}

	return &Worker{
		subRepo:      subRepo,
		notifyClient: notifyClient,
		logger:       logger,
		interval:     interval,
		expiringDays: expiringDays,
		expiredDays:  expiredDays,
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), 1),
	}
}

// Start запускает фоновый цикл воркера
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info("Notification worker started: interval=%s, expiring_days=%d, expired_days=%d",
		w.interval, w.expiringDays, w.expiredDays)
}

// Stop останавливает воркер и дожидается завершения текущего цикла
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.logger.Info("Notification worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Первый проход сразу при старте, не дожидаясь первого тика
	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) {
	expiring, err := w.subRepo.GetExpiringWithin(ctx, w.expiringDays)
	if err != nil {
		w.logger.Error("Notification cycle - failed to load expiring subscriptions: %v", err)
	} else {
		w.dispatch(ctx, expiring, notifyservice.KindExpiringSoon)
	}

	expired, err := w.subRepo.GetExpiredWithin(ctx, w.expiredDays)
	if err != nil {
		w.logger.Error("Notification cycle - failed to load expired subscriptions: %v", err)
	} else {
		w.dispatch(ctx, expired, notifyservice.KindExpired)
	}
}

func (w *Worker) dispatch(ctx context.Context, notices []*domain.ExpiryNotice, kind string) {
	sent := 0
	degraded := 0

	for _, notice := range notices {
		if err := w.limiter.Wait(ctx); err != nil {
			// Контекст отменён при остановке воркера
			return
		}

		msg := buildMessage(notice, kind)
		if err := w.notifyClient.SendWithGracefulDegradation(ctx, msg); err != nil {
			degraded++
			continue
		}
		sent++
	}

	if len(notices) > 0 {
		w.logger.Info("Notification cycle - kind=%s: sent=%d, degraded=%d, total=%d",
			kind, sent, degraded, len(notices))
	}
}

func buildMessage(notice *domain.ExpiryNotice, kind string) *notifyservice.Message {
	var text string
	switch kind {
	case notifyservice.KindExpired:
		text = fmt.Sprintf(
			"%s, ваш абонемент на место %d (%s) истёк %s. Продлите его, чтобы сохранить место за собой.",
			notice.StudentName, notice.SeatID, notice.TimeslotName,
			notice.EndDate.Format(domain.DateFormat))
	default:
		text = fmt.Sprintf(
			"%s, ваш абонемент на место %d (%s) истекает %s. Не забудьте продлить.",
			notice.StudentName, notice.SeatID, notice.TimeslotName,
			notice.EndDate.Format(domain.DateFormat))
	}

	return &notifyservice.Message{
		StudentID: notice.StudentID,
		Mobile:    notice.Mobile,
		Kind:      kind,
		Text:      text,
	}
}
