package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/usecase/run_reminder_sweep"
)

// defaultInterval период между проходами, если в конфиге не задан
const defaultInterval = 5 * time.Minute

// Sweeper интерфейс usecase одного прохода рассылки
type Sweeper interface {
	Execute(ctx context.Context, req *run_reminder_sweep.Request) (*run_reminder_sweep.Response, error)
}

// MetricsCollector интерфейс для метрик воркера
type MetricsCollector interface {
	ObserveSweep(result string, seconds float64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновый воркер рассылки напоминаний.
// Запускает проход по тикеру и передаёт в usecase текущее время;
// вся логика окон и дедупликации живёт в usecase
type Worker struct {
	sweeper  Sweeper
	metrics  MetricsCollector
	interval time.Duration
	logger   Logger
}

// NewWorker создает новый экземпляр воркера
func NewWorker(sweeper Sweeper, interval time.Duration, metrics MetricsCollector, logger Logger) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		sweeper:  sweeper,
		metrics:  metrics,
		interval: interval,
		logger:   logger,
	}
}

// Run запускает цикл воркера и блокируется до отмены контекста.
// Первый проход выполняется сразу, не дожидаясь первого тика
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("ReminderWorker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("ReminderWorker: stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick выполняет один проход рассылки
func (w *Worker) tick(ctx context.Context) {
	started := time.Now()

	resp, err := w.sweeper.Execute(ctx, &run_reminder_sweep.Request{
		Now:    time.Now(),
		TickID: uuid.New().String(),
	})
	if err != nil {
		w.logger.Error("ReminderWorker: sweep failed: %v", err)
		if w.metrics != nil {
			w.metrics.ObserveSweep("error", time.Since(started).Seconds())
		}
		return
	}

	if w.metrics != nil {
		w.metrics.ObserveSweep("ok", time.Since(started).Seconds())
	}

	w.logger.Info("ReminderWorker: sweep %s done, due=%d, sent=%d, failed=%d, skipped=%d",
		resp.TickID, resp.Due, resp.Sent, resp.Failed, resp.Skipped)
}
