package agent

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"worldbridge/internal/domain"
	"worldbridge/pkg/api"
	"worldbridge/pkg/logger"
)

// Bot представляет собой "актора-компьютера" (Headless Agent).
// Он живет в своей горутине, со своим медленным темпом принятия решений,
// и общается с миром только через Bridge: pull снапшотов, poll событий, цели движения.
//
// Жизненный цикл:
//  1. NewBot -> Мост к уже зарегистрированному актору и маршрут патруля.
//  2. Run -> Запускает прием событий: он работает всегда, в том числе на маршруте,
//     критическое событие сбрасывает оставшиеся шаги.
//  3. Ждет сигнала простоя от цикла симуляции (или снятия актора с шины).
//  4. "Думает" ThinkDelay (имитация медленного внешнего источника решений).
//  5. Берет свежий снапшот и ставит следующую точку патруля.
type Bot struct {
	io    *Bridge
	route []domain.Cell
	next  int
	think time.Duration
	log   *logrus.Entry
}

func NewBot(io *Bridge, route []domain.Cell, think time.Duration) *Bot {
	return &Bot{
		io:    io,
		route: route,
		think: think,
		log:   logger.ForActor(io.ID().String()),
	}
}

// Run запускает цикл жизни бота. Возвращается при отмене ctx
// или когда актора убрали с шины.
func (b *Bot) Run(ctx context.Context) error {
	b.log.WithField("route", b.route).Info("Bot started")
	defer b.log.Info("Bot shut down")

	ctx, cancel := context.WithCancel(ctx)
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		b.pumpEvents(ctx)
	}()
	defer func() {
		cancel()
		<-pumpDone
	}()

	if len(b.route) == 0 {
		select {
		case <-ctx.Done():
		case <-b.io.Removed():
		}
		return nil
	}

	for {
		// --- ШАГ 1: ЖДЕМ ПРОСТОЯ ---
		select {
		case <-ctx.Done():
			return nil
		case <-b.io.Removed():
			b.log.Warn("Actor is no longer registered, stopping")
			return nil
		case <-b.io.Idle():
		}
		// Сигнал мог остаться с прошлого тика, когда маршрут уже стоял в очереди
		if b.io.Busy() {
			continue
		}

		// --- ШАГ 2: МЕДЛЕННОЕ РЕШЕНИЕ ---
		select {
		case <-ctx.Done():
			return nil
		case <-b.io.Removed():
			b.log.Warn("Actor is no longer registered, stopping")
			return nil
		case <-time.After(b.think):
		}

		// --- ШАГ 3: СНАПШОТ И НОВАЯ ЦЕЛЬ ---
		snap, err := b.io.RequestSnapshot()
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				b.log.Warn("Actor is no longer registered, stopping")
				return nil
			}
			b.log.WithError(err).Error("Snapshot request failed")
			continue
		}
		if !api.IsKnownVersion(snap.Version) {
			b.log.WithField("version", snap.Version).Warn("Unknown snapshot version, proceeding best-effort")
		}

		target := b.decide(snap)
		n, err := b.io.MoveToCell(target.X, target.Y)
		if err != nil {
			b.log.WithError(err).Error("Move intent rejected")
			continue
		}
		b.log.WithFields(logrus.Fields{
			"from":  snap.Cell,
			"to":    target,
			"steps": n,
			"seq":   snap.Sequence,
		}).Info("Heading to waypoint")
	}
}

// decide выбирает следующую точку маршрута. Если актор уже стоит в ней, берет следующую.
func (b *Bot) decide(snap api.Snapshot) domain.Cell {
	here := domain.Cell{X: snap.Cell.X(), Y: snap.Cell.Y()}
	for i := 0; i < len(b.route); i++ {
		target := b.route[b.next]
		b.next = (b.next + 1) % len(b.route)
		if target != here {
			return target
		}
	}
	return here
}

// pumpEvents разбирает события по мере поступления, пока не отменен ctx
// или актор не снят с шины.
func (b *Bot) pumpEvents(ctx context.Context) {
	for {
		ev, ok := b.io.NextEvent(ctx)
		if !ok {
			return
		}
		b.handleEvent(ev)
	}
}

func (b *Bot) handleEvent(ev api.Event) {
	entry := b.log.WithFields(logrus.Fields{
		"kind":     ev.Kind,
		"priority": ev.Priority,
		"seq":      ev.Sequence,
	})

	if !api.IsKnownVersion(ev.Version) {
		entry.WithField("version", ev.Version).Warn("Unknown event version, proceeding best-effort")
	}

	switch ev.Kind {
	case api.EventZoneAlert:
		entry.WithField("area", ev.Payload["area"]).Infof("Zone %v", ev.Payload["action"])
	case api.EventActorInteraction:
		entry.WithField("other", ev.Payload["other"]).Info("Met another actor")
	case api.EventWorldChange:
		entry.WithField("change", ev.Payload["change"]).Info("World changed")
	default:
		entry.Debug("Event received")
	}

	if ev.Priority == api.PriorityCritical {
		if dropped := b.io.CancelMovement(); dropped > 0 {
			entry.WithField("dropped_steps", dropped).Warn("Critical event, route cancelled")
		}
	}
}

// PatrolRoute - маршрут по умолчанию: центры зон и обратно к старту.
func PatrolRoute(start domain.Cell, areas []domain.Area) []domain.Cell {
	route := make([]domain.Cell, 0, len(areas)+1)
	for _, area := range areas {
		route = append(route, domain.Cell{
			X: (area.Rect.X1 + area.Rect.X2) / 2,
			Y: (area.Rect.Y1 + area.Rect.Y2) / 2,
		})
	}
	return append(route, start)
}
