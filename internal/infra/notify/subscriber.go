package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Subscriber читает события изменения расписания из redis pub/sub.
// Подписка - единственный способ узнать об изменениях расписания извне,
// сервис не рассылает снапшоты слотов.
type Subscriber struct {
	client *redis.Client
	log    Logger
}

// NewSubscriber создает subscriber поверх готового клиента redis
func NewSubscriber(client *redis.Client, log Logger) *Subscriber {
	return &Subscriber{
		client: client,
		log:    log,
	}
}

// Listen блокирующе читает события из канала schedule.changed и вызывает
// handler для каждого. Возвращается при отмене контекста или закрытии
// соединения. Сообщения с некорректным payload пропускаются с warning.
func (s *Subscriber) Listen(ctx context.Context, handler func(ScheduleChangedEvent)) error {
	sub := s.client.Subscribe(ctx, ChannelScheduleChanged)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event ScheduleChangedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.log.Warn("Skipping malformed schedule event: %v", err)
				continue
			}

			handler(event)
		}
	}
}
