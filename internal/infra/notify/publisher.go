package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher публикует события изменения расписания в redis pub/sub
type RedisPublisher struct {
	client *redis.Client
	log    Logger
}

// NewRedisPublisher создает publisher поверх готового клиента redis
func NewRedisPublisher(client *redis.Client, log Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		log:    log,
	}
}

// ScheduleChanged публикует событие в канал schedule.changed
func (p *RedisPublisher) ScheduleChanged(ctx context.Context, event ScheduleChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: ScheduleChanged - failed to marshal event: %v", ErrPublish, err)
	}

	if err := p.client.Publish(ctx, ChannelScheduleChanged, payload).Err(); err != nil {
		return fmt.Errorf("%w: ScheduleChanged - owner_id=%d: %v", ErrPublish, event.OwnerID, err)
	}

	p.log.Info("Published schedule change: owner_id=%d date=%s reason=%s", event.OwnerID, event.Date, event.Reason)
	return nil
}

// NopPublisher заглушка, когда redis выключен в конфигурации
type NopPublisher struct{}

// ScheduleChanged ничего не делает
func (NopPublisher) ScheduleChanged(_ context.Context, _ ScheduleChangedEvent) error {
	return nil
}
