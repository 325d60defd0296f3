// Package events 提供进程内事件总线，供数据集缓存等事件的发布与订阅
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus 进程内事件总线（对外导出）
// 基于watermill gochannel实现，下游训练调度组件通过订阅消费事件
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NewStdLogger(false, false),
		),
	}
}

// Publish 发布事件到指定主题
// payload序列化为JSON作为消息体
func (b *Bus) Publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

// Subscribe 订阅指定主题的事件
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close 关闭事件总线
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
