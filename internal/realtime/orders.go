package realtime

import "storefront/internal/domain/model"

// OrderFeed は確定した注文を Hub へ流す
type OrderFeed struct {
	hub *Hub
}

func NewOrderFeed(hub *Hub) *OrderFeed {
	return &OrderFeed{hub: hub}
}

func (f *OrderFeed) PublishOrder(order model.Order) {
	f.hub.Broadcast(Event{Type: EventOrderCreated, Data: order})
}
