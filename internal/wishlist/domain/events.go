package domain

// WishlistItemAddedEvent 心愿单新增事件
type WishlistItemAddedEvent struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// WishlistItemRemovedEvent 心愿单移除事件
type WishlistItemRemovedEvent struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}
