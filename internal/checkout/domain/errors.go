package domain

import "errors"

var (
	// ErrEmptyCart 购物车为空时不允许下单
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInProgress 同一会话已有进行中的结账
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
