package domain

import "errors"

var (
	// ErrInvalidQuantity 数量必须为正整数
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrMissingProductID 行项目缺少商品标识
	ErrMissingProductID = errors.New("product id is required")
	// ErrMissingSelectedSize 行项目缺少尺码，唯一性约束依赖它
	ErrMissingSelectedSize = errors.New("selected size is required")
)
