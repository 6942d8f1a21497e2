package domain

import "errors"

var (
	// ErrMissingProductID 商品缺少标识
	ErrMissingProductID = errors.New("product id is required")
	// ErrMissingProductName 商品缺少名称
	ErrMissingProductName = errors.New("product name is required")
	// ErrInvalidProductPrice 商品价格非法
	ErrInvalidProductPrice = errors.New("product sell price must be positive")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
)
