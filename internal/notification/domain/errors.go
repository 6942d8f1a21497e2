package domain

import "errors"

// ErrNotificationNotFound 通知不存在
var ErrNotificationNotFound = errors.New("notification not found")
