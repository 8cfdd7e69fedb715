package ui

import "github.com/babarot/nctrash/internal/trash/core"

// startMsg announces the number of items about to be restored
type startMsg struct {
	total int
}

// completedMsg reports one finished item, err is nil on success
type completedMsg struct {
	item core.Item
	err  error
}

// finishMsg tells the program that no more items will come
type finishMsg struct{}
