package redisrepo

import "fmt"

const (
	USER_UNREAD_COUNT = "user:%s-unread-count"
)

func UserUnreadCountKey(userID string) string {
	return fmt.Sprintf(USER_UNREAD_COUNT, userID)
}
