package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix   = "user:%d"
	postKeyPrefix   = "post:%d"
	postsListKey    = "posts:recent"
	profilesListKey = "profiles:all"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 10 * time.Minute
	ListTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostsListKey() string {
	return postsListKey
}

func ProfilesListKey() string {
	return profilesListKey
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateProfilesList(ctx context.Context) {
	Invalidate(ctx, profilesListKey)
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, postsListKey)
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}
