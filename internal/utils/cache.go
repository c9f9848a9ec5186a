package utils

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// GlobalCache 带 TTL 的本地 LRU，侧边栏热门榜 / 标签云这类查询用它挡住数据库
type GlobalCache struct {
	entries *lru.Cache[string, cacheEntry]
}

var (
	cacheInstance *GlobalCache
	cacheOnce     sync.Once
)

// GetCache 获取单例缓存实例
func GetCache() *GlobalCache {
	cacheOnce.Do(func() {
		// 容量远大于实际键数，满了淘汰最久未用的
		entries, err := lru.New[string, cacheEntry](128)
		if err != nil {
			panic(err)
		}
		cacheInstance = &GlobalCache{entries: entries}
	})
	return cacheInstance
}

// Set 写入缓存，ttl 后过期
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.entries.Add(key, cacheEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	})
}

// Get 读取缓存，不存在或已过期返回 nil
func (c *GlobalCache) Get(key string) interface{} {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return nil
	}
	return entry.data
}

// Delete 主动失效，发布/编辑/删除文章后清掉侧边栏
func (c *GlobalCache) Delete(key string) {
	c.entries.Remove(key)
}
