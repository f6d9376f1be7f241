package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// LocalCache 进程内 LRU 缓存封装
// 只用于可重复计算的结果（如外部分类服务的响应），
// 去重集合、违规计数等正确性状态必须走数据库，不允许进这里
type LocalCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

var cacheInstance *LocalCache

// GetCache 获取单例缓存实例
func GetCache() *LocalCache {
	if cacheInstance == nil {
		// 容量 256，分类结果按内容哈希缓存足够用
		l, err := lru.New[string, CacheItem](256)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &LocalCache{
			lruCache: l,
		}
	}
	return cacheInstance
}

// Set 设置缓存，TTL 为过期时间
func (c *LocalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *LocalCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete 删除指定缓存
func (c *LocalCache) Delete(key string) {
	c.lruCache.Remove(key)
}
