package server

import (
	"container/list"
	"sync"
	"time"
)

// reportCache — LRU-кэш ответов дашборда с TTL и счетчиками поколений.
// Поколение растет при каждой мутации данных пользователя и при выходе
// из системы; запись, вычисленная для устаревшего поколения, отбрасывается,
// чтобы поздний ответ не перезаписал более свежее состояние.
type reportCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	gens    map[string]uint64
}

type cacheItem struct {
	key       string
	userID    string
	gen       uint64
	data      interface{}
	expiresAt time.Time
}

func newReportCache(maxSize int, ttl time.Duration) *reportCache {
	return &reportCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		gens:    make(map[string]uint64),
	}
}

// Generation возвращает текущее поколение данных пользователя.
// Снимается до запроса к сервису и передается в Set вместе с результатом.
func (c *reportCache) Generation(userID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[userID]
}

func (c *reportCache) Get(userID, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[userID+"|"+key]
	if !exists {
		return nil, false
	}

	item := elem.Value.(*cacheItem)
	if time.Now().After(item.expiresAt) || item.gen != c.gens[userID] {
		c.removeElement(elem)
		return nil, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

// Set сохраняет результат, вычисленный для поколения gen.
// Если данные пользователя успели измениться, запись отбрасывается.
func (c *reportCache) Set(userID, key string, gen uint64, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gens[userID] {
		return
	}

	item := &cacheItem{
		key:       userID + "|" + key,
		userID:    userID,
		gen:       gen,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[item.key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[item.key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Invalidate сбрасывает все кэшированные ответы пользователя,
// увеличивая его поколение
func (c *reportCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[userID]++
}

func (c *reportCache) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem)
	delete(c.items, item.key)
	c.lru.Remove(elem)
}
