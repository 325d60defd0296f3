package pipeline

import "sync"

// keyedClaims 按键互斥的独占占用（内部使用）
// 摄取期间以Dataset ID为键持有独占，防止并发摄取同一数据集产生重复行
type keyedClaims struct {
	mu     sync.Mutex
	claims map[string]*claimEntry
}

// claimEntry 单个键的占用状态
type claimEntry struct {
	ch   chan struct{}
	refs int
}

// newKeyedClaims 创建占用管理器
func newKeyedClaims() *keyedClaims {
	return &keyedClaims{claims: make(map[string]*claimEntry)}
}

// Acquire 获取键的独占占用，阻塞直到可用
// 返回释放函数，必须调用
func (c *keyedClaims) Acquire(key string) (release func()) {
	c.mu.Lock()
	entry, ok := c.claims[key]
	if !ok {
		entry = &claimEntry{ch: make(chan struct{}, 1)}
		c.claims[key] = entry
	}
	entry.refs++
	c.mu.Unlock()

	entry.ch <- struct{}{}

	return func() {
		<-entry.ch
		c.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(c.claims, key)
		}
		c.mu.Unlock()
	}
}
