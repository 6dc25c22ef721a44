// Package storage 本地嵌入式KV存储
// 每个集合以JSON数组整体存放在一个键下，读-改-写整体覆盖
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
)

// Store badger封装，提供按键互斥的集合级读写
// 单进程单写者模型：同一集合的并发修改通过键锁串行化
type Store struct {
	db *badger.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open 打开（或创建）本地存储目录
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开本地存储失败: %w", err)
	}
	return &Store{db: db, locks: make(map[string]*sync.Mutex)}, nil
}

// OpenInMemory 纯内存模式，测试用
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开内存存储失败: %w", err)
	}
	return &Store{db: db, locks: make(map[string]*sync.Mutex)}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get 读取原始字节，键不存在返回 (nil, nil)
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read key %q: %w", key, err)
	}
	return value, nil
}

// Set 整体写入
func (s *Store) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

// Delete 删除键，不存在时静默成功
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}

// keyLock 每个集合键一把锁，惰性创建
func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// LoadCollection 读取集合，键不存在时返回空切片
func LoadCollection[T any](s *Store, key string) ([]T, error) {
	data, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode collection %q: %w", key, err)
	}
	return items, nil
}

// SaveCollection 整体覆盖集合
func SaveCollection[T any](s *Store, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	return s.Set(key, data)
}

// UpdateCollection 在键锁内执行 加载→变更→保存
// fn 返回变更后的集合；返回错误时不写回
func UpdateCollection[T any](s *Store, key string, fn func(items []T) ([]T, error)) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	items, err := LoadCollection[T](s, key)
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return SaveCollection(s, key, updated)
}
