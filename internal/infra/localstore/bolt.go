// Package localstore はセッション単位の小さなデータ（カートなど）を bbolt に保存する。
package localstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

// CartBucket はカートのJSON配列を入れるバケット
const CartBucket = "cart"

// Bolt は1バケット分のキー/値ストア。cart.Persister を満たす。
type Bolt struct {
	db     *bbolt.DB
	bucket []byte
	owned  bool
}

// Open はファイルを開き、バケットを用意する
func Open(path string, bucket string) (*Bolt, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	b, err := New(db, bucket)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	b.owned = true
	return b, nil
}

// New は開いている DB 上に別バケットのストアを作る
func New(db *bbolt.DB, bucket string) (*Bolt, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create %s bucket: %w", bucket, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Bolt{db: db, bucket: []byte(bucket)}, nil
}

// Close は Open で開いたときだけファイルを閉じる
func (s *Bolt) Close() error {
	if s == nil || s.db == nil || !s.owned {
		return nil
	}
	return s.db.Close()
}

// Load は保存済みの値を返す。無ければ nil。
func (s *Bolt) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("key is required")
	}

	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("%s bucket is missing", s.bucket)
		}
		if v := b.Get([]byte(key)); v != nil {
			// トランザクション外では使えないのでコピー
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

// Save は値を上書きする
func (s *Bolt) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("%s bucket is missing", s.bucket)
		}
		return b.Put([]byte(key), data)
	})
}
