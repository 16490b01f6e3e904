package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity は1行 (商品, サイズ) あたりの数量上限
const MaxLineQuantity int64 = 99

var (
	ErrInvalidQuantity  = errors.New("cart: quantity must be at least 1")
	ErrQuantityTooLarge = errors.New("cart: quantity exceeds line maximum")
)

// Persister はカートの保存先。
// キーごとにJSON配列のバイト列を読み書きする。
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Store は1セッション分のカート。
// 変更のたびに Persister へ配列全体を書き戻す。
type Store struct {
	mu        sync.Mutex
	key       string
	persister Persister
	items     []Item
}

// Open は保存済みのカートを1度だけ読み込む。
// 配列として読めないデータは捨てて空のカートにする。
func Open(ctx context.Context, p Persister, key string) (*Store, error) {
	s := &Store{key: key, persister: p, items: []Item{}}

	raw, err := p.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("cart load %s: %w", key, err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.DebugContext(ctx, "discarding unreadable cart", "key", key, "err", err)
		return s, nil
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 || it.Quantity > MaxLineQuantity {
			continue
		}
		s.items = append(s.items, it)
	}
	return s, nil
}

// Key は保存キー（セッションID）
func (s *Store) Key() string {
	return s.key
}

// Add は同じ (id, size) があれば数量を足し、無ければ末尾に追加する。
// 足した結果が MaxLineQuantity を超えるときは何も変えずに ErrQuantityTooLarge。
func (s *Store) Add(ctx context.Context, item Item) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if item.Quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyItems()
	merged := false
	for i := range next {
		if next[i].Key() == item.Key() {
			if next[i].Quantity > MaxLineQuantity-item.Quantity {
				return ErrQuantityTooLarge
			}
			next[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, item)
	}
	return s.commit(ctx, next)
}

// Remove は一致する行を消す。無ければ何もしない。
func (s *Store) Remove(ctx context.Context, productID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{ProductID: productID, Size: size}
	next := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if it.Key() != k {
			next = append(next, it)
		}
	}
	if len(next) == len(s.items) {
		return nil
	}
	return s.commit(ctx, next)
}

// UpdateQuantity は数量を上書きする。quantity < 1 は無視する。
func (s *Store) UpdateQuantity(ctx context.Context, productID, size string, quantity int64) error {
	if quantity < 1 {
		return nil
	}
	if quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{ProductID: productID, Size: size}
	next := s.copyItems()
	for i := range next {
		if next[i].Key() == k {
			next[i].Quantity = quantity
			return s.commit(ctx, next)
		}
	}
	return nil
}

// Clear はカートを空にする（注文確定後）
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []Item{})
}

// Consume は注文済みの行の数量だけ差し引く。
// 注文確定の後に追加・増量された分は残る。
func (s *Store) Consume(ctx context.Context, ordered []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := make(map[Key]int64, len(ordered))
	for _, it := range ordered {
		used[it.Key()] += it.Quantity
	}

	next := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		it.Quantity -= used[it.Key()]
		if it.Quantity >= 1 {
			next = append(next, it)
		}
	}
	return s.commit(ctx, next)
}

// Items は現在の行のコピー
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Total は Σ price × quantity
func (s *Store) Total() decimal.Decimal {
	return Total(s.Items())
}

// ItemCount は Σ quantity
func (s *Store) ItemCount() int64 {
	return ItemCount(s.Items())
}

// Total は行の合計金額
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ItemCount は行の合計数量
func ItemCount(items []Item) int64 {
	var n int64
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func (s *Store) copyItems() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// 保存に失敗したらメモリ上の状態も変えない
func (s *Store) commit(ctx context.Context, next []Item) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.persister.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("cart save %s: %w", s.key, err)
	}
	s.items = next
	return nil
}
