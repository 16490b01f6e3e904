package cart

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"storefront/internal/i18n"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, size string, price int64, qty int64) Item {
	return Item{
		ProductID: id,
		Size:      size,
		Name:      i18n.NewText("Rose "+id, "ورد "+id),
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func openEmpty(t *testing.T) (*Store, *MemoryPersister) {
	t.Helper()
	p := NewMemoryPersister()
	s, err := Open(context.Background(), p, "s1")
	require.NoError(t, err)
	return s, p
}

func TestStore_AddSameKeyMerges(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)

	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 1)))
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 2)))
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 4)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].Quantity)
}

func TestStore_DifferentSizeIsSeparateLine(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)

	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 1)))
	require.NoError(t, s.Add(ctx, item("p1", "100ml", 18, 1)))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "50ml", items[0].Size)
	assert.Equal(t, "100ml", items[1].Size)
}

func TestStore_UpdateQuantityBelowOneIgnored(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 3)))

	require.NoError(t, s.UpdateQuantity(ctx, "p1", "50ml", 0))
	require.NoError(t, s.UpdateQuantity(ctx, "p1", "50ml", -2))
	assert.Equal(t, int64(3), s.Items()[0].Quantity)

	require.NoError(t, s.UpdateQuantity(ctx, "p1", "50ml", 5))
	assert.Equal(t, int64(5), s.Items()[0].Quantity)
}

func TestStore_RemoveThenAddHasNoResidue(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 3)))

	require.NoError(t, s.Remove(ctx, "p1", "50ml"))
	assert.Empty(t, s.Items())

	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 2)))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, int64(2), s.Items()[0].Quantity)
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 1)))

	require.NoError(t, s.Remove(ctx, "p2", "50ml"))
	assert.Len(t, s.Items(), 1)
}

func TestStore_TotalAndItemCount(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 2)))
	require.NoError(t, s.Add(ctx, item("p2", "30ml", 5, 1)))

	assert.True(t, decimal.NewFromInt(25).Equal(s.Total()))
	assert.Equal(t, int64(3), s.ItemCount())
}

func TestStore_ClearEmpties(t *testing.T) {
	ctx := context.Background()
	s, p := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 2)))
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Items())
	raw, _ := p.Load(ctx, "s1")
	assert.JSONEq(t, `[]`, string(raw))
}

func TestOpen_RestoresSavedCart(t *testing.T) {
	ctx := context.Background()
	s, p := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 2)))

	again, err := Open(ctx, p, "s1")
	require.NoError(t, err)
	require.Len(t, again.Items(), 1)
	assert.Equal(t, int64(2), again.Items()[0].Quantity)
	assert.Equal(t, "ورد p1", again.Items()[0].Name.AR)
}

func TestOpen_MalformedDataYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{`{"id":"p1"}`, `not json`, `"cart"`, `42`} {
		p := NewMemoryPersister()
		require.NoError(t, p.Save(ctx, "s1", []byte(raw)))

		s, err := Open(ctx, p, "s1")
		require.NoError(t, err, raw)
		assert.Empty(t, s.Items(), raw)
	}
}

type failingPersister struct {
	loadErr error
	saveErr error
}

func (f failingPersister) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, f.loadErr
}

func (f failingPersister) Save(ctx context.Context, key string, data []byte) error {
	return f.saveErr
}

func TestStore_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, failingPersister{saveErr: errors.New("disk full")}, "s1")
	require.NoError(t, err)

	err = s.Add(ctx, item("p1", "50ml", 10, 1))
	assert.Error(t, err)
	assert.Empty(t, s.Items())
}

func TestOpen_LoadFailure(t *testing.T) {
	_, err := Open(context.Background(), failingPersister{loadErr: errors.New("io")}, "s1")
	assert.Error(t, err)
}

func TestSessions_ReuseStore(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(NewMemoryPersister())
	id := NewSessionID()
	assert.True(t, ValidSessionID(id))
	assert.False(t, ValidSessionID("nope"))

	a, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, a.Add(ctx, item("p1", "50ml", 10, 1)))

	b, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Len(t, b.Items(), 1)
}

func TestStore_AddRejectsOverLineMaximum(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)

	assert.ErrorIs(t, s.Add(ctx, item("p1", "50ml", 10, math.MaxInt64)), ErrQuantityTooLarge)
	assert.Empty(t, s.Items())

	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, MaxLineQuantity-1)))
	assert.ErrorIs(t, s.Add(ctx, item("p1", "50ml", 10, 2)), ErrQuantityTooLarge)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, MaxLineQuantity-1, items[0].Quantity)
	assert.True(t, s.Total().IsPositive())
	assert.Equal(t, MaxLineQuantity-1, s.ItemCount())

	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 1)))
	assert.Equal(t, MaxLineQuantity, s.Items()[0].Quantity)
}

func TestStore_AddRejectsNonPositive(t *testing.T) {
	s, _ := openEmpty(t)
	assert.ErrorIs(t, s.Add(context.Background(), item("p1", "50ml", 10, 0)), ErrInvalidQuantity)
	assert.ErrorIs(t, s.Add(context.Background(), item("p1", "50ml", 10, -3)), ErrInvalidQuantity)
	assert.Empty(t, s.Items())
}

func TestStore_UpdateQuantityOverMaximum(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 3)))

	assert.ErrorIs(t, s.UpdateQuantity(ctx, "p1", "50ml", MaxLineQuantity+1), ErrQuantityTooLarge)
	assert.Equal(t, int64(3), s.Items()[0].Quantity)
}

func TestOpen_DropsOutOfRangeQuantities(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	require.NoError(t, p.Save(ctx, "s1", []byte(`[{"id":"p1","size":"50ml","price":"10","quantity":-9223372036854775807},{"id":"p2","size":"50ml","price":"10","quantity":2}]`)))

	s, err := Open(ctx, p, "s1")
	require.NoError(t, err)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestStore_ConsumeKeepsLinesAddedLater(t *testing.T) {
	ctx := context.Background()
	s, _ := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 2)))
	ordered := s.Items()

	//注文処理中に増えた分
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 1)))
	require.NoError(t, s.Add(ctx, item("p2", "100ml", 20, 1)))

	require.NoError(t, s.Consume(ctx, ordered))
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, int64(1), items[0].Quantity)
	assert.Equal(t, "p2", items[1].ProductID)
}

func TestStore_ConsumeWholeCartEmpties(t *testing.T) {
	ctx := context.Background()
	s, p := openEmpty(t)
	require.NoError(t, s.Add(ctx, item("p1", "50ml", 10, 2)))

	require.NoError(t, s.Consume(ctx, s.Items()))
	assert.Empty(t, s.Items())

	raw, err := p.Load(ctx, "s1")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSessions_EvictsIdleStores(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewMemoryPersister()
	sessions := NewSessions(p, WithIdleTTL(time.Minute), WithClock(func() time.Time { return now }))

	old := NewSessionID()
	st, err := sessions.Get(ctx, old)
	require.NoError(t, err)
	require.NoError(t, st.Add(ctx, item("p1", "50ml", 10, 1)))

	now = now.Add(2 * time.Minute)
	_, err = sessions.Get(ctx, NewSessionID())
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.Len())

	//手放しても中身は Persister から戻る
	again, err := sessions.Get(ctx, old)
	require.NoError(t, err)
	assert.NotSame(t, st, again)
	assert.Len(t, again.Items(), 1)
}

func TestSessions_BoundedByMaxStores(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(NewMemoryPersister(), WithMaxStores(100))

	for i := 0; i < 1000; i++ {
		_, err := sessions.Get(ctx, NewSessionID())
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, sessions.Len(), 100)
}

func TestSessions_PeekDoesNotHoldStore(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(NewMemoryPersister())

	for i := 0; i < 50; i++ {
		items, err := sessions.Peek(ctx, NewSessionID())
		require.NoError(t, err)
		assert.Empty(t, items)
	}
	assert.Zero(t, sessions.Len())
}
