package cart

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testItem(id string, price float64) Item {
	return Item{ID: id, Title: "Course " + id, Price: price}
}

func TestAddIncrementsQuantityForSameItem(t *testing.T) {
	c := New(nil)
	item := testItem("c1", 15000)

	c.Add(item)
	c.Add(item)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
	if got := c.ItemCount(); got != 2 {
		t.Fatalf("expected item count 2, got %d", got)
	}
	if got := c.TotalPrice(); got != 2*item.Price {
		t.Fatalf("expected total %v, got %v", 2*item.Price, got)
	}
}

func TestRemoveDeletesLineOutright(t *testing.T) {
	c := New(nil)
	c.Add(testItem("c1", 100))
	c.Add(testItem("c1", 100))
	c.Add(testItem("c2", 50))

	c.Remove("c1")

	if got := c.ItemCount(); got != 1 {
		t.Fatalf("expected item count 1 after remove, got %d", got)
	}
	if got := c.TotalPrice(); got != 50 {
		t.Fatalf("expected total 50, got %v", got)
	}
}

func TestUpdateQuantityZeroBehavesAsRemove(t *testing.T) {
	c := New(nil)
	c.Add(testItem("c1", 100))

	c.UpdateQuantity("c1", 0)

	if len(c.Lines()) != 0 {
		t.Fatalf("expected empty cart after zero-quantity update")
	}
	if got := c.ItemCount(); got != 0 {
		t.Fatalf("expected item count 0, got %d", got)
	}
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	c := New(nil)
	c.Add(testItem("c1", 100))

	c.UpdateQuantity("c1", 5)

	if got := c.ItemCount(); got != 5 {
		t.Fatalf("expected item count 5, got %d", got)
	}
	if got := c.TotalPrice(); got != 500 {
		t.Fatalf("expected total 500, got %v", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c := New(nil)
	c.Add(testItem("c1", 100))
	c.Add(testItem("c2", 200))

	c.Clear()

	if got := c.ItemCount(); got != 0 {
		t.Fatalf("expected item count 0 after clear, got %d", got)
	}
	if got := c.TotalPrice(); got != 0 {
		t.Fatalf("expected total 0 after clear, got %v", got)
	}
}

type memoryStorage struct {
	data []byte
	ok   bool
}

func (s *memoryStorage) Load() ([]byte, bool) { return s.data, s.ok }
func (s *memoryStorage) Save(data []byte) error {
	s.data = data
	s.ok = true
	return nil
}

func TestCorruptStoredCartRehydratesEmpty(t *testing.T) {
	store := &memoryStorage{data: []byte("{not json"), ok: true}

	c := New(store)

	if got := c.ItemCount(); got != 0 {
		t.Fatalf("expected empty cart from corrupt storage, got count %d", got)
	}
}

func TestCartPersistsAcrossInstances(t *testing.T) {
	store := &memoryStorage{}

	first := New(store)
	first.Add(testItem("c1", 100))
	first.Add(testItem("c1", 100))
	first.Add(testItem("c2", 50))

	second := New(store)
	if got := second.ItemCount(); got != 3 {
		t.Fatalf("expected rehydrated count 3, got %d", got)
	}
	if got := second.TotalPrice(); got != 250 {
		t.Fatalf("expected rehydrated total 250, got %v", got)
	}

	lines := second.Lines()
	if lines[0].Item.ID != "c1" || lines[1].Item.ID != "c2" {
		t.Fatalf("expected insertion order preserved, got %v", lines)
	}
}

func TestRedisStorageRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewRedisStorage(client, "visitor-1", 0)

	first := New(store)
	first.Add(testItem("c1", 15000))

	second := New(NewRedisStorage(client, "visitor-1", 0))
	if got := second.TotalPrice(); got != 15000 {
		t.Fatalf("expected persisted total 15000, got %v", got)
	}

	// A different visitor key sees an empty cart.
	other := New(NewRedisStorage(client, "visitor-2", 0))
	if got := other.ItemCount(); got != 0 {
		t.Fatalf("expected empty cart for other visitor, got %d", got)
	}
}
