package cart

import (
	"testing"

	"github.com/google/uuid"
)

func TestAddMergesQuantitiesForSameProduct(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	state := add(EmptyState(), Item{ProductID: productID, Name: "Clay Pot", Price: 250, Quantity: 2})
	state = add(state, Item{ProductID: productID, Name: "Clay Pot", Price: 250, Quantity: 3})

	if len(state.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(state.Items))
	}
	if state.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", state.Items[0].Quantity)
	}
	if state.Total != 1250 {
		t.Fatalf("expected total 1250, got %f", state.Total)
	}
	if state.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", state.ItemCount)
	}
}

func TestAddKeepsInsertionOrderOnMerge(t *testing.T) {
	t.Parallel()

	first := uuid.New()
	second := uuid.New()
	state := add(EmptyState(), Item{ProductID: first, Price: 10, Quantity: 1})
	state = add(state, Item{ProductID: second, Price: 20, Quantity: 1})
	state = add(state, Item{ProductID: first, Price: 10, Quantity: 1})

	if state.Items[0].ProductID != first || state.Items[1].ProductID != second {
		t.Fatal("merged line should keep its original position")
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	state := add(EmptyState(), Item{ProductID: productID, Price: 100, Quantity: 2})
	state = setQuantity(state, productID, 0)

	if len(state.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(state.Items))
	}
	if state.Total != 0 || state.ItemCount != 0 {
		t.Fatalf("aggregates should zero out, got total=%f count=%d", state.Total, state.ItemCount)
	}
}

func TestSetQuantityClampsNegativeToRemoval(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	state := add(EmptyState(), Item{ProductID: productID, Price: 100, Quantity: 2})
	state = setQuantity(state, productID, -4)

	if len(state.Items) != 0 {
		t.Fatal("negative quantity should remove the line")
	}
}

func TestRemoveMissingProductIsNoop(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	state := add(EmptyState(), Item{ProductID: productID, Price: 100, Quantity: 1})
	state = remove(state, uuid.New())

	if len(state.Items) != 1 {
		t.Fatal("removing an absent product should not change the cart")
	}
}

func TestLoadRecomputesAggregates(t *testing.T) {
	t.Parallel()

	state := load([]Item{
		{ProductID: uuid.New(), Price: 100, Quantity: 1},
		{ProductID: uuid.New(), Price: 100, Quantity: 2},
	})

	if state.Total != 300 {
		t.Fatalf("expected total 300, got %f", state.Total)
	}
	if state.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", state.ItemCount)
	}
}

func TestLoadDropsLinesWithoutPositiveQuantity(t *testing.T) {
	t.Parallel()

	kept := uuid.New()
	state := load([]Item{
		{ProductID: uuid.New(), Price: 100, Quantity: 0},
		{ProductID: kept, Price: 250, Quantity: 2},
		{ProductID: uuid.New(), Price: 50, Quantity: -1},
	})

	if len(state.Items) != 1 {
		t.Fatalf("expected only the positive-quantity line to survive, got %d lines", len(state.Items))
	}
	if state.Items[0].ProductID != kept {
		t.Fatal("wrong line survived the load")
	}
	if state.Total != 500 || state.ItemCount != 2 {
		t.Fatalf("aggregates should only count kept lines, got total=%f count=%d", state.Total, state.ItemCount)
	}
}

func TestLoadNilItemsYieldsEmptyCart(t *testing.T) {
	t.Parallel()

	state := load(nil)
	if state.Items == nil || len(state.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %+v", state.Items)
	}
}
