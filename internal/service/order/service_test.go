package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/service/order"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

// capturePublisher копит опубликованные события для проверок.
type capturePublisher struct {
	events []domain.OrderEvent
}

func (p *capturePublisher) PublishOrderEvent(event domain.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

type fixture struct {
	svc       *order.Service
	orders    domain.OrderRepository
	items     domain.OrderItemRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	events    *capturePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	items := memory.NewOrderItemRepository()
	orders := memory.NewOrderRepository(items)
	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	events := &capturePublisher{}

	return &fixture{
		svc:       order.NewService(orders, items, customers, products, events, nil, nil),
		orders:    orders,
		items:     items,
		customers: customers,
		products:  products,
		events:    events,
	}
}

func (f *fixture) seedCustomer(t *testing.T) domain.Customer {
	t.Helper()
	customer, err := f.customers.Create(domain.Customer{Name: "Ana", CPF: "123.456.789-09"})
	require.NoError(t, err)
	return customer
}

func (f *fixture) seedProduct(t *testing.T, name, price string) domain.Product {
	t.Helper()
	product, err := f.products.Create(domain.Product{Name: name, Price: decimal.RequireFromString(price)})
	require.NoError(t, err)
	return product
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	view, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items: []order.ItemInput{
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Equal(t, domain.OrderStatusPending, view.Order.Status)
	require.Equal(t, customer.ID, view.Order.CustomerID)
	require.Equal(t, "20.00", view.TotalPrice.StringFixed(2))
	require.Len(t, view.Items, 1)
	require.Equal(t, "Keyboard", view.Items[0].ProductName)
	require.Equal(t, "10.00", view.Items[0].ProductPrice.StringFixed(2))
	require.Equal(t, "20.00", view.Items[0].TotalPrice.StringFixed(2))

	require.Len(t, f.events.events, 1)
	require.Equal(t, domain.EventTypeOrderCreated, f.events.events[0].EventType)
	require.Equal(t, view.Order.ID, f.events.events[0].OrderID)
}

func TestCreateOrderCapturesCatalogPrice(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	view, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Смена каталожной цены не влияет на уже сохранённую позицию.
	product.Price = decimal.RequireFromString("99.99")
	_, err = f.products.Update(product)
	require.NoError(t, err)

	got, err := f.svc.Get(view.Order.ID)
	require.NoError(t, err)
	require.Equal(t, "10.00", got.Items[0].ProductPrice.StringFixed(2))
	require.Equal(t, "10.00", got.TotalPrice.StringFixed(2))
}

func TestCreateOrderExplicitPriceOverride(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	override := decimal.RequireFromString("8.50")
	view, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: product.ID, Quantity: 2, Price: &override}},
	})
	require.NoError(t, err)
	require.Equal(t, "17.00", view.TotalPrice.StringFixed(2))
}

func TestCreateOrderMergesDuplicateProductEntries(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	override := decimal.RequireFromString("8.00")
	view, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items: []order.ItemInput{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: product.ID, Quantity: 3, Price: &override},
		},
	})
	require.NoError(t, err)

	// Один товар — одна строка: количества слились, явная цена
	// последней записи победила.
	require.Len(t, view.Items, 1)
	require.EqualValues(t, 5, view.Items[0].Quantity)
	require.Equal(t, "8.00", view.Items[0].ProductPrice.StringFixed(2))
	require.Equal(t, "40.00", view.TotalPrice.StringFixed(2))

	stored, err := f.items.ListByOrder(view.Order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestCreateOrderEmptyItemsAllowed(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)

	view, err := f.svc.Create(order.CreateInput{CustomerID: customer.ID, Items: []order.ItemInput{}})
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.True(t, view.TotalPrice.IsZero())
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	_, err := f.svc.Create(order.CreateInput{Items: []order.ItemInput{}})
	require.ErrorIs(t, err, domain.ErrCustomerRequired)

	_, err = f.svc.Create(order.CreateInput{CustomerID: customer.ID})
	require.ErrorIs(t, err, domain.ErrItemsRequired)

	_, err = f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: product.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, domain.ErrItemQuantityInvalid)

	zero := decimal.Zero
	_, err = f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: product.ID, Quantity: 1, Price: &zero}},
	})
	require.ErrorIs(t, err, domain.ErrItemPriceInvalid)
}

func TestCreateOrderUnknownCustomerPersistsNothing(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	_, err := f.svc.Create(order.CreateInput{
		CustomerID: 42,
		Items:      []order.ItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	count, err := f.orders.Count(domain.OrderFilter{})
	require.NoError(t, err)
	require.Zero(t, count)
	require.Empty(t, f.events.events)
}

func TestCreateOrderReportsAllMissingProducts(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	_, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items: []order.ItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: 77, Quantity: 1},
			{ProductID: 88, Quantity: 1},
		},
	})
	require.Error(t, err)
	require.True(t, domain.IsNotFound(err))
	require.Contains(t, err.Error(), "the following products were not found: 77, 88")

	count, err := f.orders.Count(domain.OrderFilter{})
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestGetOrderOmitsItemsWithMissingProduct(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	keyboard := f.seedProduct(t, "Keyboard", "10.00")
	mouse := f.seedProduct(t, "Mouse", "5.00")

	view, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items: []order.ItemInput{
			{ProductID: keyboard.ID, Quantity: 1},
			{ProductID: mouse.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(mouse.ID))

	got, err := f.svc.Get(view.Order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, keyboard.ID, got.Items[0].ProductID)
	require.Equal(t, "10.00", got.TotalPrice.StringFixed(2))
}

func TestGetOrderUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(404)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatusOnly(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	product := f.seedProduct(t, "Keyboard", "10.00")

	created, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	paid := "Paid"
	updated, err := f.svc.Update(created.Order.ID, order.UpdateInput{Status: &paid})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPaid, updated.Order.Status)
	require.Len(t, updated.Items, 1)

	// Переходы не ограничены: Canceled -> Paid допустим.
	canceled := "Canceled"
	_, err = f.svc.Update(created.Order.ID, order.UpdateInput{Status: &canceled})
	require.NoError(t, err)
	_, err = f.svc.Update(created.Order.ID, order.UpdateInput{Status: &paid})
	require.NoError(t, err)
}

func TestUpdateOrderMergesItems(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	keyboard := f.seedProduct(t, "Keyboard", "10.00")
	mouse := f.seedProduct(t, "Mouse", "5.00")

	created, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: keyboard.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Существующая позиция меняется на месте, новая добавляется,
	// не упомянутых нет — ничего не удаляется.
	updated, err := f.svc.Update(created.Order.ID, order.UpdateInput{
		Items: []order.ItemInput{
			{ProductID: keyboard.ID, Quantity: 3},
			{ProductID: mouse.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	require.Equal(t, "40.00", updated.TotalPrice.StringFixed(2))

	stored, err := f.items.ListByOrder(created.Order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
}

func TestUpdateOrderKeepsUnmentionedItems(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	keyboard := f.seedProduct(t, "Keyboard", "10.00")
	mouse := f.seedProduct(t, "Mouse", "5.00")

	created, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items: []order.ItemInput{
			{ProductID: keyboard.ID, Quantity: 1},
			{ProductID: mouse.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(created.Order.ID, order.UpdateInput{
		Items: []order.ItemInput{{ProductID: mouse.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	require.Equal(t, "30.00", updated.TotalPrice.StringFixed(2))
}

func TestUpdateOrderInPlaceWithoutDuplicates(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	keyboard := f.seedProduct(t, "Keyboard", "10.00")

	created, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: keyboard.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = f.svc.Update(created.Order.ID, order.UpdateInput{
			Items: []order.ItemInput{{ProductID: keyboard.ID, Quantity: int32(i + 2)}},
		})
		require.NoError(t, err)
	}

	stored, err := f.items.ListByOrder(created.Order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, int32(4), stored[0].Quantity)
}

func TestUpdateOrderNoData(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)

	created, err := f.svc.Create(order.CreateInput{CustomerID: customer.ID, Items: []order.ItemInput{}})
	require.NoError(t, err)

	_, err = f.svc.Update(created.Order.ID, order.UpdateInput{})
	require.ErrorIs(t, err, domain.ErrNoUpdateData)
}

func TestUpdateOrderUnknown(t *testing.T) {
	f := newFixture(t)

	paid := "Paid"
	_, err := f.svc.Update(404, order.UpdateInput{Status: &paid})
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderMissingProductsLeaveStateUntouched(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	keyboard := f.seedProduct(t, "Keyboard", "10.00")

	created, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: keyboard.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	paid := "Paid"
	_, err = f.svc.Update(created.Order.ID, order.UpdateInput{
		Status: &paid,
		Items: []order.ItemInput{
			{ProductID: keyboard.ID, Quantity: 5},
			{ProductID: 77, Quantity: 1},
		},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "the following products were not found: 77")

	got, err := f.svc.Get(created.Order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, got.Order.Status)
	require.Equal(t, int32(1), got.Items[0].Quantity)
}

func TestUpdateOrderInvalidStatus(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)

	created, err := f.svc.Create(order.CreateInput{CustomerID: customer.ID, Items: []order.ItemInput{}})
	require.NoError(t, err)

	bad := "Shipped"
	_, err = f.svc.Update(created.Order.ID, order.UpdateInput{Status: &bad})
	require.ErrorIs(t, err, domain.ErrStatusInvalid)
}

func TestDeleteOrderCascades(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	keyboard := f.seedProduct(t, "Keyboard", "10.00")

	created, err := f.svc.Create(order.CreateInput{
		CustomerID: customer.ID,
		Items:      []order.ItemInput{{ProductID: keyboard.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(created.Order.ID))

	_, err = f.svc.Get(created.Order.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	items, err := f.items.ListByOrder(created.Order.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	require.ErrorIs(t, f.svc.Delete(created.Order.ID), domain.ErrOrderNotFound)
}

func TestListOrdersDefaultsAndPagination(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	for i := 0; i < 5; i++ {
		_, err := f.svc.Create(order.CreateInput{CustomerID: customer.ID, Items: []order.ItemInput{}})
		require.NoError(t, err)
	}

	page, err := f.svc.List(order.ListParams{})
	require.NoError(t, err)
	require.Equal(t, 1, page.CurrentPage)
	require.Equal(t, order.DefaultPerPage, page.PerPage)
	require.EqualValues(t, 5, page.TotalOrders)
	require.Len(t, page.Orders, 3)

	second, err := f.svc.List(order.ListParams{Page: 2})
	require.NoError(t, err)
	require.Len(t, second.Orders, 2)
}

func TestListOrdersOutOfRangePage(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	for i := 0; i < 4; i++ {
		_, err := f.svc.Create(order.CreateInput{CustomerID: customer.ID, Items: []order.ItemInput{}})
		require.NoError(t, err)
	}

	page, err := f.svc.List(order.ListParams{Page: 9})
	require.NoError(t, err)
	require.Empty(t, page.Orders)
	require.EqualValues(t, 4, page.TotalOrders)
	require.Equal(t, 9, page.CurrentPage)
}

func TestListOrdersFilters(t *testing.T) {
	f := newFixture(t)
	customer := f.seedCustomer(t)
	created, err := f.svc.Create(order.CreateInput{CustomerID: customer.ID, Items: []order.ItemInput{}})
	require.NoError(t, err)
	_, err = f.svc.Create(order.CreateInput{CustomerID: customer.ID, Items: []order.ItemInput{}})
	require.NoError(t, err)

	paid := "Paid"
	_, err = f.svc.Update(created.Order.ID, order.UpdateInput{Status: &paid})
	require.NoError(t, err)

	page, err := f.svc.List(order.ListParams{Filter: domain.OrderFilter{Status: "Paid"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalOrders)
	require.Len(t, page.Orders, 1)
	require.Equal(t, created.Order.ID, page.Orders[0].ID)
}
