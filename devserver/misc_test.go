package devserver

import (
	"context"
	"testing"

	cartApi "buildmart.GO/api/cart"
	catalogApi "buildmart.GO/api/catalog"
	notificationsApi "buildmart.GO/api/notifications"
	ordersApi "buildmart.GO/api/orders"
	paymentsApi "buildmart.GO/api/payments"
	servicesApi "buildmart.GO/api/services"
	wishlistApi "buildmart.GO/api/wishlist"
	"buildmart.GO/client"
	"buildmart.GO/model"
)

func TestWishlist_AddListRemove(t *testing.T) {
	c := newTestBackend(t)
	registerCustomer(t, c, "wish@example.com")
	ctx := context.Background()
	api := wishlistApi.New(c)

	p, err := catalogApi.New(c).ProductBySlug(ctx, "claw-hammer-450g")
	if err != nil {
		t.Fatalf("product: %v", err)
	}

	item, err := api.Add(ctx, p.ID)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Product == nil || item.Product.SKU != "HT-HAM-001" {
		t.Errorf("item = %+v", item)
	}

	// Adding twice is a no-op, not an error.
	if _, err := api.Add(ctx, p.ID); err != nil {
		t.Fatalf("second Add: %v", err)
	}

	items, err := api.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	if err := api.Remove(ctx, items[0].ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if items, _ = api.List(ctx); len(items) != 0 {
		t.Errorf("items after remove = %d, want 0", len(items))
	}
}

func TestPayments_MethodsArePublic(t *testing.T) {
	c := newTestBackend(t)

	methods, err := paymentsApi.New(c).Methods(context.Background())
	if err != nil {
		t.Fatalf("Methods without auth: %v", err)
	}
	if len(methods) != 3 || methods[0].Code != "cod" {
		t.Errorf("methods = %+v", methods)
	}
}

func TestPayments_InitiateForOrder(t *testing.T) {
	c := newTestBackend(t)
	registerCustomer(t, c, "pay@example.com")
	ctx := context.Background()

	p, _ := catalogApi.New(c).ProductBySlug(ctx, "portland-cement-425r")
	if _, err := cartApi.New(c).Add(ctx, model.AddToCartInput{ProductID: p.ID, Quantity: 10}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	order, err := ordersApi.New(c).Create(ctx, model.CreateOrderInput{ShippingAddress: "Site 4"})
	if err != nil {
		t.Fatalf("order: %v", err)
	}

	payment, err := paymentsApi.New(c).Initiate(ctx, model.InitiatePaymentInput{OrderID: order.ID, Method: "transfer"})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if payment.Amount != order.Total || payment.Status != "pending" {
		t.Errorf("payment = %+v", payment)
	}

	status, err := paymentsApi.New(c).Status(ctx, payment.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Reference != payment.Reference {
		t.Errorf("reference = %q, want %q", status.Reference, payment.Reference)
	}
}

func TestServiceRequests(t *testing.T) {
	c := newTestBackend(t)
	registerCustomer(t, c, "svc@example.com")
	ctx := context.Background()
	api := servicesApi.New(c)

	_, err := api.Create(ctx, model.CreateServiceRequestInput{Type: "teleport", Address: "x"})
	apiErr, ok := client.AsAPIError(err)
	if !ok || apiErr.Field != "type" {
		t.Fatalf("unknown type err = %v, want validation on type", err)
	}

	req, err := api.Create(ctx, model.CreateServiceRequestInput{
		Type:        model.ServiceInstallation,
		Address:     "9 Quarry Road",
		Description: "mount the shelving",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Status != model.ServiceRequested {
		t.Errorf("Status = %q, want requested", req.Status)
	}

	list, err := api.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %+v (err %v)", list, err)
	}
}

func TestNotifications_OrderPlacedAndMarkRead(t *testing.T) {
	c := newTestBackend(t)
	registerCustomer(t, c, "notif@example.com")
	ctx := context.Background()

	p, _ := catalogApi.New(c).ProductBySlug(ctx, "claw-hammer-450g")
	cartApi.New(c).Add(ctx, model.AddToCartInput{ProductID: p.ID, Quantity: 1})
	if _, err := ordersApi.New(c).Create(ctx, model.CreateOrderInput{ShippingAddress: "Yard 2"}); err != nil {
		t.Fatalf("order: %v", err)
	}

	api := notificationsApi.New(c)
	notes, err := api.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 1 || notes[0].Read {
		t.Fatalf("notes = %+v", notes)
	}

	if err := api.MarkRead(ctx, notes[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if unread, _ := api.List(ctx, true); len(unread) != 0 {
		t.Errorf("unread after MarkRead = %d, want 0", len(unread))
	}
	if all, _ := api.List(ctx, false); len(all) != 1 {
		t.Errorf("all = %d, want 1", len(all))
	}
}
