package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-booking/config"
	"hotel-booking/models"
)

type testEnv struct {
	db       *gorm.DB
	hotels   *HotelService
	users    *UserService
	rooms    *RoomService
	bookings *BookingService
	payments *PaymentService
	reviews  *ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.Open(config.DriverSQLite, "file:"+name+"?mode=memory&cache=shared", "silent")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &testEnv{
		db:       db,
		hotels:   NewHotelService(db),
		users:    NewUserService(db),
		rooms:    NewRoomService(db),
		bookings: NewBookingService(db),
		payments: NewPaymentService(db),
		reviews:  NewReviewService(db),
	}
}

func day(s string) datatypes.Date {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(d)
}

func ptr[T any](v T) *T { return &v }

func (e *testEnv) hotel(t *testing.T) models.Hotel {
	t.Helper()
	h := models.Hotel{Name: "River Lodge", Location: "Bangkok"}
	if err := e.hotels.Create(&h); err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	return h
}

func (e *testEnv) user(t *testing.T, email string) models.User {
	t.Helper()
	u := models.User{Name: "Test User", Email: email}
	if err := e.users.Create(&u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) room(t *testing.T, hotelID uint, number string) models.Room {
	t.Helper()
	r := models.Room{HotelID: hotelID, RoomNumber: number, Type: "double", Price: 2000, Capacity: 2}
	if err := e.rooms.Create(&r); err != nil {
		t.Fatalf("create room: %v", err)
	}
	return r
}

func (e *testEnv) booking(t *testing.T, roomID, userID uint) models.Booking {
	t.Helper()
	b := models.Booking{RoomID: roomID, UserID: userID, CheckIn: day("2025-03-01"), CheckOut: day("2025-03-04")}
	if err := e.bookings.Create(&b); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func (e *testEnv) review(t *testing.T, hotelID, userID uint, rating int) models.Review {
	t.Helper()
	r := models.Review{HotelID: hotelID, UserID: userID, Rating: rating}
	if err := e.reviews.Create(&r); err != nil {
		t.Fatalf("create review: %v", err)
	}
	return r
}

func (e *testEnv) rating(t *testing.T, hotelID uint) float64 {
	t.Helper()
	h, err := e.hotels.GetByID(hotelID)
	if err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	return h.Rating
}

func TestUserCreateDefaultsAndNormalizes(t *testing.T) {
	e := newTestEnv(t)
	u := models.User{Name: "  Nok ", Email: " Nok@Example.COM "}
	if err := e.users.Create(&u); err != nil {
		t.Fatal(err)
	}
	if u.Role != models.RoleCustomer {
		t.Errorf("role = %q, want customer", u.Role)
	}
	if u.Email != "nok@example.com" || u.Name != "Nok" {
		t.Errorf("not normalized: %q %q", u.Name, u.Email)
	}

	got, err := e.users.GetByEmail("NOK@example.com")
	if err != nil || got.ID != u.ID {
		t.Errorf("GetByEmail = %+v, %v", got, err)
	}
}

func TestUserCreateErrors(t *testing.T) {
	e := newTestEnv(t)
	e.user(t, "taken@example.com")

	tests := []struct {
		name string
		user models.User
		want error
	}{
		{"duplicate email", models.User{Name: "B", Email: "TAKEN@example.com"}, ErrDuplicate},
		{"bad email", models.User{Name: "B", Email: "not-an-email"}, ErrInvalidValue},
		{"display name email", models.User{Name: "B", Email: "X <taken@example.com>"}, ErrInvalidValue},
		{"missing name", models.User{Email: "x@example.com"}, ErrInvalidValue},
		{"unknown role", models.User{Name: "B", Email: "y@example.com", Role: "owner"}, ErrInvalidValue},
		{"missing hotel", models.User{Name: "B", Email: "z@example.com", Role: models.RoleManager, HotelID: ptr(uint(42))}, ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			if err := e.users.Create(&u); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUserUpdate(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)
	u := e.user(t, "staff@example.com")
	e.user(t, "other@example.com")

	updated, err := e.users.Update(u.ID, UserPatch{Role: ptr(models.RoleManager), HotelID: &h.ID})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Role != models.RoleManager || updated.HotelID == nil || *updated.HotelID != h.ID {
		t.Errorf("unexpected user after update: %+v", updated)
	}

	managers, err := e.users.Managers(h.ID)
	if err != nil || len(managers) != 1 || managers[0].ID != u.ID {
		t.Errorf("Managers = %+v, %v", managers, err)
	}

	cleared, err := e.users.Update(u.ID, UserPatch{ClearHotel: true})
	if err != nil {
		t.Fatal(err)
	}
	if cleared.HotelID != nil {
		t.Errorf("hotel not cleared: %v", *cleared.HotelID)
	}

	if _, err := e.users.Update(u.ID, UserPatch{Email: ptr("other@example.com")}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if _, err := e.users.Update(u.ID, UserPatch{Email: ptr("X <other@example.com>")}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("display name email: expected ErrInvalidValue, got %v", err)
	}

	withPhone, err := e.users.Update(u.ID, UserPatch{Phone: ptr(" 081-555-0100 ")})
	if err != nil {
		t.Fatal(err)
	}
	if withPhone.Phone == nil || *withPhone.Phone != "081-555-0100" {
		t.Errorf("phone = %v, want 081-555-0100", withPhone.Phone)
	}
	noPhone, err := e.users.Update(u.ID, UserPatch{Phone: ptr("")})
	if err != nil {
		t.Fatal(err)
	}
	if noPhone.Phone != nil {
		t.Errorf("blank phone should be stored as NULL, got %q", *noPhone.Phone)
	}
	if _, err := e.users.Update(999, UserPatch{Name: ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHotelCreateRating(t *testing.T) {
	e := newTestEnv(t)
	h := models.Hotel{Name: "Palm", Location: "Phuket", Rating: 4.5, Description: ptr("  "), Image: ptr("")}
	if err := e.hotels.Create(&h); err != nil {
		t.Fatal(err)
	}
	if got := e.rating(t, h.ID); got != 4.5 {
		t.Errorf("rating = %v, want 4.5", got)
	}
	stored, err := e.hotels.GetByID(h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Description != nil || stored.Image != nil {
		t.Errorf("blank description/image should be NULL: %+v", stored)
	}

	plain := models.Hotel{Name: "Reef", Location: "Trang"}
	if err := e.hotels.Create(&plain); err != nil {
		t.Fatal(err)
	}
	if got := e.rating(t, plain.ID); got != 0 {
		t.Errorf("default rating = %v, want 0", got)
	}

	for _, bad := range []models.Hotel{
		{Name: "No Location"},
		{Name: "Star", Location: "Nan", Rating: 5.5},
		{Name: "Star", Location: "Nan", Rating: -1},
	} {
		if err := e.hotels.Create(&bad); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("%+v: expected ErrInvalidValue, got %v", bad, err)
		}
	}

	u := e.user(t, "guest@example.com")
	e.review(t, h.ID, u.ID, 2)
	if got := e.rating(t, h.ID); got != 2 {
		t.Errorf("rating after review = %v, want 2", got)
	}
}

func TestHotelListAndUpdate(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)
	other := models.Hotel{Name: "Cliff", Location: "Krabi"}
	if err := e.hotels.Create(&other); err != nil {
		t.Fatal(err)
	}

	list, err := e.hotels.List(HotelFilter{Location: "krabi"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != other.ID {
		t.Errorf("List(krabi) = %+v", list)
	}

	updated, err := e.hotels.Update(h.ID, HotelPatch{Description: ptr("On the river"), Name: ptr("River Lodge II")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "River Lodge II" || updated.Description == nil || *updated.Description != "On the river" {
		t.Errorf("unexpected hotel: %+v", updated)
	}
	if _, err := e.hotels.Update(h.ID, HotelPatch{Location: ptr("  ")}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}

	rated, err := e.hotels.Update(h.ID, HotelPatch{Rating: ptr(3.75), Description: ptr("")})
	if err != nil {
		t.Fatal(err)
	}
	if rated.Rating != 3.75 {
		t.Errorf("rating = %v, want 3.75", rated.Rating)
	}
	if rated.Description != nil {
		t.Errorf("blank description should be NULL, got %q", *rated.Description)
	}
	if _, err := e.hotels.Update(h.ID, HotelPatch{Rating: ptr(6.0)}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestHotelDeleteCascadesAndClearsManagers(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)
	guest := e.user(t, "guest@example.com")
	manager := models.User{Name: "Boss", Email: "boss@example.com", Role: models.RoleManager, HotelID: &h.ID}
	if err := e.users.Create(&manager); err != nil {
		t.Fatal(err)
	}
	r := e.room(t, h.ID, "101")
	b := e.booking(t, r.ID, guest.ID)
	e.review(t, h.ID, guest.ID, 5)

	if err := e.hotels.Delete(h.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := e.rooms.GetByID(r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("room still present: %v", err)
	}
	if _, err := e.bookings.GetByID(b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("booking still present: %v", err)
	}
	if reviews, _ := e.reviews.List(ReviewFilter{HotelID: h.ID}); len(reviews) != 0 {
		t.Errorf("reviews still present: %d", len(reviews))
	}
	m, err := e.users.GetByID(manager.ID)
	if err != nil {
		t.Fatalf("manager should survive: %v", err)
	}
	if m.HotelID != nil {
		t.Errorf("manager hotel_id = %d, want nil", *m.HotelID)
	}

	if err := e.hotels.Delete(h.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestRoomValidationAndFilters(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)

	suite := models.Room{HotelID: h.ID, RoomNumber: "301", Type: "suite", Price: 5000, Capacity: 4, Status: models.RoomBooked}
	if err := e.rooms.Create(&suite); err != nil {
		t.Fatal(err)
	}
	single := e.room(t, h.ID, "102")
	if single.Status != models.RoomAvailable {
		t.Errorf("default status = %q", single.Status)
	}

	tests := []struct {
		name string
		room models.Room
		want error
	}{
		{"unknown hotel", models.Room{HotelID: 77, RoomNumber: "1", Type: "single", Price: 1, Capacity: 1}, ErrInvalidReference},
		{"bad status", models.Room{HotelID: h.ID, RoomNumber: "1", Type: "single", Price: 1, Capacity: 1, Status: "dirty"}, ErrInvalidValue},
		{"zero capacity", models.Room{HotelID: h.ID, RoomNumber: "1", Type: "single", Price: 1}, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.room
			if err := e.rooms.Create(&r); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	big, err := e.rooms.List(RoomFilter{HotelID: h.ID, MinCapacity: 3})
	if err != nil || len(big) != 1 || big[0].ID != suite.ID {
		t.Errorf("MinCapacity filter = %+v, %v", big, err)
	}
	free, err := e.rooms.List(RoomFilter{Status: models.RoomAvailable})
	if err != nil || len(free) != 1 || free[0].ID != single.ID {
		t.Errorf("Status filter = %+v, %v", free, err)
	}

	updated, err := e.rooms.Update(single.ID, RoomPatch{Status: ptr(models.RoomBooked), Price: ptr(2500.0)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.RoomBooked || updated.Price != 2500 {
		t.Errorf("unexpected room: %+v", updated)
	}
}

func TestBookingLifecycle(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)
	u := e.user(t, "guest@example.com")
	r := e.room(t, h.ID, "101")

	b := e.booking(t, r.ID, u.ID)
	stored, err := e.bookings.GetByID(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.BookingPending {
		t.Errorf("status = %q, want pending", stored.Status)
	}

	bad := models.Booking{RoomID: r.ID, UserID: u.ID, CheckIn: day("2025-03-04"), CheckOut: day("2025-03-01")}
	if err := e.bookings.Create(&bad); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("reversed stay: expected ErrInvalidValue, got %v", err)
	}
	orphan := models.Booking{RoomID: r.ID, UserID: 404, CheckIn: day("2025-03-01"), CheckOut: day("2025-03-02")}
	if err := e.bookings.Create(&orphan); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("unknown user: expected ErrInvalidReference, got %v", err)
	}

	confirmed, err := e.bookings.Update(b.ID, BookingPatch{Status: ptr(models.BookingConfirmed)})
	if err != nil {
		t.Fatal(err)
	}
	if confirmed.Status != models.BookingConfirmed {
		t.Errorf("status = %q, want confirmed", confirmed.Status)
	}
	if _, err := e.bookings.Update(b.ID, BookingPatch{CheckOut: ptr(day("2025-02-01"))}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("checkout before checkin: expected ErrInvalidValue, got %v", err)
	}

	list, err := e.bookings.List(BookingFilter{UserID: u.ID, Status: models.BookingConfirmed})
	if err != nil || len(list) != 1 {
		t.Errorf("List = %+v, %v", list, err)
	}
}

func TestPaymentsAndTotals(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)
	u := e.user(t, "guest@example.com")
	r := e.room(t, h.ID, "101")
	b := e.booking(t, r.ID, u.ID)

	first := models.Payment{BookingID: b.ID, Amount: 1500, Method: "card"}
	if err := e.payments.Create(&first); err != nil {
		t.Fatal(err)
	}
	second := models.Payment{BookingID: b.ID, Amount: 500.5, Method: "cash"}
	if err := e.payments.Create(&second); err != nil {
		t.Fatal(err)
	}

	stored, err := e.payments.GetByID(first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.PaymentPaid || stored.PaidAt.IsZero() {
		t.Errorf("defaults not applied: %+v", stored)
	}

	total, err := e.payments.TotalForBooking(b.ID)
	if err != nil || total != 2000.5 {
		t.Errorf("total = %v, %v", total, err)
	}
	if total, err := e.payments.TotalForBooking(9999); err != nil || total != 0 {
		t.Errorf("empty total = %v, %v", total, err)
	}

	if err := e.payments.Create(&models.Payment{BookingID: b.ID, Amount: -1, Method: "card"}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("negative amount: got %v", err)
	}
	if err := e.payments.Create(&models.Payment{BookingID: 31337, Amount: 10, Method: "card"}); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("unknown booking: got %v", err)
	}

	refunded, err := e.payments.Update(second.ID, PaymentPatch{Status: ptr("refunded")})
	if err != nil || refunded.Status != "refunded" {
		t.Errorf("Update = %+v, %v", refunded, err)
	}

	withPayments, err := e.bookings.GetWithPayments(b.ID)
	if err != nil || len(withPayments.Payments) != 2 || withPayments.Payments[0].ID != first.ID {
		t.Errorf("GetWithPayments = %+v, %v", withPayments, err)
	}

	if err := e.rooms.Delete(r.ID); err != nil {
		t.Fatal(err)
	}
	if left, _ := e.payments.List(PaymentFilter{BookingID: b.ID}); len(left) != 0 {
		t.Errorf("payments survived room delete: %d", len(left))
	}
}

func TestReviewsRefreshHotelRating(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)
	a := e.user(t, "a@example.com")
	b := e.user(t, "b@example.com")
	c := e.user(t, "c@example.com")

	e.review(t, h.ID, a.ID, 5)
	if got := e.rating(t, h.ID); got != 5 {
		t.Errorf("rating = %v, want 5", got)
	}

	rb := e.review(t, h.ID, b.ID, 4)
	e.review(t, h.ID, c.ID, 4)
	if got := e.rating(t, h.ID); got != 4.33 {
		t.Errorf("rating = %v, want 4.33", got)
	}

	if _, err := e.reviews.Update(rb.ID, ReviewPatch{Rating: ptr(1)}); err != nil {
		t.Fatal(err)
	}
	if got := e.rating(t, h.ID); got != 3.33 {
		t.Errorf("rating after update = %v, want 3.33", got)
	}

	if err := e.reviews.Delete(rb.ID); err != nil {
		t.Fatal(err)
	}
	if got := e.rating(t, h.ID); got != 4.5 {
		t.Errorf("rating after delete = %v, want 4.5", got)
	}

	if err := e.users.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if got := e.rating(t, h.ID); got != 4 {
		t.Errorf("rating after user delete = %v, want 4", got)
	}

	if err := e.users.Delete(c.ID); err != nil {
		t.Fatal(err)
	}
	if got := e.rating(t, h.ID); got != 0 {
		t.Errorf("rating with no reviews = %v, want 0", got)
	}
}

func TestReviewValidation(t *testing.T) {
	e := newTestEnv(t)
	h := e.hotel(t)
	u := e.user(t, "a@example.com")

	for _, rating := range []int{0, 6} {
		r := models.Review{HotelID: h.ID, UserID: u.ID, Rating: rating}
		if err := e.reviews.Create(&r); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("rating %d: expected ErrInvalidValue, got %v", rating, err)
		}
	}

	r := models.Review{HotelID: 555, UserID: u.ID, Rating: 3}
	if err := e.reviews.Create(&r); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("unknown hotel: expected ErrInvalidReference, got %v", err)
	}

	if err := e.reviews.Delete(12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	withComment := models.Review{HotelID: h.ID, UserID: u.ID, Rating: 4, Comment: ptr(" clean rooms ")}
	if err := e.reviews.Create(&withComment); err != nil {
		t.Fatal(err)
	}
	if withComment.Comment == nil || *withComment.Comment != "clean rooms" {
		t.Errorf("comment = %v, want trimmed text", withComment.Comment)
	}
	cleared, err := e.reviews.Update(withComment.ID, ReviewPatch{Comment: ptr("   ")})
	if err != nil {
		t.Fatal(err)
	}
	if cleared.Comment != nil {
		t.Errorf("blank comment should be NULL, got %q", *cleared.Comment)
	}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"foreign key", gorm.ErrForeignKeyViolated, ErrInvalidReference},
		{"postgres unique", errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`), ErrDuplicate},
		{"check message", errors.New("CHECK constraint failed: chk_rooms_status"), ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("translateError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	if translateError(nil) != nil {
		t.Error("nil must stay nil")
	}
	plain := errors.New("connection reset")
	if translateError(plain) != plain {
		t.Error("unrelated errors must pass through")
	}
}
