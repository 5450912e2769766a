package models

import (
	"time"
)

type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleShopOwner UserRole = "shop_owner"
	RoleAdmin     UserRole = "admin"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserBanned   UserStatus = "banned"
)

type ShopStatus string

const (
	ShopPending   ShopStatus = "pending"
	ShopActive    ShopStatus = "active"
	ShopSuspended ShopStatus = "suspended"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentBanking PaymentMethod = "banking"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderDelivering OrderStatus = "delivering"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"  json:"id"`
	Email        string     `gorm:"unique;not null"           json:"email"`
	PasswordHash string     `gorm:"not null"                  json:"-"`
	FullName     string     `gorm:"not null"                  json:"full_name"`
	Phone        string     `json:"phone"`
	Avatar       string     `json:"avatar"`
	Role         UserRole   `gorm:"not null;default:customer" json:"role"`
	Status       UserStatus `gorm:"not null;default:active"   json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

type UserAddress struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	UserID    uint      `gorm:"index;not null"  json:"user_id"`
	Label     string    `json:"label"`
	Address   string    `gorm:"not null"        json:"address"`
	IsDefault bool      `gorm:"default:false"   json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type Shop struct {
	ID              uint       `gorm:"primaryKey"              json:"id"`
	UserID          uint       `gorm:"index;not null"          json:"user_id"`
	ShopName        string     `gorm:"not null"                json:"shop_name"`
	ShopDescription string     `json:"shop_description"`
	CoverImage      string     `json:"cover_image"`
	Address         string     `gorm:"not null"                json:"address"`
	OpeningTime     string     `json:"opening_time"`
	ClosingTime     string     `json:"closing_time"`
	Status          ShopStatus `gorm:"not null;default:pending" json:"status"`
	RatingAverage   float64    `gorm:"default:0"               json:"rating_average"`
	TotalReviews    int        `gorm:"default:0"               json:"total_reviews"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
}

type Category struct {
	ID                  uint      `gorm:"primaryKey"      json:"id"`
	CategoryName        string    `gorm:"unique;not null" json:"category_name"`
	CategoryDescription string    `json:"category_description"`
	CreatedAt           time.Time `json:"created_at"`
}

type ShopCategory struct {
	ID         uint `gorm:"primaryKey"                                json:"id"`
	ShopID     uint `gorm:"uniqueIndex:idx_shop_category;not null"    json:"shop_id"`
	CategoryID uint `gorm:"uniqueIndex:idx_shop_category;not null"    json:"category_id"`
}

type FoodItem struct {
	ID              uint      `gorm:"primaryKey"      json:"id"`
	ShopID          uint      `gorm:"index;not null"  json:"shop_id"`
	CategoryID      uint      `gorm:"index;not null"  json:"category_id"`
	FoodName        string    `gorm:"not null"        json:"food_name"`
	FoodDescription string    `json:"food_description"`
	Price           int64     `gorm:"not null"        json:"price"`
	DiscountPrice   *int64    `json:"discount_price,omitempty"`
	Image           string    `json:"image"`
	CreatedAt       time.Time `json:"created_at"`
}

// CartItem is one (user, shop, food item) row; adding the same triple again
// increments Quantity instead of inserting a duplicate.
type CartItem struct {
	ID         uint      `gorm:"primaryKey"                                   json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_shop_food;not null"      json:"user_id"`
	ShopID     uint      `gorm:"uniqueIndex:idx_user_shop_food;not null"      json:"shop_id"`
	FoodItemID uint      `gorm:"uniqueIndex:idx_user_shop_food;not null"      json:"food_item_id"`
	Quantity   uint      `gorm:"default:1;check:quantity>0"                   json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

type Order struct {
	ID              uint          `gorm:"primaryKey"              json:"id"`
	OrderCode       string        `gorm:"uniqueIndex;not null"    json:"order_code"`
	CustomerID      uint          `gorm:"index;not null"          json:"customer_id"`
	ShopID          uint          `gorm:"index;not null"          json:"shop_id"`
	DeliveryAddress string        `gorm:"not null"                json:"delivery_address"`
	DeliveryPhone   string        `gorm:"not null"                json:"delivery_phone"`
	DeliveryNote    string        `json:"delivery_note"`
	Subtotal        int64         `gorm:"not null"                json:"subtotal"`
	DeliveryFee     int64         `gorm:"not null"                json:"delivery_fee"`
	DiscountAmount  int64         `gorm:"not null;default:0"      json:"discount_amount"`
	TotalAmount     int64         `gorm:"not null"                json:"total_amount"`
	PaymentMethod   PaymentMethod `gorm:"not null;default:COD"    json:"payment_method"`
	PaymentStatus   PaymentStatus `gorm:"not null;default:unpaid" json:"payment_status"`
	OrderStatus     OrderStatus   `gorm:"not null;default:pending" json:"order_status"`
	CancelledBy     *uint         `json:"cancelled_by,omitempty"`
	CancelReason    *string       `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	ConfirmedAt     *time.Time    `json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID"      json:"items,omitempty"`
}

// OrderItem is a point-in-time copy of the food item at order creation;
// later catalog edits must not change FoodName, UnitPrice or LineSubtotal.
type OrderItem struct {
	ID           uint   `gorm:"primaryKey"      json:"id"`
	OrderID      uint   `gorm:"index;not null"  json:"order_id"`
	FoodItemID   uint   `gorm:"not null"        json:"food_item_id"`
	FoodName     string `gorm:"not null"        json:"food_name"`
	UnitPrice    int64  `gorm:"not null"        json:"unit_price"`
	Quantity     uint   `gorm:"not null;check:quantity>0" json:"quantity"`
	Note         string `json:"note"`
	LineSubtotal int64  `gorm:"not null"        json:"line_subtotal"`
}

type Review struct {
	ID         uint       `gorm:"primaryKey"           json:"id"`
	OrderID    uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	CustomerID uint       `gorm:"index;not null"       json:"customer_id"`
	ShopID     uint       `gorm:"index;not null"       json:"shop_id"`
	Rating     int        `gorm:"not null"             json:"rating"`
	Comment    string     `json:"comment"`
	Images     string     `json:"images"`
	ShopReply  *string    `json:"shop_reply,omitempty"`
	RepliedAt  *time.Time `json:"replied_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
