package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
// Свободноформатные поля (tags, attributes, warranty, shipping)
// хранятся как jsonb и переносятся сырыми байтами.
type ProductModel struct {
	ID                  uuid.UUID        `db:"id"`
	Name                string           `db:"name"`
	Slug                string           `db:"slug"`
	Description         string           `db:"description"`
	Summary             *string          `db:"summary"`
	PriceAmount         decimal.Decimal  `db:"price_amount"`
	PriceCurrency       string           `db:"price_currency"`
	CompareAtPrice      *decimal.Decimal `db:"compare_at_price"`
	BrandID             *uuid.UUID       `db:"brand_id"`
	Model               *string          `db:"model"`
	SKU                 string           `db:"sku"`
	Status              string           `db:"status"`
	Stock               int              `db:"stock"`
	IsAvailable         bool             `db:"is_available"`
	IsNew               bool             `db:"is_new"`
	IsRefurbished       bool             `db:"is_refurbished"`
	Condition           string           `db:"condition"`
	HasVariants         bool             `db:"has_variants"`
	Tags                []byte           `db:"tags"`
	Attributes          []byte           `db:"attributes"`
	HighlightedFeatures []byte           `db:"highlighted_features"`
	Warranty            []byte           `db:"warranty"`
	Shipping            []byte           `db:"shipping"`
	CreatedAt           time.Time        `db:"created_at"`
	UpdatedAt           *time.Time       `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Slug        string     `db:"slug"`
	Description *string    `db:"description"`
	ParentID    *uuid.UUID `db:"parent_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// BrandModel представляет запись таблицы brands в PostgreSQL.
type BrandModel struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Logo        *string    `db:"logo"`
	Description *string    `db:"description"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// ImageModel представляет запись таблицы product_images в PostgreSQL.
type ImageModel struct {
	ID        uuid.UUID  `db:"id"`
	ProductID uuid.UUID  `db:"product_id"`
	VariantID *uuid.UUID `db:"variant_id"`
	URL       string     `db:"url"`
	Alt       *string    `db:"alt"`
	IsMain    bool       `db:"is_main"`
	SortOrder int        `db:"sort_order"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// VariantModel представляет запись таблицы product_variants в PostgreSQL.
type VariantModel struct {
	ID              uuid.UUID        `db:"id"`
	ParentProductID uuid.UUID        `db:"parent_product_id"`
	Name            string           `db:"name"`
	SKU             string           `db:"sku"`
	PriceAmount     decimal.Decimal  `db:"price_amount"`
	PriceCurrency   string           `db:"price_currency"`
	CompareAtPrice  *decimal.Decimal `db:"compare_at_price"`
	Stock           int              `db:"stock"`
	IsAvailable     bool             `db:"is_available"`
	IsSelected      bool             `db:"is_selected"`
	Attributes      []byte           `db:"attributes"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       *time.Time       `db:"updated_at"`
}

// ConfigOptionModel представляет запись таблицы config_options в PostgreSQL.
type ConfigOptionModel struct {
	ID        uuid.UUID  `db:"id"`
	ProductID uuid.UUID  `db:"product_id"`
	Name      string     `db:"name"`
	Values    []byte     `db:"option_values"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// ReviewModel представляет запись таблицы product_reviews в PostgreSQL.
type ReviewModel struct {
	ID                 uuid.UUID  `db:"id"`
	ProductID          uuid.UUID  `db:"product_id"`
	UserID             string     `db:"user_id"`
	UserName           string     `db:"user_name"`
	Rating             int        `db:"rating"`
	Title              *string    `db:"title"`
	Comment            string     `db:"comment"`
	IsVerifiedPurchase bool       `db:"is_verified_purchase"`
	Likes              int        `db:"likes"`
	Attributes         []byte     `db:"attributes"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at"`
}

// DummyModel представляет запись таблицы dummies в PostgreSQL.
type DummyModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID string     `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
