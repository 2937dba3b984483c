package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hyeonm/finmart-api/internal/domain"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
	"github.com/hyeonm/finmart-api/internal/store"
)

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
//
// Products are persisted as a kind discriminator plus a JSONB details
// payload holding the variant-specific terms. The discriminator drives
// decoding back into the concrete domain variants.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// Variant payloads stored in the details JSONB column.
// Field names are part of the storage contract.
type cardDetails struct {
	AnnualFee int64    `json:"annual_fee"`
	Brand     string   `json:"brand"`
	Benefits  []string `json:"benefits"`
}

type loanDetails struct {
	InterestRateBP int32 `json:"interest_rate_bp"`
	LoanLimit      int64 `json:"loan_limit"`
	TermMonths     int32 `json:"term_months"`
}

type savingsDetails struct {
	InterestRateBP int32 `json:"interest_rate_bp"`
	TermMonths     int32 `json:"term_months"`
	MonthlyCap     int64 `json:"monthly_cap"`
}

type subscriptionDetails struct {
	MonthlyFee int64  `json:"monthly_fee"`
	Plan       string `json:"plan"`
}

// encodeProductDetails validates a product variant and marshals its
// variant-specific terms into the details payload.
// Returns a wrapped domain.ErrUnknownProductKind for unrecognized variants.
func encodeProductDetails(product domain.Product) ([]byte, error) {
	switch p := product.(type) {
	case *domain.Card:
		if err := p.Validate(); err != nil {
			return nil, err
		}
		benefits := p.Benefits
		if benefits == nil {
			benefits = []string{}
		}
		return json.Marshal(cardDetails{
			AnnualFee: p.AnnualFee,
			Brand:     p.Brand,
			Benefits:  benefits,
		})
	case *domain.Loan:
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return json.Marshal(loanDetails{
			InterestRateBP: p.InterestRateBP,
			LoanLimit:      p.LoanLimit,
			TermMonths:     p.TermMonths,
		})
	case *domain.Savings:
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return json.Marshal(savingsDetails{
			InterestRateBP: p.InterestRateBP,
			TermMonths:     p.TermMonths,
			MonthlyCap:     p.MonthlyCap,
		})
	case *domain.Subscription:
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return json.Marshal(subscriptionDetails{
			MonthlyFee: p.MonthlyFee,
			Plan:       p.Plan,
		})
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProductKind, product.Kind())
	}
}

// decodeProduct rebuilds a concrete product variant from a stored row.
// Returns a wrapped domain.ErrUnknownProductKind when the stored kind has
// no decoder.
func decodeProduct(base domain.ProductBase, kind domain.ProductKind, details []byte) (domain.Product, error) {
	switch kind {
	case domain.ProductKindCard:
		var d cardDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, fmt.Errorf("failed to decode card details: %w", err)
		}
		if d.Benefits == nil {
			d.Benefits = []string{}
		}
		return &domain.Card{
			ProductBase: base,
			AnnualFee:   d.AnnualFee,
			Brand:       d.Brand,
			Benefits:    d.Benefits,
		}, nil
	case domain.ProductKindLoan:
		var d loanDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, fmt.Errorf("failed to decode loan details: %w", err)
		}
		return &domain.Loan{
			ProductBase:    base,
			InterestRateBP: d.InterestRateBP,
			LoanLimit:      d.LoanLimit,
			TermMonths:     d.TermMonths,
		}, nil
	case domain.ProductKindSavings:
		var d savingsDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, fmt.Errorf("failed to decode savings details: %w", err)
		}
		return &domain.Savings{
			ProductBase:    base,
			InterestRateBP: d.InterestRateBP,
			TermMonths:     d.TermMonths,
			MonthlyCap:     d.MonthlyCap,
		}, nil
	case domain.ProductKindSubscription:
		var d subscriptionDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, fmt.Errorf("failed to decode subscription details: %w", err)
		}
		return &domain.Subscription{
			ProductBase: base,
			MonthlyFee:  d.MonthlyFee,
			Plan:        d.Plan,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProductKind, kind)
	}
}

// Create implements store.ProductStore.Create
// It saves a new product of any variant, handling domain validation.
// Returns validation errors from the domain product if data is invalid.
func (s *PostgresProductStore) Create(ctx context.Context, product domain.Product) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	details, err := encodeProductDetails(product)
	if err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ProductID().String()),
			slog.String("kind", string(product.Kind())))
		return err
	}

	base := productBase(product)

	query := `
		INSERT INTO products (id, name, kind, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		base.ID,
		base.Name,
		product.Kind(),
		details,
		base.CreatedAt,
		base.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("product_id", base.ID.String()),
			slog.String("kind", string(product.Kind())))
		return MapError(err)
	}

	log.Info("product created successfully",
		slog.String("product_id", base.ID.String()),
		slog.String("kind", string(product.Kind())))
	return nil
}

// GetByID implements store.ProductStore.GetByID
// It retrieves a product by its unique ID, decoded into its concrete variant.
// Returns store.ErrProductNotFound if the product does not exist.
// Returns a wrapped domain.ErrUnknownProductKind if the stored kind has no decoder.
func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving product by ID", slog.String("product_id", id.String()))

	query := `
		SELECT id, name, kind, details, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var base domain.ProductBase
	var kind string
	var details []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&base.ID,
		&base.Name,
		&kind,
		&details,
		&base.CreatedAt,
		&base.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return nil, err
	}

	product, err := decodeProduct(base, domain.ProductKind(kind), details)
	if err != nil {
		log.Error("failed to decode product",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()),
			slog.String("kind", kind))
		return nil, err
	}

	log.Debug("product retrieved successfully",
		slog.String("product_id", id.String()),
		slog.String("kind", kind))
	return product, nil
}

// List implements store.ProductStore.List
// It retrieves all products in the catalog, newest first. Rows whose kind
// has no decoder are skipped with a warning rather than failing the whole
// listing.
// Returns an empty slice if the catalog is empty.
func (s *PostgresProductStore) List(ctx context.Context) ([]domain.Product, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing products")

	query := `
		SELECT id, name, kind, details, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query products",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var products []domain.Product
	for rows.Next() {
		var base domain.ProductBase
		var kind string
		var details []byte

		err := rows.Scan(
			&base.ID,
			&base.Name,
			&kind,
			&details,
			&base.CreatedAt,
			&base.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan product row",
				slog.String("error", err.Error()))
			return nil, err
		}

		product, err := decodeProduct(base, domain.ProductKind(kind), details)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownProductKind) {
				log.Warn("skipping product with unknown kind",
					slog.String("product_id", base.ID.String()),
					slog.String("kind", kind))
				continue
			}
			log.Error("failed to decode product",
				slog.String("error", err.Error()),
				slog.String("product_id", base.ID.String()),
				slog.String("kind", kind))
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no products found
	if products == nil {
		products = []domain.Product{}
	}

	log.Debug("listed products", slog.Int("count", len(products)))
	return products, nil
}

// WithTx implements store.ProductStore.WithTx
// It returns a new ProductStore instance that uses the provided transaction.
// This allows multiple operations to be executed within a single transaction.
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{
		db:     tx,
		logger: s.logger,
	}
}

// productBase extracts the shared identity fields from a product variant.
func productBase(product domain.Product) domain.ProductBase {
	switch p := product.(type) {
	case *domain.Card:
		return p.ProductBase
	case *domain.Loan:
		return p.ProductBase
	case *domain.Savings:
		return p.ProductBase
	case *domain.Subscription:
		return p.ProductBase
	default:
		return domain.ProductBase{ID: product.ProductID(), Name: product.ProductName()}
	}
}
