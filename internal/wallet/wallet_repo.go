package wallet

import (
	"context"
	"database/sql"

	"go-teamhub/internal/shared/txdb"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=wallet_repo.go -destination=mock/wallet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Wallet) error
	Update(ctx context.Context, w *Wallet) error
	FindActiveByUser(ctx context.Context, userID string) (*Wallet, error)
	FindActiveByUserForUpdate(ctx context.Context, userID string) (*Wallet, error)
	AddDeduction(ctx context.Context, empID string, amount decimal.Decimal) (bool, error)
	ListActive(ctx context.Context) ([]Wallet, error)
	ListActiveViews(ctx context.Context) ([]WalletView, error)
	ActiveTotals(ctx context.Context) (Totals, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txdb.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, w *Wallet) error {
	return r.conn(ctx).Create(w).Error
}

func (r *repository) Update(ctx context.Context, w *Wallet) error {
	return r.conn(ctx).Save(w).Error
}

func (r *repository) FindActiveByUser(ctx context.Context, userID string) (*Wallet, error) {
	var w Wallet
	err := r.conn(ctx).
		Where("user_id = ? AND cycle_end IS NULL", userID).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindActiveByUserForUpdate(ctx context.Context, userID string) (*Wallet, error) {
	var w Wallet
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND cycle_end IS NULL", userID).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// AddDeduction increments the deduction of the active wallet of empID in a
// single statement and reports whether such a wallet exists.
func (r *repository) AddDeduction(ctx context.Context, empID string, amount decimal.Decimal) (bool, error) {
	res := r.conn(ctx).
		Model(&Wallet{}).
		Where("emp_id = ? AND cycle_end IS NULL", empID).
		Updates(map[string]any{
			"deduction":  gorm.Expr("deduction + ?", amount),
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Wallet, error) {
	var rows []Wallet
	err := r.conn(ctx).
		Where("cycle_end IS NULL").
		Order("emp_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListActiveViews(ctx context.Context) ([]WalletView, error) {
	var rows []WalletView
	err := r.conn(ctx).
		Table("wallets AS w").
		Select("w.*, u.full_name, u.role").
		Joins("JOIN users u ON u.id = w.user_id").
		Where("w.cycle_end IS NULL").
		Order("w.emp_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ActiveTotals(ctx context.Context) (Totals, error) {
	var t Totals
	query := `
SELECT
	COALESCE(SUM(monthly_salary), 0) AS monthly_salary,
	COALESCE(SUM(current_month_earned), 0) AS earned,
	COALESCE(SUM(deduction), 0) AS deduction
FROM wallets
WHERE cycle_end IS NULL
`
	err := r.conn(ctx).Raw(query).Scan(&t).Error
	return t, err
}
