package coupons_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	"github.com/ecopuntos/reciclaje-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para tests: misma semántica que el adaptador PostgreSQL.
// El runner toma un mutex por transacción (equivalente al bloqueo de fila) y
// restaura un snapshot si el callback falla (equivalente al Rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu          sync.Mutex
	account     entity.CouponAccount
	txs         []entity.CouponTransaction
	items       map[string]entity.RewardItem
	redemptions []entity.Redemption
}

func newMemStore() *memStore {
	return &memStore{
		account: entity.CouponAccount{ID: entity.AccountID},
		items:   map[string]entity.RewardItem{},
	}
}

type memSnapshot struct {
	account     entity.CouponAccount
	txs         []entity.CouponTransaction
	items       map[string]entity.RewardItem
	redemptions []entity.Redemption
}

func (s *memStore) snapshot() memSnapshot {
	items := make(map[string]entity.RewardItem, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	return memSnapshot{
		account:     s.account,
		txs:         append([]entity.CouponTransaction(nil), s.txs...),
		items:       items,
		redemptions: append([]entity.Redemption(nil), s.redemptions...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.account = snap.account
	s.txs = snap.txs
	s.items = snap.items
	s.redemptions = snap.redemptions
}

// memTxRunner implementa coupons.TxRunner sobre memStore.
type memTxRunner struct {
	s *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.CouponRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&memCouponRepo{s: r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *memTxRunner) RunRedemption(ctx context.Context, fn func(
	repository.CouponRepository,
	repository.RewardItemRepository,
	repository.RedemptionRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	err := fn(&memCouponRepo{s: r.s}, &memItemRepo{s: r.s}, &memRedemptionRepo{s: r.s})
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ─── repositorio de cupones ──────────────────────────────────────────────────

type memCouponRepo struct {
	s *memStore
}

func (r *memCouponRepo) GetAccount() (*entity.CouponAccount, error) {
	acc := r.s.account
	return &acc, nil
}

func (r *memCouponRepo) GetAccountForUpdate() (*entity.CouponAccount, error) {
	acc := r.s.account
	return &acc, nil
}

func (r *memCouponRepo) UpdateAccount(account *entity.CouponAccount) error {
	// Red de seguridad equivalente al CHECK balance >= 0 de la tabla
	if account.Balance < 0 {
		return domain.ErrInsufficientBalance
	}
	r.s.account = *account
	return nil
}

func (r *memCouponRepo) CreateTransaction(tx *entity.CouponTransaction) error {
	r.s.txs = append(r.s.txs, *tx)
	return nil
}

func (r *memCouponRepo) ListTransactions(filter repository.TransactionFilter) ([]*entity.CouponTransaction, int64, error) {
	var matched []entity.CouponTransaction
	for _, tx := range r.s.txs {
		if filter.From != nil && tx.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.CreatedAt.After(*filter.To) {
			continue
		}
		if filter.Kind != "" && tx.Kind != filter.Kind {
			continue
		}
		matched = append(matched, tx)
	}
	// Más reciente primero (orden de inserción invertido)
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	total := int64(len(matched))

	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	out := make([]*entity.CouponTransaction, 0, end-start)
	for i := start; i < end; i++ {
		tx := matched[i]
		out = append(out, &tx)
	}
	return out, total, nil
}

func (r *memCouponRepo) Summary(bucket string, from, to time.Time) ([]*repository.PeriodSummary, error) {
	buckets := map[time.Time]*repository.PeriodSummary{}
	for _, tx := range r.s.txs {
		if tx.CreatedAt.Before(from) || tx.CreatedAt.After(to) {
			continue
		}
		key := truncatePeriod(bucket, tx.CreatedAt)
		row, ok := buckets[key]
		if !ok {
			row = &repository.PeriodSummary{PeriodStart: key}
			buckets[key] = row
		}
		if tx.Amount > 0 {
			row.Earned += tx.Amount
		} else {
			row.Used += -tx.Amount
		}
	}
	out := make([]*repository.PeriodSummary, 0, len(buckets))
	for _, row := range buckets {
		row.Net = row.Earned - row.Used
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.After(out[j].PeriodStart) })
	return out, nil
}

func truncatePeriod(bucket string, t time.Time) time.Time {
	switch bucket {
	case "weekly":
		day := t.AddDate(0, 0, -int(t.Weekday()))
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
	case "monthly":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// ─── repositorio de artículos ────────────────────────────────────────────────

type memItemRepo struct {
	s *memStore
}

func (r *memItemRepo) Create(item *entity.RewardItem) error {
	for _, existing := range r.s.items {
		if strings.EqualFold(existing.Name, item.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.RewardItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memItemRepo) GetByIDForUpdate(id string) (*entity.RewardItem, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) Update(item *entity.RewardItem) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	if item.Stock < 0 {
		return domain.ErrInsufficientStock
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) List(includeInactive bool, limit, offset int) ([]*entity.RewardItem, int64, error) {
	var all []entity.RewardItem
	for _, item := range r.s.items {
		if !includeInactive && !item.IsActive {
			continue
		}
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	out := make([]*entity.RewardItem, 0, end-offset)
	for i := offset; i < end; i++ {
		item := all[i]
		out = append(out, &item)
	}
	return out, total, nil
}

// ─── repositorio de canjes ───────────────────────────────────────────────────

type memRedemptionRepo struct {
	s *memStore
}

func (r *memRedemptionRepo) Create(redemption *entity.Redemption) error {
	r.s.redemptions = append(r.s.redemptions, *redemption)
	return nil
}

func (r *memRedemptionRepo) GetByID(id string) (*entity.Redemption, error) {
	for _, red := range r.s.redemptions {
		if red.ID == id {
			out := red
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memRedemptionRepo) List(limit, offset int) ([]*entity.Redemption, int64, error) {
	total := int64(len(r.s.redemptions))
	out := make([]*entity.Redemption, 0, len(r.s.redemptions))
	for i := len(r.s.redemptions) - 1; i >= 0; i-- {
		red := r.s.redemptions[i]
		out = append(out, &red)
	}
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if limit <= 0 || end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}
