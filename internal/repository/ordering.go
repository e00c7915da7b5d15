package repository

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// sequencer keeps sibling sort_order values dense (exactly 1..N) within
// one container scope. Sections are scoped by report_id, content
// elements by section_id. All mutating helpers expect to run inside a
// transaction so a failure mid-sequence rolls the whole renumber back.
type sequencer struct {
	model    any    // e.g. &model.Section{}
	scopeCol string // "report_id" or "section_id"
}

type seqRow struct {
	ID        uint
	SortOrder int
}

func (s sequencer) siblings(tx *gorm.DB, scopeID uint) ([]seqRow, error) {
	var rows []seqRow
	err := tx.Model(s.model).
		Select("id", "sort_order").
		Where(s.scopeCol+" = ?", scopeID).
		Order("sort_order ASC, id ASC"). // ties broken by primary key
		Find(&rows).Error
	return rows, err
}

// renumber assigns 1..N in the current visual order, writing only the
// rows whose value actually changes. Idempotent.
func (s sequencer) renumber(tx *gorm.DB, scopeID uint) error {
	rows, err := s.siblings(tx, scopeID)
	if err != nil {
		return err
	}
	for i, row := range rows {
		want := i + 1
		if row.SortOrder == want {
			continue
		}
		if err := tx.Model(s.model).
			Where("id = ?", row.ID).
			Update("sort_order", want).Error; err != nil {
			return err
		}
	}
	return nil
}

// nextOrder returns max(sort_order)+1, or 1 for an empty container.
// Prior explicit-order inserts may have left gaps; appends do not
// compact, only renumber does.
func (s sequencer) nextOrder(tx *gorm.DB, scopeID uint) (int, error) {
	var maxOrder sql.NullInt64
	if err := tx.Model(s.model).
		Where(s.scopeCol+" = ?", scopeID).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 1, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

func (s sequencer) count(tx *gorm.DB, scopeID uint) (int64, error) {
	var n int64
	err := tx.Model(s.model).Where(s.scopeCol+" = ?", scopeID).Count(&n).Error
	return n, err
}

// move places the row at newOrder, shifts the siblings lying between
// the old and the new position toward the vacated slot, then renumbers
// unconditionally. The trailing renumber tolerates any pre-existing
// non-dense state.
func (s sequencer) move(tx *gorm.DB, scopeID, id uint, newOrder int) error {
	var row seqRow
	if err := tx.Model(s.model).
		Select("id", "sort_order").
		Where("id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	oldOrder := row.SortOrder
	if oldOrder == newOrder {
		return nil
	}

	if err := tx.Model(s.model).
		Where("id = ?", id).
		Update("sort_order", newOrder).Error; err != nil {
		return err
	}

	if oldOrder < newOrder {
		// forward move: siblings in (old, new] step back by one
		if err := tx.Model(s.model).
			Where(s.scopeCol+" = ? AND id <> ? AND sort_order > ? AND sort_order <= ?",
				scopeID, id, oldOrder, newOrder).
			Update("sort_order", gorm.Expr("sort_order - 1")).Error; err != nil {
			return err
		}
	} else {
		// backward move: siblings in [new, old) step forward by one
		if err := tx.Model(s.model).
			Where(s.scopeCol+" = ? AND id <> ? AND sort_order >= ? AND sort_order < ?",
				scopeID, id, newOrder, oldOrder).
			Update("sort_order", gorm.Expr("sort_order + 1")).Error; err != nil {
			return err
		}
	}

	return s.renumber(tx, scopeID)
}

// swap exchanges the sort orders of exactly two rows, then renumbers as
// a safety net. Used for adjacent move up/down.
func (s sequencer) swap(tx *gorm.DB, scopeID, aID, bID uint) error {
	var a, b seqRow
	if err := tx.Model(s.model).Select("id", "sort_order").Where("id = ?", aID).Take(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := tx.Model(s.model).Select("id", "sort_order").Where("id = ?", bID).Take(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := tx.Model(s.model).Where("id = ?", a.ID).Update("sort_order", b.SortOrder).Error; err != nil {
		return err
	}
	if err := tx.Model(s.model).Where("id = ?", b.ID).Update("sort_order", a.SortOrder).Error; err != nil {
		return err
	}
	return s.renumber(tx, scopeID)
}
