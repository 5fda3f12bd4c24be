package quotations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/dmitrijs2005/doccatalog/internal/common"
	"github.com/dmitrijs2005/doccatalog/internal/dbx"
	"github.com/dmitrijs2005/doccatalog/internal/server/models"
)

// Bucket holds one JSON record per quotation, keyed by id.
const Bucket = "quotations"

// BoltRepository implements quotation storage in a bbolt bucket.
type BoltRepository struct {
	db dbx.BoltTX
}

func NewBoltRepository(db dbx.BoltTX) *BoltRepository {
	return &BoltRepository{db: db}
}

func (r *BoltRepository) CreateBatch(ctx context.Context, qs []*models.Quotation) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := bucket(tx)
		for _, q := range qs {
			data, err := json.Marshal(q)
			if err != nil {
				return fmt.Errorf("encode quotation: %w", err)
			}
			if err := b.Put([]byte(q.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BoltRepository) List(ctx context.Context) ([]*models.Quotation, error) {
	result, err := r.scan(func(*models.Quotation) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].GroupID != result[j].GroupID {
			return result[i].GroupID < result[j].GroupID
		}
		return result[i].SequenceNumber < result[j].SequenceNumber
	})
	return result, nil
}

func (r *BoltRepository) ListByGroup(ctx context.Context, groupID string) ([]*models.Quotation, error) {
	result, err := r.scan(func(q *models.Quotation) bool { return q.GroupID == groupID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SequenceNumber < result[j].SequenceNumber
	})
	return result, nil
}

func (r *BoltRepository) Get(ctx context.Context, id string) (*models.Quotation, error) {
	var q models.Quotation
	err := r.db.View(func(tx *bolt.Tx) error {
		v := bucket(tx).Get([]byte(id))
		if v == nil {
			return common.ErrorNotFound
		}
		return json.Unmarshal(v, &q)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *BoltRepository) DeleteByGroup(ctx context.Context, groupID string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := bucket(tx)
		var keys [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var q models.Quotation
			if err := json.Unmarshal(v, &q); err != nil {
				return fmt.Errorf("decode quotation: %w", err)
			}
			if q.GroupID == groupID {
				keys = append(keys, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BoltRepository) MarkMigrated(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := bucket(tx)
		v := b.Get([]byte(id))
		if v == nil {
			return common.ErrorNotFound
		}
		var q models.Quotation
		if err := json.Unmarshal(v, &q); err != nil {
			return fmt.Errorf("decode quotation: %w", err)
		}
		q.IsMigrated = true
		data, err := json.Marshal(&q)
		if err != nil {
			return fmt.Errorf("encode quotation: %w", err)
		}
		return b.Put([]byte(id), data)
	})
}

func (r *BoltRepository) scan(keep func(*models.Quotation) bool) ([]*models.Quotation, error) {
	result := make([]*models.Quotation, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		return bucket(tx).ForEach(func(_, v []byte) error {
			var q models.Quotation
			if err := json.Unmarshal(v, &q); err != nil {
				return fmt.Errorf("decode quotation: %w", err)
			}
			if keep(&q) {
				result = append(result, &q)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func bucket(tx *bolt.Tx) *bolt.Bucket {
	return tx.Bucket([]byte(Bucket))
}
