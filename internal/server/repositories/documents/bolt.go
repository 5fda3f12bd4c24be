package documents

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

// Bucket holds one JSON record per document, keyed by id.
const Bucket = "documents"

// BoltRepository implements document storage in a bbolt bucket.
type BoltRepository struct {
	db dbx.BoltTX
}

// NewBoltRepository constructs a repository bound to a *bolt.DB or to a
// transaction handle from dbx.BoltWithTx. The bucket must already exist.
func NewBoltRepository(db dbx.BoltTX) *BoltRepository {
	return &BoltRepository{db: db}
}

func (r *BoltRepository) Create(ctx context.Context, d *models.Document) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return bucket(tx).Put([]byte(d.ID), data)
	})
}

func (r *BoltRepository) List(ctx context.Context) ([]*models.Document, error) {
	result := make([]*models.Document, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		return bucket(tx).ForEach(func(_, v []byte) error {
			var d models.Document
			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("decode document: %w", err)
			}
			result = append(result, &d)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *BoltRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	var d models.Document
	err := r.db.View(func(tx *bolt.Tx) error {
		v := bucket(tx).Get([]byte(id))
		if v == nil {
			return common.ErrorNotFound
		}
		return json.Unmarshal(v, &d)
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *BoltRepository) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := bucket(tx)
		if b.Get([]byte(id)) == nil {
			return common.ErrorNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (r *BoltRepository) MarkMigrated(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := bucket(tx)
		v := b.Get([]byte(id))
		if v == nil {
			return common.ErrorNotFound
		}
		var d models.Document
		if err := json.Unmarshal(v, &d); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		d.IsMigrated = true
		data, err := json.Marshal(&d)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		return b.Put([]byte(id), data)
	})
}

func bucket(tx *bolt.Tx) *bolt.Bucket {
	return tx.Bucket([]byte(Bucket))
}
