package store

import (
	"context"
	"encoding/json"
	"os"

	"github.com/shoplens/shoplens/internal/models"
)

// FilePersistence keeps a collection in a local JSON file, written
// atomically via a temp file rename so a crash mid-write never leaves a
// truncated list behind.
type FilePersistence struct {
	filename string
}

func NewFilePersistence(filename string) *FilePersistence {
	return &FilePersistence{filename: filename}
}

func (f *FilePersistence) Load(_ context.Context) ([]models.ProductInfo, error) {
	data, err := os.ReadFile(f.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var products []models.ProductInfo
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (f *FilePersistence) Save(_ context.Context, products []models.ProductInfo) error {
	if products == nil {
		products = []models.ProductInfo{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := f.filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, f.filename)
}
