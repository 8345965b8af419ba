// Package catalog provides the document-store backends the recommendation
// core reads students and offers from: an in-memory store with gob snapshots,
// a Postgres-backed store, and a Redis cache decorator.
package catalog

import (
	"context"
	"encoding/gob"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/scholarlink/recommender/internal/errors"
	"github.com/scholarlink/recommender/internal/persistence"
	"github.com/scholarlink/recommender/model"
)

func init() {
	// Register value types that appear inside model.Document so gob can
	// encode them behind interface{}.
	gob.Register([]interface{}{})
	gob.Register(map[string]interface{}{})
	gob.Register([]string{})
	gob.Register(float64(0))
	gob.Register(false)
}

const snapshotFile = "catalog.gob"

// MemoryCatalog is an in-memory document store for students and offers.
// Offer catalog order is preserved: ranked results tie-break on it. Snapshots
// are written to disk so the catalog survives restarts in development.
type MemoryCatalog struct {
	mu         sync.RWMutex
	students   map[string]model.Document
	offers     map[string]model.Document
	offerOrder []string
	dataDir    string
}

// gobCatalogData is a helper struct for gob encoding/decoding MemoryCatalog
// data. It excludes the mutex.
type gobCatalogData struct {
	Students   map[string]model.Document
	Offers     map[string]model.Document
	OfferOrder []string
}

// NewMemoryCatalog creates a memory catalog rooted at dataDir, loading a
// previous snapshot when one exists.
func NewMemoryCatalog(dataDir string) *MemoryCatalog {
	cat := &MemoryCatalog{
		students: make(map[string]model.Document),
		offers:   make(map[string]model.Document),
		dataDir:  dataDir,
	}

	if dataDir != "" {
		var data gobCatalogData
		path := filepath.Join(dataDir, snapshotFile)
		if err := persistence.LoadGob(path, &data); err == nil {
			if data.Students != nil {
				cat.students = data.Students
			}
			if data.Offers != nil {
				cat.offers = data.Offers
			}
			cat.offerOrder = data.OfferOrder
			logrus.WithFields(logrus.Fields{
				"component": "catalog",
				"students":  len(cat.students),
				"offers":    len(cat.offers),
			}).Info("Loaded catalog snapshot")
		}
	}

	return cat
}

// GetStudent returns the student with the given id.
func (c *MemoryCatalog) GetStudent(_ context.Context, id string) (model.Student, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.students[id]
	if !ok {
		return model.Student{}, errors.NewStudentNotFoundError(id)
	}
	return model.StudentFromDocument(id, doc), nil
}

// GetAllOffers returns every offer in catalog order. Corrupt records decode
// to degraded offers rather than failing the whole load.
func (c *MemoryCatalog) GetAllOffers(_ context.Context) ([]model.Offer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	offers := make([]model.Offer, 0, len(c.offerOrder))
	for _, id := range c.offerOrder {
		doc, ok := c.offers[id]
		if !ok {
			continue
		}
		offers = append(offers, model.OfferFromDocument(id, doc))
	}
	return offers, nil
}

// GetOffer returns a single offer by id.
func (c *MemoryCatalog) GetOffer(_ context.Context, id string) (model.Offer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.offers[id]
	if !ok {
		return model.Offer{}, errors.NewOfferNotFoundError(id)
	}
	return model.OfferFromDocument(id, doc), nil
}

// PutStudent stores or replaces a student record.
func (c *MemoryCatalog) PutStudent(id string, doc model.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.students[id] = doc
}

// ReplaceOffers replaces the whole offer catalog, preserving the given order.
// Records without a usable id are skipped with a warning.
func (c *MemoryCatalog) ReplaceOffers(docs []model.Document) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.offers = make(map[string]model.Document, len(docs))
	c.offerOrder = c.offerOrder[:0]
	for _, doc := range docs {
		id, ok := doc.GetID()
		if !ok {
			logrus.WithField("component", "catalog").Warn("Skipping offer document without an id")
			continue
		}
		if _, dup := c.offers[id]; !dup {
			c.offerOrder = append(c.offerOrder, id)
		}
		c.offers[id] = doc
	}
	return len(c.offerOrder)
}

// Snapshot writes the catalog to disk. A snapshot failure is reported but
// never corrupts the in-memory state.
func (c *MemoryCatalog) Snapshot() error {
	if c.dataDir == "" {
		return nil
	}

	// Lock held across the encode: the maps are shared with writers.
	c.mu.RLock()
	defer c.mu.RUnlock()

	data := gobCatalogData{
		Students:   c.students,
		Offers:     c.offers,
		OfferOrder: c.offerOrder,
	}
	return persistence.SaveGob(filepath.Join(c.dataDir, snapshotFile), data)
}
