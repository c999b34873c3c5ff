package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// assocKey identifies one document-term association.
type assocKey struct {
	documentID int64
	termID     int64
}

// Store holds documents, terms and their associations in memory.
// Each term keeps a roaring bitmap of the documents it was matched in.
type Store struct {
	mu sync.RWMutex

	nextDocID  int64
	docs       map[int64]*domain.Document
	byExternal map[string]int64

	nextTermID int64
	terms      map[int64]*domain.Term
	byText     map[string]int64

	postings map[int64]*roaring.Bitmap
	assocAt  map[assocKey]time.Time

	now func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs:       make(map[int64]*domain.Document),
		byExternal: make(map[string]int64),
		terms:      make(map[int64]*domain.Term),
		byText:     make(map[string]int64),
		postings:   make(map[int64]*roaring.Bitmap),
		assocAt:    make(map[assocKey]time.Time),
		now:        time.Now,
	}
}

// SetClock overrides the time source for FetchedAt and association stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Documents returns the document store view.
func (s *Store) Documents() *DocumentStore {
	return &DocumentStore{s: s}
}

// Terms returns the term store view.
func (s *Store) Terms() *TermStore {
	return &TermStore{s: s}
}

// Associations returns the association store view.
func (s *Store) Associations() *AssociationStore {
	return &AssociationStore{s: s}
}

// postingIDs lists the documents associated with a term, ascending
// (caller must hold lock).
func (s *Store) postingIDs(termID int64) []int64 {
	bm, ok := s.postings[termID]
	if !ok {
		return nil
	}
	out := make([]int64, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int64(it.Next()))
	}
	return out
}

// addPosting records an association and reports whether it was new
// (caller must hold write lock).
func (s *Store) addPosting(documentID, termID int64, at time.Time) bool {
	bm, ok := s.postings[termID]
	if !ok {
		bm = roaring.NewBitmap()
		s.postings[termID] = bm
	}
	if !bm.CheckedAdd(uint32(documentID)) {
		return false
	}
	s.assocAt[assocKey{documentID: documentID, termID: termID}] = at
	return true
}

// dropDocument removes a document from every posting list
// (caller must hold write lock).
func (s *Store) dropDocument(documentID int64) {
	for termID, bm := range s.postings {
		if bm.CheckedRemove(uint32(documentID)) {
			delete(s.assocAt, assocKey{documentID: documentID, termID: termID})
		}
	}
}

// dropTerm removes a term's posting list (caller must hold write lock).
func (s *Store) dropTerm(termID int64) {
	for _, docID := range s.postingIDs(termID) {
		delete(s.assocAt, assocKey{documentID: docID, termID: termID})
	}
	delete(s.postings, termID)
}

func copyDocument(d *domain.Document) domain.Document {
	out := *d
	if d.MatchedAt != nil {
		t := *d.MatchedAt
		out.MatchedAt = &t
	}
	return out
}

// sortNewestFirst orders by CreatedAt descending, newer ids first on ties.
func sortNewestFirst(docs []domain.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID > docs[j].ID
	})
}
