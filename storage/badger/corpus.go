package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/lexical"
	"github.com/electoralqa/candidex/storage"
)

// CorpusRepository implements storage.CorpusRepository on a Badger backend.
type CorpusRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CorpusRepository = (*CorpusRepository)(nil)

// NewCorpusRepository creates a corpus repository on the given backend.
func NewCorpusRepository(backend *Backend) (*CorpusRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &CorpusRepository{
		backend: backend,
		logger:  slog.Default().With("component", "corpus-repository"),
	}, nil
}

// AppendDocument adds one aligned corpus row. Source IDs are deduplicated via
// a BLAKE2b hash index; the embedding dimension is fixed by the first row.
func (r *CorpusRepository) AppendDocument(ctx context.Context, doc *core.Document, embedding []float32, lexVec lexical.SparseVector) (int, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return 0, err
	}

	var pos int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		manifest, err := readManifest(tx)
		if err != nil {
			if !errors.Is(err, storage.ErrArtifactMissing) {
				return err
			}
			manifest = storage.Manifest{Count: 0, Dimension: len(embedding)}
		}

		if len(embedding) != manifest.Dimension {
			return fmt.Errorf("%w: got %d, corpus has %d",
				storage.ErrDimensionMismatch, len(embedding), manifest.Dimension)
		}

		sidKey := makeSourceIDKey(doc.Key())
		if _, err := tx.Get(sidKey); err == nil {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateSourceID, doc.SourceID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		pos = manifest.Count
		if err := tx.Set(makePositionKey(documentPrefix, pos), storage.MarshalDocument(doc)); err != nil {
			return err
		}
		if err := tx.Set(makePositionKey(embeddingPrefix, pos), storage.MarshalVector(embedding)); err != nil {
			return err
		}
		if err := tx.Set(makePositionKey(lexicalPrefix, pos), storage.MarshalSparseVector(lexVec)); err != nil {
			return err
		}
		if err := tx.Set(sidKey, []byte{}); err != nil {
			return err
		}

		manifest.Count++
		if err := tx.Set(manifestKey(), storage.MarshalManifest(manifest)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}

	return pos, nil
}

// SetVectorizer stores the lexical vocabulary and IDF weights.
func (r *CorpusRepository) SetVectorizer(ctx context.Context, vz lexical.Vectorizer) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(vectorizerKey(), storage.MarshalVectorizer(vz)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot materializes the whole corpus artifact into memory.
// Any missing aligned row is a fatal misalignment.
func (r *CorpusRepository) LoadSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	var snap *storage.Snapshot

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		manifest, err := readManifest(tx)
		if err != nil {
			return err
		}

		snap = &storage.Snapshot{
			Documents:  make([]core.Document, 0, manifest.Count),
			Embeddings: make([][]float32, 0, manifest.Count),
			Lexical:    make([]lexical.SparseVector, 0, manifest.Count),
			Dimension:  manifest.Dimension,
		}

		if manifest.Count > 0 {
			vz, err := readVectorizer(tx)
			if err != nil {
				return err
			}
			snap.Vectorizer = vz
		}

		for pos := 0; pos < manifest.Count; pos++ {
			doc, err := readRow(tx, documentPrefix, pos, storage.UnmarshalDocument)
			if err != nil {
				return err
			}
			emb, err := readRow(tx, embeddingPrefix, pos, storage.UnmarshalVector)
			if err != nil {
				return err
			}
			lex, err := readRow(tx, lexicalPrefix, pos, storage.UnmarshalSparseVector)
			if err != nil {
				return err
			}
			snap.Documents = append(snap.Documents, *doc)
			snap.Embeddings = append(snap.Embeddings, emb)
			snap.Lexical = append(snap.Lexical, lex)
		}

		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	r.logger.Debug("corpus snapshot loaded", "documents", snap.Len(), "dimension", snap.Dimension)
	return snap, nil
}

// Close releases the repository. The underlying backend is shared and closed
// by its owner.
func (r *CorpusRepository) Close() error {
	return nil
}

func readManifest(tx *badger.Txn) (storage.Manifest, error) {
	var manifest storage.Manifest
	item, err := tx.Get(manifestKey())
	if errors.Is(err, badger.ErrKeyNotFound) {
		return manifest, storage.ErrArtifactMissing
	}
	if err != nil {
		return manifest, err
	}
	err = item.Value(func(val []byte) error {
		manifest, err = storage.UnmarshalManifest(val)
		return err
	})
	return manifest, err
}

func readVectorizer(tx *badger.Txn) (lexical.Vectorizer, error) {
	var vz lexical.Vectorizer
	item, err := tx.Get(vectorizerKey())
	if errors.Is(err, badger.ErrKeyNotFound) {
		return vz, storage.ErrVectorizerMissing
	}
	if err != nil {
		return vz, err
	}
	err = item.Value(func(val []byte) error {
		vz, err = storage.UnmarshalVectorizer(val)
		return err
	})
	return vz, err
}

func readRow[T any](tx *badger.Txn, prefix string, pos int, unmarshal func([]byte) (T, error)) (T, error) {
	var zero T
	item, err := tx.Get(makePositionKey(prefix, pos))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return zero, fmt.Errorf("%w: missing %s row %d", core.ErrCorpusMisaligned, prefix, pos)
	}
	if err != nil {
		return zero, err
	}
	var out T
	err = item.Value(func(val []byte) error {
		out, err = unmarshal(val)
		return err
	})
	return out, err
}
