package cheki

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oshilog/oshilog/internal/storage"
	log "github.com/sirupsen/logrus"
)

const (
	boardKey = "cheki-data"
	// membersKey holds the flat list of previously entered member names,
	// used for input suggestions.
	membersKey = "cheki-idols"
)

type Repository interface {
	LoadBoard(ctx context.Context) (Board, error)
	SaveBoard(ctx context.Context, board Board) error
	LoadMembers(ctx context.Context) ([]string, error)
	SaveMembers(ctx context.Context, members []string) error
	// Reset wipes the persisted board and the remembered member list.
	Reset(ctx context.Context) error
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

// LoadBoard reads the persisted board. A missing key or malformed value
// yields an empty board; callers never fail on bad persisted data.
func (r *RepositoryImpl) LoadBoard(ctx context.Context) (Board, error) {
	raw, ok, err := r.store.Get(ctx, boardKey)
	if err != nil {
		return nil, fmt.Errorf("could not read board: %w", err)
	}
	if !ok {
		return Board{}, nil
	}

	var board Board
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		log.Warnf("Discarding malformed board data: %v", err)
		return Board{}, nil
	}
	if board == nil {
		board = Board{}
	}
	return board, nil
}

func (r *RepositoryImpl) SaveBoard(ctx context.Context, board Board) error {
	raw, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("could not serialize board: %w", err)
	}
	if err := r.store.Set(ctx, boardKey, string(raw)); err != nil {
		return fmt.Errorf("could not persist board: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) LoadMembers(ctx context.Context) ([]string, error) {
	raw, ok, err := r.store.Get(ctx, membersKey)
	if err != nil {
		return nil, fmt.Errorf("could not read member list: %w", err)
	}
	if !ok {
		return []string{}, nil
	}

	var members []string
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		log.Warnf("Discarding malformed member list: %v", err)
		return []string{}, nil
	}
	return members, nil
}

func (r *RepositoryImpl) Reset(ctx context.Context) error {
	if err := r.store.Delete(ctx, boardKey); err != nil {
		return fmt.Errorf("could not delete board: %w", err)
	}
	if err := r.store.Delete(ctx, membersKey); err != nil {
		return fmt.Errorf("could not delete member list: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) SaveMembers(ctx context.Context, members []string) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("could not serialize member list: %w", err)
	}
	if err := r.store.Set(ctx, membersKey, string(raw)); err != nil {
		return fmt.Errorf("could not persist member list: %w", err)
	}
	return nil
}
