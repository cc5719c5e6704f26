package token

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNonexistentToken indicates a token id with no recorded owner.
	ErrNonexistentToken = errors.New("token: nonexistent token")

	// ErrInvalidReceiver indicates an empty owner address.
	ErrInvalidReceiver = errors.New("token: invalid receiver")
)

// AlreadyMintedError is returned when minting an id that has an owner.
type AlreadyMintedError struct {
	TokenID ID
	Owner   string
}

func (e *AlreadyMintedError) Error() string {
	return fmt.Sprintf("token: %s already minted to %s", e.TokenID, e.Owner)
}

// Ledger records token ownership. It is safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	owners   map[ID]string
	balances map[string]uint64
}

func NewLedger() *Ledger {
	return &Ledger{
		owners:   make(map[ID]string),
		balances: make(map[string]uint64),
	}
}

func (l *Ledger) Mint(owner string, id ID) error {
	if owner == "" {
		return ErrInvalidReceiver
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.owners[id]; ok {
		return &AlreadyMintedError{TokenID: id, Owner: prev}
	}
	l.owners[id] = owner
	l.balances[owner]++
	return nil
}

// revoke undoes a Mint whose record could not be persisted.
func (l *Ledger) revoke(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[id]
	if !ok {
		return
	}
	delete(l.owners, id)
	if l.balances[owner]--; l.balances[owner] == 0 {
		delete(l.balances, owner)
	}
}

func (l *Ledger) OwnerOf(id ID) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNonexistentToken, id)
	}
	return owner, nil
}

func (l *Ledger) BalanceOf(owner string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[owner]
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.owners)
}
