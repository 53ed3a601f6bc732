package service

import (
	"context"
	"fmt"

	"securebank/internal/bank/domain"
)

type mockPersister struct {
	saveFunc  func(ctx context.Context, store *domain.Store) error
	saveCalls int
}

func (m *mockPersister) Save(ctx context.Context, store *domain.Store) error {
	m.saveCalls++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, store)
	}
	return nil
}

type mockHasher struct {
	hashFunc   func(password string) (string, error)
	verifyFunc func(hash, password string) bool
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(hash, password string) bool {
	if m.verifyFunc != nil {
		return m.verifyFunc(hash, password)
	}
	return hash == "hashed:"+password
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
	counter   int
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	m.counter++
	return fmt.Sprintf("session-%d", m.counter), nil
}
