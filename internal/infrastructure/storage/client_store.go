package storage

import (
	"io"
	"time"

	"firmdesk.backend/pkg/crypto"
)

// ClientStore places client uploads into the deterministic layout
type ClientStore struct {
	disk *DiskStore
}

// NewClientStore wraps a disk store
func NewClientStore(disk *DiskStore) *ClientStore {
	return &ClientStore{disk: disk}
}

// SaveKYC stores a verification document under the client's kyc directory
func (s *ClientStore) SaveKYC(clientID uint, businessName, originalName string, at time.Time, src io.Reader) (string, int64, error) {
	dir := KYCDir(ClientRoot(clientID, businessName))
	return s.save(dir, originalName, at, src)
}

// SavePaymentReceipt stores a receipt under payments/{year}/{mm_month}
func (s *ClientStore) SavePaymentReceipt(clientID uint, businessName, originalName string, at time.Time, src io.Reader) (string, int64, error) {
	dir := PaymentDir(ClientRoot(clientID, businessName), at)
	return s.save(dir, originalName, at, src)
}

// SaveDocument stores a vault document under documents/{year}/{quarter}/{category}
func (s *ClientStore) SaveDocument(clientID uint, businessName, category, originalName string, at time.Time, src io.Reader) (string, int64, error) {
	dir := DocumentDir(ClientRoot(clientID, businessName), at, category)
	return s.save(dir, originalName, at, src)
}

// Open opens a stored file for reading
func (s *ClientStore) Open(relPath string) (io.ReadCloser, error) {
	return s.disk.Open(relPath)
}

// Remove deletes a stored file
func (s *ClientStore) Remove(relPath string) error {
	return s.disk.Remove(relPath)
}

func (s *ClientStore) save(dir, originalName string, at time.Time, src io.Reader) (string, int64, error) {
	token, err := crypto.GenerateRandomToken(4)
	if err != nil {
		return "", 0, err
	}
	return s.disk.Save(dir, UniqueFilename(originalName, at, token), src)
}
