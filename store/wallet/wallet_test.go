package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestEncryptDecrypt(t *testing.T) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate random key: %v", err)
	}

	secret, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate wallet key: %v", err)
	}

	testCases := []struct {
		name      string
		plaintext string
	}{
		{"empty string", ""},
		{"short text", "hello, world"},
		{"long text", "this is a longer text used to exercise encryption and decryption of larger payloads than a wallet key"},
		{"special characters", "!@#$%^&*()_+{}[]|\\:;\"'<>,.?/~`"},
		{"wallet key", hex.EncodeToString(crypto.FromECDSA(secret))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, err := encrypt(key, tc.plaintext)
			if err != nil {
				t.Fatalf("encryption failed: %v", err)
			}

			decrypted, err := decrypt(key, ciphertext)
			if err != nil {
				t.Fatalf("decryption failed: %v", err)
			}

			if decrypted != tc.plaintext {
				t.Errorf("decrypted text does not match plaintext. Got %q, want %q", decrypted, tc.plaintext)
			}
		})
	}
}

func TestDecryptInvalidInput(t *testing.T) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate random key: %v", err)
	}

	testCases := []struct {
		name       string
		ciphertext string
	}{
		{"empty string", ""},
		{"invalid base64", "this is not base64!"},
		{"too short after base64 decode", "aGVsbG8="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decrypt(key, tc.ciphertext); err == nil {
				t.Error("expected an error, but got nil")
			}
		})
	}
}

func TestSignerAddressMatchesKey(t *testing.T) {
	secret, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate wallet key: %v", err)
	}

	s := newSigner(secret, 43113)

	want := crypto.PubkeyToAddress(secret.PublicKey)
	if s.Address() != want {
		t.Errorf("signer address = %s, want %s", s.Address().Hex(), want.Hex())
	}
}
