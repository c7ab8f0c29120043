package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mnemonic tests ---

func TestGenerateMnemonic_12Words(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	words := strings.Fields(mnemonic)
	assert.Len(t, words, 12, "12-word mnemonic should have 12 words")
	assert.True(t, ValidateMnemonic(mnemonic), "generated mnemonic should be valid")
}

func TestGenerateMnemonic_24Words(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic24Words)
	require.NoError(t, err)

	words := strings.Fields(mnemonic)
	assert.Len(t, words, 24, "24-word mnemonic should have 24 words")
	assert.True(t, ValidateMnemonic(mnemonic), "generated mnemonic should be valid")
}

func TestGenerateMnemonic_InvalidEntropy(t *testing.T) {
	_, err := GenerateMnemonic(64) // invalid
	assert.ErrorIs(t, err, ErrInvalidEntropy)

	_, err = GenerateMnemonic(192) // invalid
	assert.ErrorIs(t, err, ErrInvalidEntropy)
}

func TestGenerateMnemonic_Unique(t *testing.T) {
	m1, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	m2, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	assert.NotEqual(t, m1, m2, "two generated mnemonics should be different")
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		valid    bool
	}{
		{"valid 12-word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", true},
		{"invalid words", "foo bar baz qux quux corge grault garply waldo fred plugh xyzzy", false},
		{"empty", "", false},
		{"partial", "abandon abandon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateMnemonic(tt.mnemonic))
		})
	}
}

// --- Seed derivation tests ---

func TestSeedFromMnemonic_Deterministic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	seed1, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	seed2, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	assert.Equal(t, seed1, seed2, "same mnemonic+passphrase should produce same seed")
	assert.Len(t, seed1, 64, "BIP39 seed should be 64 bytes")
}

func TestSeedFromMnemonic_DifferentPassphrase(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	seed1, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	seed2, err := SeedFromMnemonic(mnemonic, "my secret passphrase")
	require.NoError(t, err)

	assert.NotEqual(t, seed1, seed2, "different passphrases should produce different seeds")
}

func TestSeedFromMnemonic_InvalidMnemonic(t *testing.T) {
	_, err := SeedFromMnemonic("invalid mnemonic words here", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

// --- HD Key Derivation tests ---

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	w, err := NewWallet(seed, &MainNet)
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	w := newTestWallet(t)
	assert.NotNil(t, w)
	assert.Equal(t, "mainnet", w.Network().Name)
}

func TestNewWallet_EmptySeed(t *testing.T) {
	_, err := NewWallet([]byte{}, nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestNewWallet_NilNetwork(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	w, err := NewWallet(seed, nil)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", w.Network().Name, "nil network should default to mainnet")
}

func TestNewWalletFromMnemonic(t *testing.T) {
	w, err := NewWalletFromMnemonic(testMnemonic, "", &TestNet)
	require.NoError(t, err)
	assert.Equal(t, int64(2), w.Network().ChainID)

	_, err = NewWalletFromMnemonic("not a mnemonic", "", nil)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestDeriveIdentityKey(t *testing.T) {
	w := newTestWallet(t)

	kp, err := w.DeriveIdentityKey(0, 0)
	require.NoError(t, err)
	assert.NotNil(t, kp.PrivateKey)
	assert.NotNil(t, kp.PublicKey)
	assert.Equal(t, "m/44'/236'/0'/0/0", kp.Path)

	kp2, err := w.DeriveIdentityKey(1, 7)
	require.NoError(t, err)
	assert.Equal(t, "m/44'/236'/1'/0/7", kp2.Path)

	assert.NotEqual(t, kp.PublicKey.Compressed(), kp2.PublicKey.Compressed())
}

func TestDeriveIdentityKey_Deterministic(t *testing.T) {
	w := newTestWallet(t)

	kp1, err := w.DeriveIdentityKey(0, 5)
	require.NoError(t, err)

	kp2, err := w.DeriveIdentityKey(0, 5)
	require.NoError(t, err)

	assert.Equal(t, kp1.PublicKey.Compressed(), kp2.PublicKey.Compressed())
}

func TestDeriveIdentityKey_DifferentIndices(t *testing.T) {
	w := newTestWallet(t)

	kp1, err := w.DeriveIdentityKey(0, 0)
	require.NoError(t, err)

	kp2, err := w.DeriveIdentityKey(0, 1)
	require.NoError(t, err)

	assert.NotEqual(t, kp1.PublicKey.Compressed(), kp2.PublicKey.Compressed())
}

func TestDeriveIdentityKey_OutOfRange(t *testing.T) {
	w := newTestWallet(t)

	_, err := w.DeriveIdentityKey(Hardened, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = w.DeriveIdentityKey(0, Hardened)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = w.DeriveIdentityKey(MaxIndex, MaxIndex)
	assert.NoError(t, err)
}

// --- Network tests ---

func TestGetNetwork(t *testing.T) {
	tests := []struct {
		name    string
		netName string
		wantErr bool
	}{
		{"mainnet", "mainnet", false},
		{"testnet", "testnet", false},
		{"regtest", "regtest", false},
		{"teratestnet", "teratestnet", false},
		{"unknown", "foonet", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := GetNetwork(tt.netName)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNetwork)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.netName, net.Name)
			}
		})
	}
}

func TestGetNetworkByID(t *testing.T) {
	for _, want := range []*NetworkConfig{&MainNet, &TestNet, &TeraTestNet, &RegTest} {
		got, err := GetNetworkByID(want.ChainID)
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
	}

	_, err := GetNetworkByID(99)
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}

func TestChainIDsUnique(t *testing.T) {
	seen := make(map[int64]string)
	for name, net := range predefined {
		if prev, ok := seen[net.ChainID]; ok {
			t.Fatalf("chain id %d shared by %s and %s", net.ChainID, prev, name)
		}
		seen[net.ChainID] = name
	}
	assert.True(t, MainNet.Mainnet)
	assert.False(t, TestNet.Mainnet)
}
