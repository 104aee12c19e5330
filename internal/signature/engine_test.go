package signature_test

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gocrypt/internal/algorithm"
	"github.com/idelchi/gocrypt/internal/cryptoerr"
	"github.com/idelchi/gocrypt/internal/keymaterial"
	"github.com/idelchi/gocrypt/internal/signature"
)

var (
	keysOnce sync.Once
	keyA     *rsa.PrivateKey
	keyB     *rsa.PrivateKey
	errKeys  error
)

// testKeys returns two 1024-bit keys shared by all tests; generating them is the slow part.
func testKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()

	keysOnce.Do(func() {
		keyA, errKeys = rsa.GenerateKey(rand.Reader, 1024)
		if errKeys != nil {
			return
		}

		keyB, errKeys = rsa.GenerateKey(rand.Reader, 1024)
	})

	require.NoError(t, errKeys)

	return keyA, keyB
}

func newEngine(t *testing.T, priv *rsa.PrivateKey, digestName string) *signature.Engine {
	t.Helper()

	key, err := keymaterial.NewRSAPrivate(priv)
	require.NoError(t, err)

	d, err := algorithm.Default().Digest(digestName)
	require.NoError(t, err)

	engine, err := signature.New(key, d)
	require.NoError(t, err)

	return engine
}

func newVerifier(t *testing.T, pub *rsa.PublicKey, digestName string) *signature.Engine {
	t.Helper()

	key, err := keymaterial.NewRSAPublic(pub)
	require.NoError(t, err)

	d, err := algorithm.Default().Digest(digestName)
	require.NoError(t, err)

	engine, err := signature.New(key, d)
	require.NoError(t, err)

	return engine
}

func TestSignVerifyTestMessage(t *testing.T) {
	t.Parallel()

	priv, _ := testKeys(t)

	signer := newEngine(t, priv, "sha1")
	require.NoError(t, signer.Update([]byte("test message")))

	sig, err := signer.Signature()
	require.NoError(t, err)
	assert.Len(t, sig, 128)
	assert.Equal(t, signature.StateSigned, signer.State())

	verifier := newVerifier(t, &priv.PublicKey, "sha1")
	require.NoError(t, verifier.Update([]byte("test message")))

	ok, err := verifier.Verify(sig)
	require.NoError(t, err)
	assert.True(t, ok)

	sig[len(sig)-1] ^= 0x01

	ok, err = verifier.Verify(sig)
	require.NoError(t, err)
	assert.False(t, ok, "a flipped low bit must not verify")
	assert.Equal(t, signature.StateDigested, verifier.State())
}

func TestVerifyRejectsTampering(t *testing.T) {
	t.Parallel()

	priv, other := testKeys(t)

	for _, name := range []string{"md5", "sha1", "sha256", "sha512", "ripemd160"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			signer := newEngine(t, priv, name)
			_, err := signer.Write([]byte("the quick brown fox"))
			require.NoError(t, err)

			sig, err := signer.Signature()
			require.NoError(t, err)

			ok, err := signer.Verify(sig)
			require.NoError(t, err)
			assert.True(t, ok)

			for _, bit := range []int{0, 7, len(sig)*8 - 1} {
				flipped := append([]byte(nil), sig...)
				flipped[bit/8] ^= 1 << (bit % 8)

				ok, err := signer.Verify(flipped)
				require.NoError(t, err)
				assert.False(t, ok, "bit %d flipped", bit)
			}

			tampered := newEngine(t, priv, name)
			require.NoError(t, tampered.Update([]byte("the quick brown fix")))

			ok, err = tampered.Verify(sig)
			require.NoError(t, err)
			assert.False(t, ok, "changed message")

			unrelated := newVerifier(t, &other.PublicKey, name)
			require.NoError(t, unrelated.Update([]byte("the quick brown fox")))

			ok, err = unrelated.Verify(sig)
			require.NoError(t, err)
			assert.False(t, ok, "unrelated key")
		})
	}
}

func TestVerifyDoesNotMutateCandidate(t *testing.T) {
	t.Parallel()

	priv, _ := testKeys(t)

	engine := newEngine(t, priv, "sha256")
	sig, err := engine.Signature()
	require.NoError(t, err)

	candidate := append([]byte(nil), sig...)

	for range 3 {
		ok, err := engine.Verify(candidate)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	assert.Equal(t, sig, candidate)

	ok, err := engine.Verify(candidate[:10])
	require.NoError(t, err)
	assert.False(t, ok, "short candidate")
}

func TestMemoizationAndReset(t *testing.T) {
	t.Parallel()

	priv, _ := testKeys(t)

	engine := newEngine(t, priv, "sha1")
	assert.Equal(t, signature.StateInit, engine.State())
	assert.Equal(t, 20, engine.DigestSize())

	require.NoError(t, engine.Update([]byte("first")))
	assert.Equal(t, signature.StateAccumulating, engine.State())

	first := engine.Digest()
	assert.Equal(t, signature.StateDigested, engine.State())

	first[0] ^= 0xff
	assert.NotEqual(t, first, engine.Digest(), "Digest must return a copy")

	assert.ErrorIs(t, engine.Update([]byte("second")), signature.ErrDigestSealed)

	sig1, err := engine.Signature()
	require.NoError(t, err)

	sig2, err := engine.Signature()
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)

	engine.Reset()
	assert.Equal(t, signature.StateInit, engine.State())

	require.NoError(t, engine.Update([]byte("second")))

	fresh := newEngine(t, priv, "sha1")
	require.NoError(t, fresh.Update([]byte("second")))

	assert.Equal(t, fresh.Digest(), engine.Digest(), "digest after Reset depends on earlier input")

	sig3, err := engine.Signature()
	require.NoError(t, err)
	assert.NotEqual(t, sig1, sig3)
}

func TestVerifyBeforeUpdate(t *testing.T) {
	t.Parallel()

	priv, _ := testKeys(t)

	signer := newEngine(t, priv, "sha256")
	sig, err := signer.Signature()
	require.NoError(t, err)

	verifier := newVerifier(t, &priv.PublicKey, "sha256")

	ok, err := verifier.Verify(sig)
	require.NoError(t, err)
	assert.True(t, ok, "empty message signatures verify")
}

func TestSignatureRequiresPrivateKey(t *testing.T) {
	t.Parallel()

	priv, _ := testKeys(t)

	verifier := newVerifier(t, &priv.PublicKey, "sha1")

	_, err := verifier.Signature()

	var signErr *cryptoerr.SigningError
	require.ErrorAs(t, err, &signErr)
	assert.ErrorIs(t, err, keymaterial.ErrNoPrivateKey)
	assert.Equal(t, signature.StateInit, verifier.State())
}

func TestVerifyMalformedPublicKey(t *testing.T) {
	t.Parallel()

	key, err := keymaterial.NewRSAPublic(&rsa.PublicKey{N: big.NewInt(3233), E: 1})
	require.NoError(t, err)

	d, err := algorithm.Default().Digest("sha1")
	require.NoError(t, err)

	engine, err := signature.New(key, d)
	require.NoError(t, err)

	_, err = engine.Verify(make([]byte, 2))

	var opErr *cryptoerr.CryptoOperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "verify", opErr.Op)
	assert.ErrorIs(t, err, cryptoerr.ErrInvalidPublicKey)
}

func TestNewRejectsNilKey(t *testing.T) {
	t.Parallel()

	d, err := algorithm.Default().Digest("md5")
	require.NoError(t, err)

	_, err = signature.New(nil, d)
	assert.ErrorIs(t, err, signature.ErrNilKey)
}
