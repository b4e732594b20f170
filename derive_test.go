package synto

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/iov-one/synto/errors"
	"golang.org/x/crypto/ed25519"
)

func testProgram() Address {
	sum := sha256.Sum256([]byte("test program"))
	return Address(sum[:])
}

func TestFindProgramAddress(t *testing.T) {
	program := testProgram()
	owner, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	seeds := [][]byte{[]byte("escrow"), owner}

	addr, bump, err := FindProgramAddress(seeds, program)
	if err != nil {
		t.Fatalf("cannot find address: %s", err)
	}
	if IsOnCurve(addr) {
		t.Fatal("derived address must be off curve")
	}

	again, againBump, err := FindProgramAddress(seeds, program)
	if err != nil {
		t.Fatalf("cannot find address: %s", err)
	}
	if !again.Equals(addr) || againBump != bump {
		t.Fatal("derivation must be deterministic")
	}

	created, err := CreateProgramAddress([][]byte{[]byte("escrow"), owner, {bump}}, program)
	if err != nil {
		t.Fatalf("cannot create address with the canonical bump: %s", err)
	}
	if !created.Equals(addr) {
		t.Fatalf("want %s, got %s", addr, created)
	}

	other, _, err := FindProgramAddress([][]byte{[]byte("escrow"), owner}, Address(bytes.Repeat([]byte{7}, 32)))
	if err != nil {
		t.Fatalf("cannot find address: %s", err)
	}
	if other.Equals(addr) {
		t.Fatal("different programs must derive different addresses")
	}
}

func TestCreateProgramAddressLimits(t *testing.T) {
	program := testProgram()

	cases := map[string]struct {
		seeds   [][]byte
		program Address
		wantErr *errors.Error
	}{
		"seed too long": {
			seeds:   [][]byte{bytes.Repeat([]byte{1}, MaxSeedLength+1)},
			program: program,
			wantErr: errors.ErrInput,
		},
		"too many seeds": {
			seeds:   make([][]byte, MaxSeeds+1),
			program: program,
			wantErr: errors.ErrInput,
		},
		"invalid program": {
			seeds:   [][]byte{[]byte("escrow")},
			program: Address("short"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if _, err := CreateProgramAddress(tc.seeds, tc.program); !tc.wantErr.Is(err) {
				t.Fatalf("want %s, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestIsOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	if !IsOnCurve(pub) {
		t.Fatal("a public key is a curve point")
	}
	if IsOnCurve([]byte{1, 2, 3}) {
		t.Fatal("short input is never on curve")
	}
}

// Published create_program_address vectors of the Solana runtime.
func TestCreateProgramAddressVectors(t *testing.T) {
	program := MustParseAddress("BPFLoaderUpgradeab1e11111111111111111111111")
	pubkey := MustParseAddress("SeedPubey1111111111111111111111111111111111")

	cases := map[string]struct {
		seeds [][]byte
		want  string
	}{
		"empty seed and one": {
			seeds: [][]byte{{}, {1}},
			want:  "BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe",
		},
		"utf8 seed": {
			seeds: [][]byte{[]byte("☉"), {0}},
			want:  "13yWmRpaTR4r5nAktwLqMpRNr28tnVUZw26rTvPSSB19",
		},
		"two words": {
			seeds: [][]byte{[]byte("Talking"), []byte("Squirrels")},
			want:  "2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk",
		},
		"public key seed": {
			seeds: [][]byte{pubkey, {1}},
			want:  "976ymqVnfE32QFe6NfGDctSvVa36LWnvYxhU6G2232YL",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			addr, err := CreateProgramAddress(tc.seeds, program)
			if err != nil {
				t.Fatalf("cannot create address: %s", err)
			}
			if got := addr.String(); got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}
